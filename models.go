package hotelextractor

// DetailRequest identifies one property page to extract, plus the stay
// parameters that only influence URL construction (room prices depend on
// dates and occupancy, not on parsing logic).
type DetailRequest struct {
	HotelID     string `json:"hotel_id"`
	CountryCode string `json:"country_code,omitempty"`
	Checkin     string `json:"checkin,omitempty"`  // YYYY-MM-DD
	Checkout    string `json:"checkout,omitempty"` // YYYY-MM-DD
	Adults      int    `json:"adults,omitempty"`
	Rooms       int    `json:"rooms,omitempty"`
}

// Address is the property location. FullAddress is free text assembled from
// whatever sub-parts the page exposed; coordinates are extracted
// independently and either may be missing.
type Address struct {
	FullAddress string   `json:"full_address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// ReviewScores holds the per-category review sub-scores. The category set is
// closed: these seven fields and nothing else, each 0-10 when present.
type ReviewScores struct {
	Staff         *float64 `json:"staff,omitempty"`
	Facilities    *float64 `json:"facilities,omitempty"`
	Cleanliness   *float64 `json:"cleanliness,omitempty"`
	Comfort       *float64 `json:"comfort,omitempty"`
	ValueForMoney *float64 `json:"value_for_money,omitempty"`
	Location      *float64 `json:"location,omitempty"`
	Wifi          *float64 `json:"wifi,omitempty"`
}

// RoomOption is one bookable room row. Every field besides RoomType is
// independently derived from the row's text blob and independently optional.
type RoomOption struct {
	RoomType           string   `json:"room_type"`
	Price              *float64 `json:"price,omitempty"`
	Currency           string   `json:"currency"`
	Capacity           *int     `json:"capacity,omitempty"`
	BedType            string   `json:"bed_type,omitempty"`
	RoomSize           string   `json:"room_size,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	CancellationPolicy string   `json:"cancellation_policy,omitempty"`
	BreakfastIncluded  bool     `json:"breakfast_included"`
	Refundable         bool     `json:"refundable"`
}

// NearbyAttraction is a categorized point of interest near the property.
type NearbyAttraction struct {
	Name     string `json:"name"`
	Distance string `json:"distance,omitempty"`
	Category string `json:"category,omitempty"`
}

// Policies holds check-in/check-out windows as the page prints them.
type Policies struct {
	CheckinFrom   string `json:"checkin_from,omitempty"`
	CheckoutUntil string `json:"checkout_until,omitempty"`
}

// GuestReview is one guest review card. A review is only kept when it has a
// reviewer name and at least one non-empty text side.
type GuestReview struct {
	ReviewerName    string   `json:"reviewer_name"`
	ReviewerCountry string   `json:"reviewer_country,omitempty"`
	ReviewDate      string   `json:"review_date,omitempty"`
	PositiveText    string   `json:"positive_text,omitempty"`
	NegativeText    string   `json:"negative_text,omitempty"`
	Score           float64  `json:"score"`
	Tags            []string `json:"tags,omitempty"`
}

// HotelDetails is the assembled record for one property page. Every field is
// independently optional: absence of one never invalidates the others.
type HotelDetails struct {
	HotelID string `json:"hotel_id"`
	Name    string `json:"name"`
	URL     string `json:"url"`

	Address      *Address `json:"address,omitempty"`
	Description  string   `json:"description,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	StarRating   *int     `json:"star_rating,omitempty"`

	ReviewScore        *float64      `json:"review_score,omitempty"`
	ReviewCount        *int          `json:"review_count,omitempty"`
	ReviewCategory     string        `json:"review_category,omitempty"`
	ReviewScoresDetail *ReviewScores `json:"review_scores_detail,omitempty"`

	Images    []string `json:"images"`
	MainImage string   `json:"main_image,omitempty"`

	Amenities        []string `json:"amenities"`
	PopularAmenities []string `json:"popular_amenities"`

	Rooms         []RoomOption `json:"rooms"`
	CheapestPrice *float64     `json:"cheapest_price,omitempty"`
	Currency      string       `json:"currency"`

	Policies   *Policies `json:"policies,omitempty"`
	HouseRules []string  `json:"house_rules"`

	NearbyAttractions []NearbyAttraction `json:"nearby_attractions"`
	LanguagesSpoken   []string           `json:"languages_spoken"`

	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	ScrapeTimestamp  string         `json:"scrape_timestamp"`
	ScrapeParameters *DetailRequest `json:"scrape_parameters,omitempty"`
}

// HotelSummary is one property card from a search-results page.
type HotelSummary struct {
	HotelID     string   `json:"hotel_id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency"`
	ReviewScore *float64 `json:"review_score,omitempty"`
	URL         string   `json:"url"`
}

// Trace records which strategy satisfied which field. Diagnostic only; it is
// returned alongside the record instead of being logged from inside the
// engine so extraction stays side-effect free.
type Trace map[string]string

// Result bundles everything one extraction call produces.
type Result struct {
	Details *HotelDetails `json:"details"`
	Reviews []GuestReview `json:"reviews"`
	Trace   Trace         `json:"trace,omitempty"`
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

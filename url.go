package hotelextractor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the hosting site the detail and search URLs are built
// against when none is configured.
const DefaultBaseURL = "https://www.booking.com"

// SearchRequest carries the full search filter surface the results page
// accepts.
type SearchRequest struct {
	City     string `json:"city"`
	Checkin  string `json:"checkin"`  // YYYY-MM-DD
	Checkout string `json:"checkout"` // YYYY-MM-DD
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Rooms    int    `json:"rooms"`

	MinPrice       int      `json:"min_price,omitempty"`
	MaxPrice       int      `json:"max_price,omitempty"`
	MinReviewScore float64  `json:"min_review_score,omitempty"`
	StarRatings    []int    `json:"star_ratings,omitempty"`
	PropertyTypes  []string `json:"property_types,omitempty"`

	FreeWifi         bool `json:"free_wifi,omitempty"`
	FreeParking      bool `json:"free_parking,omitempty"`
	Pool             bool `json:"pool,omitempty"`
	FitnessCenter    bool `json:"fitness_center,omitempty"`
	AirConditioning  bool `json:"air_conditioning,omitempty"`
	Restaurant       bool `json:"restaurant,omitempty"`
	PetsAllowed      bool `json:"pets_allowed,omitempty"`
	FreeCancellation bool `json:"free_cancellation,omitempty"`

	MealPlan           string `json:"meal_plan,omitempty"`
	DistanceFromCenter int    `json:"distance_from_center,omitempty"` // km
	SortBy             string `json:"sort_by,omitempty"`
	MaxResults         int    `json:"max_results,omitempty"`
}

// accommodation-type filter codes the results page understands
var propertyTypeFilterCodes = map[string]string{
	"hotel":             "204",
	"apartment":         "201",
	"hostel":            "203",
	"bed_and_breakfast": "208",
	"villa":             "213",
	"resort":            "206",
	"guest_house":       "216",
	"guesthouse":        "216",
}

// facility filter codes the results page understands
var facilityCodes = []struct {
	Code    string
	Enabled func(SearchRequest) bool
}{
	{"107", func(r SearchRequest) bool { return r.FreeWifi }},
	{"2", func(r SearchRequest) bool { return r.FreeParking }},
	{"433", func(r SearchRequest) bool { return r.Pool }},
	{"43", func(r SearchRequest) bool { return r.FitnessCenter }},
	{"11", func(r SearchRequest) bool { return r.AirConditioning }},
	{"3", func(r SearchRequest) bool { return r.Restaurant }},
	{"4", func(r SearchRequest) bool { return r.PetsAllowed }},
}

var sortOrders = map[string]string{
	"popularity":   "popularity",
	"price":        "price",
	"review_score": "review_score_and_price",
	"distance":     "distance_from_search",
}

// BuildDetailURL constructs the property page URL. A HotelID that is
// already a full URL on the hosting site passes through with its query
// stripped; otherwise the standard /hotel/<country>/<id>.html path is built.
func BuildDetailURL(baseURL string, req DetailRequest) string {
	var base string
	if strings.Contains(req.HotelID, "booking.com") && strings.Contains(req.HotelID, "http") {
		base = strings.SplitN(req.HotelID, "?", 2)[0]
	} else {
		country := req.CountryCode
		if country == "" {
			country = "fr"
		}
		base = fmt.Sprintf("%s/hotel/%s/%s.html", baseURL, country, req.HotelID)
	}

	var params []string
	if req.Checkin != "" {
		params = append(params, "checkin="+req.Checkin)
	}
	if req.Checkout != "" {
		params = append(params, "checkout="+req.Checkout)
	}
	if req.Adults > 0 {
		params = append(params, "group_adults="+strconv.Itoa(req.Adults))
	}
	if req.Rooms > 0 {
		params = append(params, "no_rooms="+strconv.Itoa(req.Rooms))
	}
	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}

// BuildSearchURL constructs the results page URL with every requested
// filter applied.
func BuildSearchURL(baseURL string, req SearchRequest) string {
	params := url.Values{}
	params.Set("ss", req.City)
	params.Set("checkin", req.Checkin)
	params.Set("checkout", req.Checkout)
	params.Set("group_adults", strconv.Itoa(req.Adults))
	params.Set("group_children", strconv.Itoa(req.Children))
	params.Set("no_rooms", strconv.Itoa(req.Rooms))

	if req.MinPrice > 0 {
		params.Set("min_price", strconv.Itoa(req.MinPrice))
	}
	if req.MaxPrice > 0 {
		params.Set("max_price", strconv.Itoa(req.MaxPrice))
	}
	if req.MinReviewScore > 0 {
		// the site filters on score*10: 80 means 8.0+
		params.Set("review_score", strconv.Itoa(int(req.MinReviewScore*10)))
	}

	for _, ptype := range req.PropertyTypes {
		key := strings.ToLower(strings.TrimSpace(ptype))
		if key == "" || key == "all" {
			continue
		}
		if code, ok := propertyTypeFilterCodes[key]; ok {
			params.Add("nflt", "ht_id="+code)
		}
	}
	for _, star := range req.StarRatings {
		params.Add("nflt", "class="+strconv.Itoa(star))
	}
	for _, fc := range facilityCodes {
		if fc.Enabled(req) {
			params.Add("nflt", "fc="+fc.Code)
		}
	}
	if req.FreeCancellation {
		params.Add("nflt", "fc=1")
	}

	if req.MealPlan != "" && req.MealPlan != "all" {
		params.Set("mealplan", req.MealPlan)
	}
	if req.DistanceFromCenter > 0 {
		params.Set("distance", strconv.Itoa(req.DistanceFromCenter*1000))
	}

	order, ok := sortOrders[req.SortBy]
	if !ok {
		order = "popularity"
	}
	params.Set("order", order)

	return baseURL + "/searchresults.html?" + params.Encode()
}

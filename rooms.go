package hotelextractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxRoomRows   = 30
	maxHouseRules = 30
)

var (
	roomRowSelector = `tr[data-room-id], tr.js-rt-block-row`

	roomNameSelector  = `.hprt-roomtype-link, [data-testid="room-name"]`
	roomPriceSelector = `.bui-price-display__value, [data-testid="price"]`

	roomKeywordPattern = regexp.MustCompile(`(?i)\b(room|suite|studio|bedroom|apartment)\b`)

	blobPricePattern = regexp.MustCompile(`[\x{20AC}$\x{00A3}]\s*(\d[\d,]*(?:\.\d+)?)`)

	capacityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s+(?:adults?|guests?|persons?)`),
		regexp.MustCompile(`(?i)Sleeps\s+(\d+)`),
		regexp.MustCompile(`(?i)Max\s+(\d+)`),
		regexp.MustCompile(`(?i)x\s+(\d+)`),
	}

	roomSizePattern = regexp.MustCompile(`(\d+)\s*m[\x{00B2}2]`)

	// bedKeywords is ordered: the first matching entry wins.
	bedKeywords = []struct {
		Label string
		Terms []string
	}{
		{"King bed", []string{"king bed"}},
		{"Queen bed", []string{"queen bed"}},
		{"Full bed", []string{"full bed", "double bed"}},
		{"Twin beds", []string{"twin beds", "2 single beds"}},
		{"Sofa bed", []string{"sofa bed"}},
	}

	// roomAmenityKeywords is the bounded containment list for per-room
	// amenity subsets.
	roomAmenityKeywords = []string{
		"WiFi", "TV", "Kitchen", "Bathroom", "View", "Air conditioning",
		"Heating", "Balcony", "Bath", "Shower",
	}

	// no dotall: the time must sit on the same line as the label, or a
	// bare nav label would bind to any later time on the page
	checkinPattern  = regexp.MustCompile(`(?i)Check-in.*?(\d{1,2}:\d{2})`)
	checkoutPattern = regexp.MustCompile(`(?i)Check-out.*?(\d{1,2}:\d{2})`)

	houseRuleBlockSelector   = `.b0400e5749`
	houseRuleTitleSelector   = `.e7addce19e`
	houseRuleContentSelector = `.c92998be48, .da7e3382bac`

	priceTokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	nonPriceChars     = regexp.MustCompile(`[^\d.,]`)
)

// extractRooms walks the bounded set of room rows and derives every
// RoomOption sub-field independently from the row's text blob. A row that
// matches nothing still yields a partial option; it never aborts the rest.
func (e *Extractor) extractRooms(snap *Snapshot, tr Trace) []RoomOption {
	var rooms []RoomOption

	snap.Doc.Find(roomRowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxRoomRows {
			return false
		}
		rooms = append(rooms, e.extractRoomRow(row))
		return true
	})

	if len(rooms) > 0 {
		tr["rooms"] = "structural"
	}
	return rooms
}

func (e *Extractor) extractRoomRow(row *goquery.Selection) RoomOption {
	blob := row.Text()
	lower := strings.ToLower(blob)

	room := RoomOption{RoomType: "Unknown Room", Currency: "EUR"}

	if name := nodeText(row.Find(roomNameSelector).First()); name != "" {
		room.RoomType = name
	} else if line := firstRoomKeywordLine(blob); line != "" {
		room.RoomType = line
	}

	if text := nodeText(row.Find(roomPriceSelector).First()); text != "" {
		if price, ok := ParsePrice(text); ok {
			room.Price = &price
		}
	}
	if room.Price == nil {
		if raw, ok := patternCapture(blob, blobPricePattern); ok {
			if price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
				room.Price = &price
			}
		}
	}

	for _, re := range capacityPatterns {
		if raw, ok := patternCapture(blob, re); ok {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				room.Capacity = &n
				break
			}
		}
	}
	if room.Capacity == nil {
		typeLower := strings.ToLower(room.RoomType)
		if strings.Contains(typeLower, "solo") {
			room.Capacity = intPtr(1)
		} else if strings.Contains(typeLower, "double") {
			room.Capacity = intPtr(2)
		}
	}

	if raw, ok := patternCapture(blob, roomSizePattern); ok {
		room.RoomSize = raw + " m²"
	}

	for _, bed := range bedKeywords {
		for _, term := range bed.Terms {
			if strings.Contains(lower, term) {
				room.BedType = bed.Label
				break
			}
		}
		if room.BedType != "" {
			break
		}
	}

	for _, kw := range roomAmenityKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			room.Amenities = append(room.Amenities, kw)
		}
	}

	if strings.Contains(lower, "free cancellation") {
		room.CancellationPolicy = "Free cancellation"
		room.Refundable = true
	} else if strings.Contains(lower, "non-refundable") || strings.Contains(lower, "non refundable") {
		room.CancellationPolicy = "Non-refundable"
	}

	room.BreakfastIncluded = strings.Contains(lower, "breakfast") && strings.Contains(lower, "included")

	return room
}

func firstRoomKeywordLine(blob string) string {
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && roomKeywordPattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// ParsePrice strips currency symbols and thousands separators and extracts
// the first numeric token. It never fails loudly: unparseable input is
// simply absent.
func ParsePrice(text string) (float64, bool) {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	raw, ok := patternCapture(cleaned, priceTokenPattern)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractPolicies captures the printed check-in and check-out times.
func (e *Extractor) extractPolicies(snap *Snapshot, tr Trace) *Policies {
	p := &Policies{}
	if v, ok := patternCapture(snap.RawHTML, checkinPattern); ok {
		p.CheckinFrom = v
	}
	if v, ok := patternCapture(snap.RawHTML, checkoutPattern); ok {
		p.CheckoutUntil = v
	}
	if p.CheckinFrom == "" && p.CheckoutUntil == "" {
		return nil
	}
	tr["policies"] = "pattern"
	return p
}

// extractHouseRules reads each rule block's title and content sub-nodes and
// keeps "title: content" entries within length bounds.
func (e *Extractor) extractHouseRules(snap *Snapshot, tr Trace) []string {
	var rules []string

	snap.Doc.Find(houseRuleBlockSelector).Each(func(_ int, block *goquery.Selection) {
		if len(rules) >= maxHouseRules {
			return
		}
		title := nodeText(block.Find(houseRuleTitleSelector).First())
		content := nodeText(block.Find(houseRuleContentSelector).First())
		if title == "" || content == "" {
			return
		}
		rule := title + ": " + content
		if len(rule) > 10 && len(rule) < 300 {
			rules = append(rules, rule)
		}
	})

	if len(rules) > 0 {
		tr["house_rules"] = "structural"
	}
	return rules
}

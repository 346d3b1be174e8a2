package hotelextractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const maxPopularAmenities = 15

var (
	popularFacilitySelectors = []Selector{
		{Query: `[data-testid="property-most-popular-facilities-wrapper"] li .f6b6d2a959`},
		{Query: `[data-testid="property-most-popular-facilities-wrapper"] li`},
	}

	facilityGroupSelectors = []Selector{
		{Query: `[data-testid="facility-group-container"] li .f6b6d2a959`},
		{Query: `[data-testid="facility-group-container"] li`},
	}

	roomFacilitySelector = `.hprt-facilities-facility`

	// commonAmenities is the low-confidence lexicon matched against the head
	// of the markup when structural lookups came up short.
	commonAmenities = []string{
		"Free WiFi", "Swimming pool", "Fitness centre", "Airport shuttle",
		"Spa and wellness centre", "Room service", "Non-smoking rooms",
		"Restaurant", "Bar", "Air conditioning", "Parking", "Family rooms",
		"Pet friendly", "24-hour front desk", "Terrace", "Garden",
		"Laundry", "Breakfast",
	}

	languageListXPath = `//div[@data-testid="facility-group-container"][.//h3[contains(translate(text(),"LANGUAGES","languages"),"language")]]//li`

	languageSpokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Languages?\s+spoken[:\s]+([A-Za-z\x{00C0}-\x{00FF},\s\x{2022}\x{00B7}]+)`),
	}

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`tel:\s*([+\d\s()\-]{8,20})`),
		regexp.MustCompile(`(?i)Phone:?\s*([+\d\s()\-]{8,20})`),
	}

	emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`)
)

// extractAmenities unions amenity names from JSON-LD amenityFeature, the
// popular-facilities section (kept separately, capped), the per-category
// facility groups, and the room facility attributes. Every candidate passes
// the noise classifier before admission. The final set is deduplicated by
// canonical text and sorted.
func (e *Extractor) extractAmenities(snap *Snapshot, tr Trace) ([]string, []string) {
	set := map[string]struct{}{}
	var popular []string

	admit := func(raw string) bool {
		s := strings.TrimSpace(raw)
		if !isAdmissibleAmenity(s) {
			return false
		}
		set[s] = struct{}{}
		return true
	}

	for _, block := range snap.Blocks {
		features := block.Get("amenityFeature")
		if !features.IsArray() {
			continue
		}
		features.ForEach(func(_, feat gjson.Result) bool {
			admit(feat.Get("name").String())
			return true
		})
	}

	selectEach(snap, func(s *goquery.Selection) {
		if admit(nodeText(s)) && len(popular) < maxPopularAmenities {
			popular = append(popular, nodeText(s))
		}
	}, popularFacilitySelectors...)

	selectEach(snap, func(s *goquery.Selection) {
		admit(nodeText(s))
	}, facilityGroupSelectors...)

	snap.Doc.Find(roomFacilitySelector).Each(func(_ int, s *goquery.Selection) {
		if name, ok := s.Attr("data-name-en"); ok {
			admit(name)
		} else {
			admit(nodeText(s))
		}
	})

	// last resort: known amenity names sitting in the head of the markup
	if len(set) == 0 {
		window := strings.ToLower(snap.prefix(10000))
		for _, name := range commonAmenities {
			if strings.Contains(window, strings.ToLower(name)) {
				set[name] = struct{}{}
			}
		}
	}

	if len(set) == 0 {
		return nil, nil
	}
	tr["amenities"] = "merged"

	amenities := make([]string, 0, len(set))
	for name := range set {
		amenities = append(amenities, name)
	}
	sort.Strings(amenities)
	return amenities, popular
}

// extractLanguages reads the facility group headed by a languages label,
// falling back to a "Languages spoken" pattern over the raw markup.
func (e *Extractor) extractLanguages(snap *Snapshot, tr Trace) []string {
	var languages []string

	if nodes, err := queryAll(snap, languageListXPath); err == nil {
		for _, node := range nodes {
			lang := strings.TrimSpace(innerText(node))
			if len(lang) > 2 && len(lang) < 30 {
				languages = append(languages, lang)
			}
		}
	}

	if len(languages) == 0 {
		for _, re := range languageSpokenPatterns {
			raw, ok := patternCapture(snap.RawHTML, re)
			if !ok {
				continue
			}
			for _, part := range regexp.MustCompile(`[,\x{2022}\x{00B7}\n]`).Split(raw, -1) {
				lang := strings.TrimSpace(part)
				if len(lang) <= 2 || len(lang) >= 30 {
					continue
				}
				if !unicode.IsUpper([]rune(lang)[0]) {
					continue
				}
				lower := strings.ToLower(lang)
				if strings.Contains(lower, "hotel") || strings.Contains(lower, "overview") ||
					strings.Contains(lower, "skip") || strings.Contains(lower, "booking") {
					continue
				}
				languages = append(languages, lang)
			}
			break
		}
	}

	languages = dedupBy(languages, func(s string) (string, bool) {
		return strings.ToLower(s), true
	})
	if len(languages) > maxPopularAmenities {
		languages = languages[:maxPopularAmenities]
	}
	if len(languages) > 0 {
		tr["languages_spoken"] = "merged"
	}
	return languages
}

// extractContact pulls a phone number and an email address from raw markup.
// Email candidates that are really asset filenames are rejected.
func (e *Extractor) extractContact(snap *Snapshot, tr Trace) (string, string) {
	var phone, email string

	for _, re := range phonePatterns {
		if v, ok := patternCapture(snap.RawHTML, re); ok {
			phone = v
			tr["phone"] = "pattern"
			break
		}
	}

	if v, ok := patternCapture(snap.RawHTML, emailPattern); ok {
		lower := strings.ToLower(v)
		if !strings.Contains(lower, ".png") && !strings.Contains(lower, ".jpg") &&
			!strings.Contains(lower, ".gif") && !strings.Contains(lower, ".svg") {
			email = v
			tr["email"] = "pattern"
		}
	}

	return phone, email
}

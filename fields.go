package hotelextractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nameSelectors = []Selector{
		{Query: `h2[data-testid="property-name"]`},
		{Query: `h1[data-testid="title"]`},
		{Query: `h2.pp-header__title`},
	}

	addressSelectors = []Selector{
		{Query: `[data-testid="address"]`},
		{Query: `.hp_address_subtitle`},
		{Query: `span[data-node_tt_id="location_score_tooltip"]`},
	}

	descriptionSelectors = []Selector{
		{Query: `#property_description_content`},
		{Query: `[data-testid="property-description"]`},
		{Query: `.hp_desc_main_content`},
		{Query: `[data-capla-component*="description"]`},
	}

	latitudePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"latitude":\s*(-?[\d.]+)`),
		regexp.MustCompile(`"lat":\s*(-?[\d.]+)`),
	}
	longitudePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"longitude":\s*(-?[\d.]+)`),
		regexp.MustCompile(`"lng":\s*(-?[\d.]+)`),
	}
)

// addressParts is the order the JSON-LD PostalAddress sub-parts are joined.
var addressParts = []string{"streetAddress", "addressLocality", "postalCode", "addressCountry"}

// acceptedTypes is the closed set a JSON-LD @type must fall in to count as a
// property classification.
var acceptedTypes = map[string]bool{
	"Hotel":           true,
	"Apartment":       true,
	"Resort":          true,
	"BedAndBreakfast": true,
	"Hostel":          true,
}

// propertyTypeKeywords maps a canonical classification to the lexical
// variants that betray it in markup. Ordered most-specific first with Hotel
// deliberately last: "hotel" shows up incidentally on nearly every page, so
// it only wins when no narrower classification matched. Tuned to
// English-language markup; other locales would need their own table.
var propertyTypeKeywords = []struct {
	Label string
	Terms []string
}{
	{"Apartment", []string{"apartment", "flat", "appartement"}},
	{"Hostel", []string{"hostel", "auberge"}},
	{"Resort", []string{"resort"}},
	{"Villa", []string{"villa"}},
	{"Guesthouse", []string{"guest house", "guesthouse"}},
	{"Hotel", []string{"hotel", "hôtel"}},
}

var percentPattern = regexp.MustCompile(`[%\d]`)

func (e *Extractor) extractName(snap *Snapshot, tr Trace) string {
	name, ok := runChain(tr, "name",
		step{"structured", func() (string, bool) {
			v, ok := structuredString(snap.Blocks, "name")
			if !ok || len(v) <= 3 {
				return "", false
			}
			return v, true
		}},
		step{"structural", func() (string, bool) {
			v, ok := selectText(snap, nameSelectors...)
			if !ok || len(v) <= 3 {
				return "", false
			}
			return v, true
		}},
	)
	if !ok {
		return "Unknown"
	}
	return name
}

func (e *Extractor) extractAddress(snap *Snapshot, tr Trace) *Address {
	full, _ := runChain(tr, "address",
		step{"structured", func() (string, bool) {
			addr, ok := structuredObject(snap.Blocks, "address")
			if !ok {
				return "", false
			}
			var parts []string
			for _, key := range addressParts {
				if v := strings.TrimSpace(addr.Get(key).String()); v != "" {
					parts = append(parts, v)
				}
			}
			if len(parts) == 0 {
				return "", false
			}
			return strings.Join(parts, ", "), true
		}},
		step{"structural", func() (string, bool) {
			return selectText(snap, addressSelectors...)
		}},
	)

	lat := e.extractCoordinate(snap, tr, "latitude", "geo.latitude", latitudePatterns)
	lon := e.extractCoordinate(snap, tr, "longitude", "geo.longitude", longitudePatterns)

	if full == "" && lat == nil && lon == nil {
		return nil
	}
	return &Address{FullAddress: full, Latitude: lat, Longitude: lon}
}

func (e *Extractor) extractCoordinate(snap *Snapshot, tr Trace, field, path string, patterns []*regexp.Regexp) *float64 {
	raw, ok := runChain(tr, field,
		step{"structured", func() (string, bool) {
			v, ok := structuredFloat(snap.Blocks, path)
			if !ok {
				return "", false
			}
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}},
		step{"pattern", func() (string, bool) {
			for _, re := range patterns {
				if v, ok := patternCapture(snap.RawHTML, re); ok {
					return v, true
				}
			}
			return "", false
		}},
	)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// extractDescription concatenates every non-trivial description candidate
// from structured data and the description containers. The same paragraph is
// routinely sourced twice (JSON-LD and the visible container), so candidates
// are deduplicated by a case-folded 100-char prefix rather than full
// equality.
func (e *Extractor) extractDescription(snap *Snapshot, tr Trace) string {
	var candidates []string

	if v, ok := structuredString(snap.Blocks, "description"); ok && len(v) > 50 {
		candidates = append(candidates, v)
	}

	for _, sel := range descriptionSelectors {
		if v, ok := selectText(snap, sel); ok && len(v) > 50 {
			candidates = append(candidates, v)
		}
	}

	unique := dedupBy(candidates, func(s string) (string, bool) {
		key := strings.ToLower(s)
		if len(key) > 100 {
			key = key[:100]
		}
		return key, true
	})

	if len(unique) == 0 {
		return ""
	}
	if tr != nil {
		tr["description"] = "merged"
	}
	return strings.Join(unique, "\n\n")
}

func (e *Extractor) extractPropertyType(snap *Snapshot, tr Trace) string {
	ptype, _ := runChain(tr, "property_type",
		step{"structured", func() (string, bool) {
			v, ok := structuredString(snap.Blocks, "@type")
			if !ok || !acceptedTypes[v] {
				return "", false
			}
			return v, true
		}},
		step{"structural", func() (string, bool) {
			v, ok := selectText(snap, Selector{Query: `[data-testid="property-type-badge"]`})
			if !ok || len(v) >= 30 {
				return "", false
			}
			// badge text is sometimes a discount or score chip
			if percentPattern.MatchString(v) {
				return "", false
			}
			if label, ok := matchPropertyKeyword(strings.ToLower(v)); ok {
				return label, true
			}
			return v, true
		}},
		step{"pattern", func() (string, bool) {
			return matchPropertyKeyword(strings.ToLower(snap.prefix(10000)))
		}},
	)
	return ptype
}

func matchPropertyKeyword(haystack string) (string, bool) {
	for _, entry := range propertyTypeKeywords {
		for _, term := range entry.Terms {
			if strings.Contains(haystack, term) {
				return entry.Label, true
			}
		}
	}
	return "", false
}

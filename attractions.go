package hotelextractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxAttractions = 100
	// below this many structural finds, the markup-window fallback kicks in
	minAttractionsBeforeFallback = 3
)

var (
	poiListSelector     = `[data-testid="poi-block-list"]`
	poiNameSelectors    = `.d1bc97eb82, .aa225776f2`
	poiDistanceSelector = `.a0a56631d6, .b99b6ef58f`

	// attractionPattern enforces the strict "<Capitalized Name> <distance>"
	// shape a genuine nearby-place line has.
	attractionPattern = regexp.MustCompile(`^([A-Z][A-Za-z0-9&'\x{2019}.,\- ]{2,70}?)\s+(\d+(?:[.,]\d+)?\s*(?:km|m|mi|miles|ft))$`)

	// landmarkPattern supplies extra candidates from a bounded markup window
	// when the structural lookup found too few; it keys on the suffix words
	// landmark names end with.
	landmarkPattern = regexp.MustCompile(`([A-Z][A-Za-z&'\x{2019}\- ]{2,50}\s(?:Museum|Gallery|Park|Garden|Tower|Cathedral|Palace|Castle|Square|Bridge|Station|Airport|Monument|Basilica|Opera))`)
)

// attractionCategories maps category keywords to the fixed category set.
// Ordered so the more specific transit/airport words win over generic ones.
var attractionCategories = []struct {
	Category string
	Terms    []string
}{
	{"Restaurant", []string{"restaurant", "cafe", "café", "coffee", "bar"}},
	{"Museum", []string{"museum", "gallery", "exhibition"}},
	{"Airport", []string{"airport"}},
	{"Public transport", []string{"station", "transit", "transport", "metro", "train", "bus"}},
	{"Park", []string{"park", "garden", "natural"}},
	{"Monument", []string{"tower", "cathedral", "monument", "palace", "castle", "basilica"}},
}

// extractAttractions reads the nearby-places section item by item, gates
// every name through the noise classifier, and categorizes by keyword. When
// the structural pass yields fewer than three places, a landmark-suffix
// pattern over the head of the markup supplies extra candidates.
func (e *Extractor) extractAttractions(snap *Snapshot, tr Trace) []NearbyAttraction {
	var attractions []NearbyAttraction

	snap.Doc.Find(poiListSelector).Each(func(_ int, list *goquery.Selection) {
		sectionCategory := poiSectionCategory(list)

		list.Find("li").Each(func(_ int, item *goquery.Selection) {
			name := nodeText(item.Find(poiNameSelectors).First())
			distance := nodeText(item.Find(poiDistanceSelector).First())

			if name == "" {
				// fall back to the strict one-line shape
				if m := attractionPattern.FindStringSubmatch(nodeText(item)); len(m) == 3 {
					name, distance = strings.TrimSpace(m[1]), m[2]
				}
			}
			if !isAdmissibleAttraction(name) {
				return
			}

			category := sectionCategory
			if category == "" || category == "Attraction" {
				category = categorizeAttraction(name)
			}
			attractions = append(attractions, NearbyAttraction{
				Name:     name,
				Distance: distance,
				Category: category,
			})
		})
	})

	if len(attractions) < minAttractionsBeforeFallback {
		for _, m := range landmarkPattern.FindAllStringSubmatch(snap.prefix(60000), -1) {
			name := strings.TrimSpace(m[1])
			if !isAdmissibleAttraction(name) {
				continue
			}
			attractions = append(attractions, NearbyAttraction{
				Name:     name,
				Category: categorizeAttraction(name),
			})
		}
	}

	attractions = dedupBy(attractions, func(a NearbyAttraction) (string, bool) {
		return strings.ToLower(a.Name), true
	})

	if len(attractions) > maxAttractions {
		attractions = attractions[:maxAttractions]
	}
	if len(attractions) > 0 {
		tr["nearby_attractions"] = "structural"
	}
	return attractions
}

// poiSectionCategory derives a category from the heading of the enclosing
// poi block, when one exists.
func poiSectionCategory(list *goquery.Selection) string {
	heading := nodeText(list.Closest(`[data-testid="poi-block"]`).Find("h3").First())
	if heading == "" {
		return ""
	}
	return categorizeAttraction(heading)
}

// categorizeAttraction maps a name or section heading onto the fixed
// category set; anything unmatched is a generic Attraction.
func categorizeAttraction(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range attractionCategories {
		for _, term := range entry.Terms {
			if strings.Contains(lower, term) {
				return entry.Category
			}
		}
	}
	return "Attraction"
}

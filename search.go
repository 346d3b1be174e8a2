package hotelextractor

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultMaxResults = 25

var (
	propertyCardSelector = `[data-testid="property-card"]`
	cardTitleSelector    = `[data-testid="title"]`
	cardPriceSelector    = `[data-testid="price-and-discounted-price"]`
	cardLinkSelector     = `a[data-testid="title-link"]`
	cardScoreSelector    = `[data-testid="review-score"]`
)

// ExtractSearchResults reads the property cards off a search-results page
// snapshot. Per-card failures are skipped; a page with no recognisable
// cards yields an empty list, not an error.
func (e *Extractor) ExtractSearchResults(snap *Snapshot, req SearchRequest) ([]HotelSummary, error) {
	if snap == nil || snap.Doc == nil {
		return nil, ErrSnapshotUnreadable
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var hotels []HotelSummary
	snap.Doc.Find(propertyCardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= limit {
			return false
		}

		name := nodeText(card.Find(cardTitleSelector).First())
		if name == "" {
			return true
		}

		summary := HotelSummary{
			Name:     name,
			Currency: "EUR",
		}

		if href, ok := card.Find(cardLinkSelector).First().Attr("href"); ok {
			summary.HotelID = hotelIDFromURL(href)
			if strings.HasPrefix(href, "http") {
				summary.URL = href
			} else {
				summary.URL = e.BaseURL + href
			}
		}

		if text := nodeText(card.Find(cardPriceSelector).First()); text != "" {
			if price, ok := ParsePrice(text); ok {
				summary.Price = &price
			}
		}

		if text := nodeText(card.Find(cardScoreSelector).First()); text != "" {
			if raw, ok := patternCapture(text, decimalPattern); ok {
				if score, err := strconv.ParseFloat(raw, 64); err == nil && score >= 0 && score <= 10 {
					summary.ReviewScore = &score
				}
			}
		}

		hotels = append(hotels, summary)
		return true
	})

	return hotels, nil
}

// hotelIDFromURL recovers the property id from a card link, either from an
// explicit hotel_id parameter or from the page filename.
func hotelIDFromURL(href string) string {
	if href == "" {
		return "unknown"
	}
	if idx := strings.Index(href, "hotel_id="); idx >= 0 {
		id := href[idx+len("hotel_id="):]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return id
	}
	trimmed := strings.SplitN(href, "?", 2)[0]
	parts := strings.Split(strings.TrimSuffix(trimmed, "/"), "/")
	last := parts[len(parts)-1]
	return strings.SplitN(last, ".", 2)[0]
}

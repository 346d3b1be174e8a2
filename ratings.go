package hotelextractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	starPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d)-star`),
		regexp.MustCompile(`(?i)(\d)\s+stars?`),
		regexp.MustCompile(`"starRating"[:\s]*"?(\d)"?`),
	}

	reviewScoreSelectors = []Selector{
		{Query: `[data-testid="review-score-badge"]`},
		{Query: `.b5cd09854e.d10a6220b4`},
	}

	reviewCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d[\d,]*)\s+(?:reviews?|avis)`),
		regexp.MustCompile(`"reviewCount":\s*(\d+)`),
	}

	decimalPattern = regexp.MustCompile(`(\d+\.?\d*)`)

	// reviewCategories is the fixed vocabulary a category label must come
	// from; anything else adjacent to the score is noise.
	reviewCategories = []string{
		"Exceptional", "Wonderful", "Excellent", "Very good", "Fabulous",
		"Superb", "Good",
	}

	categoryLabelSelectors = []Selector{
		{Query: `[data-testid="review-score-word"]`},
		{Query: `.review-score-widget__text`},
	}
)

// subscoreCategories maps each of the seven fixed sub-score fields to its
// known label synonyms across page variants and locales.
var subscoreCategories = []struct {
	Field  string
	Labels []string
	Assign func(*ReviewScores, float64)
}{
	{"staff", []string{"Staff", "Personnel"}, func(r *ReviewScores, v float64) { r.Staff = &v }},
	{"facilities", []string{"Facilities", "Équipements", "Equipements"}, func(r *ReviewScores, v float64) { r.Facilities = &v }},
	{"cleanliness", []string{"Cleanliness", "Propreté", "Proprete"}, func(r *ReviewScores, v float64) { r.Cleanliness = &v }},
	{"comfort", []string{"Comfort", "Confort"}, func(r *ReviewScores, v float64) { r.Comfort = &v }},
	{"value_for_money", []string{"Value for money", "Rapport qualité", "Value"}, func(r *ReviewScores, v float64) { r.ValueForMoney = &v }},
	{"location", []string{"Location", "Emplacement"}, func(r *ReviewScores, v float64) { r.Location = &v }},
	{"wifi", []string{"WiFi", "Wi-Fi", "Free WiFi", "Free Wifi"}, func(r *ReviewScores, v float64) { r.Wifi = &v }},
}

// extractStarRating validates inside every strategy: a malformed or
// out-of-range candidate is discarded there so the chain falls through to
// the next strategy instead of consuming the field.
func (e *Extractor) extractStarRating(snap *Snapshot, tr Trace) *int {
	raw, ok := runChain(tr, "star_rating",
		step{"structured", func() (string, bool) {
			v, ok := structuredFloat(snap.Blocks, "starRating.ratingValue", "starRating")
			if !ok {
				return "", false
			}
			return validStars(strconv.Itoa(int(v)))
		}},
		step{"structural", func() (string, bool) {
			// the rendered star row carries one node per star
			for _, expr := range []string{
				`//*[contains(translate(@aria-label,"STAR","star"),"star")]`,
				`//*[contains(@class,"bui-star-rating__icon")]`,
				`//*[name()="svg"][@data-testid="star"]`,
			} {
				if n := countNodes(snap, expr); n >= 1 && n <= 5 {
					return strconv.Itoa(n), true
				}
			}
			return "", false
		}},
		step{"pattern", func() (string, bool) {
			for _, re := range starPatterns {
				v, ok := patternCapture(snap.RawHTML, re)
				if !ok {
					continue
				}
				if v, ok := validStars(v); ok {
					return v, true
				}
			}
			return "", false
		}},
	)
	if !ok {
		return nil
	}
	stars, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &stars
}

func validStars(raw string) (string, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 5 {
		return "", false
	}
	return raw, true
}

func (e *Extractor) extractReviewScore(snap *Snapshot, tr Trace) (*float64, *int, string) {
	var score *float64
	var count *int

	if agg, ok := structuredObject(snap.Blocks, "aggregateRating"); ok {
		if v := agg.Get("ratingValue"); v.Exists() {
			if f := v.Float(); f >= 0 && f <= 10 {
				score = &f
				tr["review_score"] = "structured"
			}
		}
		if v := agg.Get("reviewCount"); v.Exists() {
			c := int(v.Int())
			if c > 0 {
				count = &c
				tr["review_count"] = "structured"
			}
		}
	}

	if score == nil {
		if text, ok := selectText(snap, reviewScoreSelectors...); ok {
			if raw, ok := patternCapture(text, decimalPattern); ok {
				if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f <= 10 {
					score = &f
					tr["review_score"] = "structural"
				}
			}
		}
	}

	if count == nil {
		for _, re := range reviewCountPatterns {
			if raw, ok := patternCapture(snap.RawHTML, re); ok {
				if c, err := strconv.Atoi(strings.ReplaceAll(raw, ",", "")); err == nil && c > 0 {
					count = &c
					tr["review_count"] = "pattern"
					break
				}
			}
		}
	}

	category := e.extractReviewCategory(snap, tr, score)
	return score, count, category
}

// extractReviewCategory locates the fixed-vocabulary label printed next to
// the numeric score, falling back to a category-label node filtered against
// the same vocabulary.
func (e *Extractor) extractReviewCategory(snap *Snapshot, tr Trace, score *float64) string {
	if score != nil {
		scoreText := strconv.FormatFloat(*score, 'f', -1, 64)
		for _, cat := range reviewCategories {
			adjacent := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(scoreText) + `[^a-zA-Z]*(` + regexp.QuoteMeta(cat) + `)`)
			if _, ok := patternCapture(snap.RawHTML, adjacent); ok {
				tr["review_category"] = "pattern"
				return cat
			}
		}
	}

	if text, ok := selectText(snap, categoryLabelSelectors...); ok {
		for _, cat := range reviewCategories {
			if strings.EqualFold(text, cat) {
				tr["review_category"] = "structural"
				return cat
			}
		}
	}
	return ""
}

// extractSubScores fills the seven fixed review categories. Each category is
// tried independently: subscore nodes first, a label-adjacent pattern over
// the raw markup second. The record exists only if at least one category
// succeeded, and never carries a key outside the fixed seven.
func (e *Extractor) extractSubScores(snap *Snapshot, tr Trace) *ReviewScores {
	scores := &ReviewScores{}
	found := 0

	var itemTexts []string
	selectEach(snap, func(s *goquery.Selection) {
		itemTexts = append(itemTexts, s.Text())
	}, Selector{Query: `[data-testid="review-subscore"]`})

	for _, cat := range subscoreCategories {
		value, ok := subScoreFromItems(itemTexts, cat.Labels)
		source := "structural"
		if !ok {
			value, ok = subScoreFromMarkup(snap.RawHTML, cat.Labels)
			source = "pattern"
		}
		if !ok {
			continue
		}
		cat.Assign(scores, value)
		tr["subscore."+cat.Field] = source
		found++
	}

	if found == 0 {
		return nil
	}
	return scores
}

func subScoreFromItems(items []string, labels []string) (float64, bool) {
	for _, text := range items {
		for _, label := range labels {
			if !strings.Contains(text, label) {
				continue
			}
			if raw, ok := patternCapture(text, decimalPattern); ok {
				if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 10 {
					return v, true
				}
			}
		}
	}
	return 0, false
}

func subScoreFromMarkup(rawHTML string, labels []string) (float64, bool) {
	for _, label := range labels {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `[^\d]*?(\d+\.?\d*)`)
		if raw, ok := patternCapture(rawHTML, re); ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 10 {
				return v, true
			}
		}
	}
	return 0, false
}

package hotelextractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxReviewsPerShape = 15

var (
	featuredReviewSelector = `[data-testid="featuredreview"]`
	featuredNameSelector   = `.b08850ce41.f546354b44, [data-testid="featuredreview-reviewer-name"]`
	featuredCountrySel     = `.d838fb5f41.aea5eccb71`
	featuredTextSelector   = `[data-testid="featuredreview-text"]`

	reviewCardSelector   = `.review_list_new_item_block, [data-testid="review-card"]`
	reviewerNameSelector = `.bui-avatar-block__title`
	reviewerCountrySel   = `.bui-avatar-block__subtitle`
	reviewScoreBadgeSel  = `.bui-review-score__badge`
	reviewPositiveSel    = `.review_pos, [data-testid="review-positive-text"]`
	reviewNegativeSel    = `.review_neg, [data-testid="review-negative-text"]`

	reviewDatePattern = regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})`)
)

// extractGuestReviews reads both review-card shapes the page renders: the
// compact featured reviews and the full review list. Results from both are
// concatenated; a review without a reviewer name or without any text is
// dropped.
func (e *Extractor) extractGuestReviews(snap *Snapshot, tr Trace) []GuestReview {
	var reviews []GuestReview

	snap.Doc.Find(featuredReviewSelector).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= maxReviewsPerShape {
			return false
		}
		name := nodeText(item.Find(featuredNameSelector).First())
		text := strings.Trim(nodeText(item.Find(featuredTextSelector).First()), `"`)
		if name == "" || text == "" {
			return true
		}
		reviews = append(reviews, GuestReview{
			ReviewerName:    name,
			ReviewerCountry: nodeText(item.Find(featuredCountrySel).First()),
			ReviewDate:      "Recent",
			PositiveText:    strings.TrimSpace(text),
		})
		return true
	})

	snap.Doc.Find(reviewCardSelector).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= maxReviewsPerShape {
			return false
		}
		if review, ok := extractReviewCard(item); ok {
			reviews = append(reviews, review)
		}
		return true
	})

	if len(reviews) > 0 {
		tr["guest_reviews"] = "structural"
	}
	return reviews
}

func extractReviewCard(item *goquery.Selection) (GuestReview, bool) {
	review := GuestReview{
		ReviewerName:    nodeText(item.Find(reviewerNameSelector).First()),
		ReviewerCountry: nodeText(item.Find(reviewerCountrySel).First()),
		PositiveText:    nodeText(item.Find(reviewPositiveSel).First()),
		NegativeText:    nodeText(item.Find(reviewNegativeSel).First()),
	}

	if review.ReviewerName == "" || (review.PositiveText == "" && review.NegativeText == "") {
		return GuestReview{}, false
	}

	if m, ok := patternCapture(item.Text(), reviewDatePattern); ok {
		review.ReviewDate = m
	}

	if badge := nodeText(item.Find(reviewScoreBadgeSel).First()); badge != "" {
		if raw, ok := patternCapture(badge, decimalPattern); ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 10 {
				review.Score = v
			}
		}
	}

	return review, true
}

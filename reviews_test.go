package hotelextractor

import "testing"

func TestExtractGuestReviews(t *testing.T) {
	e := NewExtractor("")

	t.Run("featured shape", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body>
			<div data-testid="featuredreview">
				<span data-testid="featuredreview-reviewer-name">Amélie</span>
				<span class="d838fb5f41 aea5eccb71">France</span>
				<div data-testid="featuredreview-text">"Lovely stay, very quiet."</div>
			</div>
			<div data-testid="featuredreview">
				<div data-testid="featuredreview-text">"No name on this one."</div>
			</div>
		</body></html>`)

		reviews := e.extractGuestReviews(snap, Trace{})
		if len(reviews) != 1 {
			t.Fatalf("got %d reviews, want 1 (nameless dropped): %v", len(reviews), reviews)
		}
		r := reviews[0]
		if r.ReviewerName != "Amélie" || r.ReviewerCountry != "France" {
			t.Errorf("reviewer = %q / %q", r.ReviewerName, r.ReviewerCountry)
		}
		if r.PositiveText != "Lovely stay, very quiet." {
			t.Errorf("text = %q, want surrounding quotes stripped", r.PositiveText)
		}
		if r.ReviewDate != "Recent" {
			t.Errorf("date = %q, want Recent", r.ReviewDate)
		}
	})

	t.Run("full card shape", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body>
			<div class="review_list_new_item_block">
				<div class="bui-avatar-block__title">Marco</div>
				<div class="bui-avatar-block__subtitle">Italy</div>
				<div class="bui-review-score__badge">9.2</div>
				<span>Reviewed: 14 March 2026</span>
				<p class="review_pos">Great position by the river.</p>
				<p class="review_neg">Thin walls.</p>
			</div>
			<div class="review_list_new_item_block">
				<div class="bui-avatar-block__title">Ghost</div>
			</div>
		</body></html>`)

		reviews := e.extractGuestReviews(snap, Trace{})
		if len(reviews) != 1 {
			t.Fatalf("got %d reviews, want 1 (textless dropped): %v", len(reviews), reviews)
		}
		r := reviews[0]
		if r.ReviewerName != "Marco" || r.ReviewerCountry != "Italy" {
			t.Errorf("reviewer = %q / %q", r.ReviewerName, r.ReviewerCountry)
		}
		if r.PositiveText != "Great position by the river." || r.NegativeText != "Thin walls." {
			t.Errorf("texts = %q / %q", r.PositiveText, r.NegativeText)
		}
		if r.Score != 9.2 {
			t.Errorf("score = %v, want 9.2", r.Score)
		}
		if r.ReviewDate != "14 March 2026" {
			t.Errorf("date = %q", r.ReviewDate)
		}
	})

	t.Run("both shapes concatenate", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body>
			<div data-testid="featuredreview">
				<span data-testid="featuredreview-reviewer-name">Amélie</span>
				<div data-testid="featuredreview-text">"Very quiet."</div>
			</div>
			<div class="review_list_new_item_block">
				<div class="bui-avatar-block__title">Marco</div>
				<p class="review_pos">Great position.</p>
			</div>
		</body></html>`)

		reviews := e.extractGuestReviews(snap, Trace{})
		if len(reviews) != 2 {
			t.Fatalf("got %d reviews, want 2: %v", len(reviews), reviews)
		}
		if reviews[0].ReviewerName != "Amélie" || reviews[1].ReviewerName != "Marco" {
			t.Errorf("order = %q, %q", reviews[0].ReviewerName, reviews[1].ReviewerName)
		}
	})
}

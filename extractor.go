// Package hotelextractor turns a rendered travel-listing page snapshot into
// a typed property record. The source pages are not schema-stable, so every
// field is extracted through an ordered chain of independent strategies
// (structured data, structural lookup, pattern lookup) and the first
// validator-passing value wins. Any field may be legitimately absent;
// partial extraction is the normal outcome, not a failure.
package hotelextractor

import (
	"time"
)

// Extractor runs the field chains against one snapshot at a time. It holds
// no mutable state: calls are independent and safe to run concurrently.
type Extractor struct {
	BaseURL string
}

// NewExtractor returns an extractor building canonical URLs against baseURL.
func NewExtractor(baseURL string) *Extractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Extractor{BaseURL: baseURL}
}

// Extract assembles the property record and the guest-review list from one
// snapshot. It is total over readable snapshots: per-field and per-row
// failures are contained locally and only a nil or unreadable snapshot
// surfaces an error.
func (e *Extractor) Extract(snap *Snapshot, req DetailRequest) (*Result, error) {
	if snap == nil || snap.Doc == nil || snap.Root == nil {
		return nil, ErrSnapshotUnreadable
	}

	tr := Trace{}

	details := &HotelDetails{
		HotelID:  req.HotelID,
		URL:      BuildDetailURL(e.BaseURL, req),
		Currency: "EUR",

		Name:         e.extractName(snap, tr),
		Address:      e.extractAddress(snap, tr),
		Description:  e.extractDescription(snap, tr),
		PropertyType: e.extractPropertyType(snap, tr),
		StarRating:   e.extractStarRating(snap, tr),

		ReviewScoresDetail: e.extractSubScores(snap, tr),

		Rooms:      e.extractRooms(snap, tr),
		Policies:   e.extractPolicies(snap, tr),
		HouseRules: e.extractHouseRules(snap, tr),

		NearbyAttractions: e.extractAttractions(snap, tr),
		LanguagesSpoken:   e.extractLanguages(snap, tr),

		ScrapeTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if req.HotelID != "" {
		details.ScrapeParameters = &req
	}

	details.ReviewScore, details.ReviewCount, details.ReviewCategory = e.extractReviewScore(snap, tr)
	details.Images, details.MainImage = e.extractImages(snap, tr)
	details.Amenities, details.PopularAmenities = e.extractAmenities(snap, tr)
	details.Phone, details.Email = e.extractContact(snap, tr)

	// derived: cheapest price is the minimum over valid room prices
	for _, room := range details.Rooms {
		if room.Price == nil {
			continue
		}
		if details.CheapestPrice == nil || *room.Price < *details.CheapestPrice {
			details.CheapestPrice = floatPtr(*room.Price)
		}
	}

	return &Result{
		Details: details,
		Reviews: e.extractGuestReviews(snap, tr),
		Trace:   tr,
	}, nil
}

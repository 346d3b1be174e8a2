package hotelextractor

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildDetailURL(t *testing.T) {
	t.Run("bare id with defaults", func(t *testing.T) {
		got := BuildDetailURL(DefaultBaseURL, DetailRequest{HotelID: "maison-bleue"})
		want := "https://www.booking.com/hotel/fr/maison-bleue.html"
		if got != want {
			t.Errorf("BuildDetailURL() = %q, want %q", got, want)
		}
	})

	t.Run("country code", func(t *testing.T) {
		got := BuildDetailURL(DefaultBaseURL, DetailRequest{HotelID: "casa-roja", CountryCode: "es"})
		if !strings.Contains(got, "/hotel/es/casa-roja.html") {
			t.Errorf("BuildDetailURL() = %q", got)
		}
	})

	t.Run("stay parameters", func(t *testing.T) {
		got := BuildDetailURL(DefaultBaseURL, DetailRequest{
			HotelID:  "maison-bleue",
			Checkin:  "2026-09-12",
			Checkout: "2026-09-15",
			Adults:   2,
			Rooms:    1,
		})
		for _, part := range []string{"checkin=2026-09-12", "checkout=2026-09-15", "group_adults=2", "no_rooms=1"} {
			if !strings.Contains(got, part) {
				t.Errorf("BuildDetailURL() = %q, missing %q", got, part)
			}
		}
	})

	t.Run("full url passes through with query stripped", func(t *testing.T) {
		got := BuildDetailURL(DefaultBaseURL, DetailRequest{
			HotelID: "https://www.booking.com/hotel/fr/maison-bleue.html?aid=123&sid=456",
		})
		if got != "https://www.booking.com/hotel/fr/maison-bleue.html" {
			t.Errorf("BuildDetailURL() = %q", got)
		}
	})
}

func TestBuildSearchURL(t *testing.T) {
	raw := BuildSearchURL(DefaultBaseURL, SearchRequest{
		City:           "Lyon",
		Checkin:        "2026-09-12",
		Checkout:       "2026-09-15",
		Adults:         2,
		Rooms:          1,
		MinReviewScore: 8.0,
		StarRatings:    []int{4, 5},
		FreeWifi:       true,
		Pool:           true,
		SortBy:         "price",
	})

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	q := parsed.Query()

	if q.Get("ss") != "Lyon" {
		t.Errorf("ss = %q", q.Get("ss"))
	}
	if q.Get("review_score") != "80" {
		t.Errorf("review_score = %q, want 80 (score times ten)", q.Get("review_score"))
	}
	if q.Get("order") != "price" {
		t.Errorf("order = %q", q.Get("order"))
	}

	nflt := q["nflt"]
	wantFilters := map[string]bool{"class=4": false, "class=5": false, "fc=107": false, "fc=433": false}
	for _, f := range nflt {
		if _, ok := wantFilters[f]; ok {
			wantFilters[f] = true
		}
	}
	for f, seen := range wantFilters {
		if !seen {
			t.Errorf("nflt missing %q (got %v)", f, nflt)
		}
	}

	t.Run("accommodation type filters", func(t *testing.T) {
		raw := BuildSearchURL(DefaultBaseURL, SearchRequest{
			City:          "Lyon",
			PropertyTypes: []string{"hotel", "Apartment", "all", "bogus"},
		})
		parsed, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("built URL does not parse: %v", err)
		}
		nflt := parsed.Query()["nflt"]
		seen := map[string]bool{}
		for _, f := range nflt {
			seen[f] = true
		}
		if !seen["ht_id=204"] || !seen["ht_id=201"] {
			t.Errorf("nflt = %v, want ht_id=204 and ht_id=201", nflt)
		}
		if len(nflt) != 2 {
			t.Errorf("nflt = %v, want only the two known type codes", nflt)
		}
	})

	t.Run("unknown sort falls back to popularity", func(t *testing.T) {
		raw := BuildSearchURL(DefaultBaseURL, SearchRequest{City: "Lyon", SortBy: "weird"})
		if !strings.Contains(raw, "order=popularity") {
			t.Errorf("BuildSearchURL() = %q", raw)
		}
	})
}

// Command hotelserver exposes the extraction engine over HTTP: one endpoint
// for full property details, one for search results.
package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/crawlerclub/hotelextractor"
	"github.com/crawlerclub/hotelextractor/config"
	"github.com/crawlerclub/hotelextractor/logging"
)

type server struct {
	cfg       *config.Config
	logger    *slog.Logger
	fetcher   hotelextractor.Fetcher
	extractor *hotelextractor.Extractor
}

func main() {
	logger := logging.SetDefault()
	cfg := config.Load()

	fetcher := hotelextractor.NewBrowserFetcher(cfg.UserAgent, cfg.NavTimeout, cfg.Headless)
	defer fetcher.Close()

	srv := &server{
		cfg:       cfg,
		logger:    logger,
		fetcher:   fetcher,
		extractor: hotelextractor.NewExtractor(cfg.BaseURL),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/healthz", srv.handleHealth)
	r.Get("/hotel_details", srv.handleHotelDetails)
	r.Get("/search", srv.handleSearch)

	logger.Info("hotelserver listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// requestID tags every request with a ULID for log correlation.
func requestID(next http.Handler) http.Handler {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
		ctx := logging.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHotelDetails extracts one property page.
//
// GET /hotel_details?hotel_id=...&country_code=fr&checkin=2026-09-12&checkout=2026-09-15&adults=2&rooms=1
func (s *server) handleHotelDetails(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), s.logger)
	q := r.URL.Query()

	req := hotelextractor.DetailRequest{
		HotelID:     q.Get("hotel_id"),
		CountryCode: q.Get("country_code"),
		Checkin:     q.Get("checkin"),
		Checkout:    q.Get("checkout"),
		Adults:      queryInt(q.Get("adults"), 2),
		Rooms:       queryInt(q.Get("rooms"), 1),
	}
	if req.HotelID == "" {
		writeError(w, http.StatusBadRequest, "hotel_id is required")
		return
	}

	url := hotelextractor.BuildDetailURL(s.cfg.BaseURL, req)
	logger.Info("extracting hotel details", "url", url)

	snap, err := s.fetcher.Fetch(url)
	if err != nil {
		logger.Error("fetch failed", "url", url, "error", err)
		writeError(w, http.StatusBadGateway, "fetching page: "+err.Error())
		return
	}

	result, err := s.extractor.Extract(snap, req)
	if err != nil {
		logger.Error("extraction failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "extracting details: "+err.Error())
		return
	}

	logger.Info("extraction done",
		"hotel", result.Details.Name,
		"images", len(result.Details.Images),
		"amenities", len(result.Details.Amenities),
		"reviews", len(result.Reviews))
	writeJSON(w, http.StatusOK, result)
}

// handleSearch extracts the property cards from a results page.
//
// GET /search?city=Paris&checkin=2026-09-12&checkout=2026-09-15&adults=2
func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), s.logger)
	q := r.URL.Query()

	req := hotelextractor.SearchRequest{
		City:             q.Get("city"),
		Checkin:          q.Get("checkin"),
		Checkout:         q.Get("checkout"),
		Adults:           queryInt(q.Get("adults"), 2),
		Children:         queryInt(q.Get("children"), 0),
		Rooms:            queryInt(q.Get("rooms"), 1),
		MinPrice:         queryInt(q.Get("min_price"), 0),
		MaxPrice:         queryInt(q.Get("max_price"), 0),
		MinReviewScore:   queryFloat(q.Get("min_review_score")),
		PropertyTypes:    queryList(q.Get("property_types")),
		MealPlan:         q.Get("meal_plan"),
		SortBy:           q.Get("sort_by"),
		MaxResults:       queryInt(q.Get("max_results"), 25),
		FreeWifi:         q.Get("free_wifi") == "true",
		FreeParking:      q.Get("free_parking") == "true",
		Pool:             q.Get("pool") == "true",
		FitnessCenter:    q.Get("fitness_center") == "true",
		AirConditioning:  q.Get("air_conditioning") == "true",
		Restaurant:       q.Get("restaurant") == "true",
		PetsAllowed:      q.Get("pets_allowed") == "true",
		FreeCancellation: q.Get("free_cancellation") == "true",
	}
	if req.City == "" || req.Checkin == "" || req.Checkout == "" {
		writeError(w, http.StatusBadRequest, "city, checkin and checkout are required")
		return
	}

	url := hotelextractor.BuildSearchURL(s.cfg.BaseURL, req)
	logger.Info("extracting search results", "url", url)

	snap, err := s.fetcher.Fetch(url)
	if err != nil {
		logger.Error("fetch failed", "url", url, "error", err)
		writeError(w, http.StatusBadGateway, "fetching page: "+err.Error())
		return
	}

	hotels, err := s.extractor.ExtractSearchResults(snap, req)
	if err != nil {
		logger.Error("extraction failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "extracting results: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"request":     req,
		"hotels":      hotels,
		"total_found": len(hotels),
	})
}

func queryInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

func queryList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func queryFloat(s string) float64 {
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

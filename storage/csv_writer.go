package storage

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crawlerclub/hotelextractor"
)

// CSVWriter flattens extracted records into a CSV file. Multi-valued fields
// are joined; rooms and reviews stay in the JSON sinks.
type CSVWriter struct {
	filePath string
	logger   *slog.Logger
}

// NewCSVWriter creates a new CSVWriter.
func NewCSVWriter(filePath string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// Save writes one row per extracted record.
func (w *CSVWriter) Save(details []*hotelextractor.HotelDetails) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"hotel_id", "name", "url", "address", "property_type", "star_rating",
		"review_score", "review_count", "review_category", "cheapest_price",
		"currency", "amenities", "languages_spoken", "phone", "email",
		"scraped_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, d := range details {
		row := []string{
			d.HotelID,
			d.Name,
			d.URL,
			addressText(d),
			d.PropertyType,
			intText(d.StarRating),
			floatText(d.ReviewScore),
			intText(d.ReviewCount),
			d.ReviewCategory,
			floatText(d.CheapestPrice),
			d.Currency,
			strings.Join(d.Amenities, "; "),
			strings.Join(d.LanguagesSpoken, "; "),
			d.Phone,
			d.Email,
			d.ScrapeTimestamp,
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("writing CSV row", "hotel", d.Name, "error", err)
		}
	}

	w.logger.Info("records written to CSV", "path", w.filePath, "rows", len(details))
	return nil
}

// Close is a no-op; the file is closed per Save call.
func (w *CSVWriter) Close() error { return nil }

func addressText(d *hotelextractor.HotelDetails) string {
	if d.Address == nil {
		return ""
	}
	return d.Address.FullAddress
}

func floatText(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

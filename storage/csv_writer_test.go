package storage

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/crawlerclub/hotelextractor"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCSVWriterSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "hotels.csv")
	w := NewCSVWriter(path, discardLogger())

	score := 8.7
	stars := 4
	details := []*hotelextractor.HotelDetails{
		{
			HotelID:         "maison-bleue",
			Name:            "Maison Bleue",
			URL:             "https://www.booking.com/hotel/fr/maison-bleue.html",
			Address:         &hotelextractor.Address{FullAddress: "12 Rue Verte, Lyon"},
			StarRating:      &stars,
			ReviewScore:     &score,
			Currency:        "EUR",
			Amenities:       []string{"Free WiFi", "Terrace"},
			LanguagesSpoken: []string{"English", "French"},
		},
		{
			HotelID:  "bare-minimum",
			Name:     "Bare Minimum",
			Currency: "EUR",
		},
	}

	if err := w.Save(details); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}

	header := rows[0]
	if header[0] != "hotel_id" || header[1] != "name" {
		t.Errorf("unexpected header: %v", header)
	}

	first := rows[1]
	if first[0] != "maison-bleue" || first[1] != "Maison Bleue" {
		t.Errorf("first row = %v", first)
	}
	if first[3] != "12 Rue Verte, Lyon" {
		t.Errorf("address column = %q", first[3])
	}
	if first[5] != "4" {
		t.Errorf("star column = %q", first[5])
	}
	if first[6] != "8.7" {
		t.Errorf("score column = %q", first[6])
	}
	if first[11] != "Free WiFi; Terrace" {
		t.Errorf("amenities column = %q", first[11])
	}

	second := rows[2]
	if second[3] != "" || second[5] != "" || second[6] != "" {
		t.Errorf("optional columns should be empty: %v", second)
	}
}

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/crawlerclub/hotelextractor"

	_ "github.com/lib/pq"
)

// PostgresWriter stores extracted records in PostgreSQL. Scalar fields get
// columns; the multi-valued parts (rooms, images, attractions, sub-scores)
// are kept as JSONB payloads.
type PostgresWriter struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresWriter opens and pings the database.
func NewPostgresWriter(connStr string, logger *slog.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging DB: %w", err)
	}

	logger.Info("connected to PostgreSQL")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the hotels table if it doesn't exist, with indexes.
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS hotels (
		id             SERIAL PRIMARY KEY,
		hotel_id       TEXT        NOT NULL,
		name           TEXT        NOT NULL,
		url            TEXT UNIQUE,
		address        TEXT,
		property_type  VARCHAR(50),
		star_rating    SMALLINT,
		review_score   NUMERIC(4,2),
		review_count   INTEGER,
		cheapest_price NUMERIC(10,2),
		currency       VARCHAR(10),
		payload        JSONB       NOT NULL,
		scraped_at     TIMESTAMP   NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_hotels_hotel_id     ON hotels (hotel_id);
	CREATE INDEX IF NOT EXISTS idx_hotels_review_score ON hotels (review_score);
	CREATE INDEX IF NOT EXISTS idx_hotels_price        ON hotels (cheapest_price);
	`
	if _, err := w.db.Exec(query); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	w.logger.Info("table 'hotels' is ready")
	return nil
}

// Save inserts records in a single transaction, skipping duplicates by URL.
func (w *PostgresWriter) Save(details []*hotelextractor.HotelDetails) error {
	if len(details) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO hotels (hotel_id, name, url, address, property_type,
			star_rating, review_score, review_count, cheapest_price,
			currency, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, d := range details {
		payload, merr := json.Marshal(d)
		if merr != nil {
			w.logger.Warn("skipping record, marshal failed", "hotel", d.Name, "error", merr)
			continue
		}

		_, err = stmt.Exec(
			d.HotelID,
			d.Name,
			d.URL,
			addressText(d),
			d.PropertyType,
			nullableInt(d.StarRating),
			nullableFloat(d.ReviewScore),
			nullableInt(d.ReviewCount),
			nullableFloat(d.CheapestPrice),
			d.Currency,
			payload,
		)
		if err != nil {
			w.logger.Warn("skipping insert", "hotel", d.Name, "error", err)
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	w.logger.Info("records inserted into PostgreSQL", "inserted", inserted, "total", len(details))
	return nil
}

// Close closes the database connection.
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

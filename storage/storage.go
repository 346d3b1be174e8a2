// Package storage persists extracted hotel records.
package storage

import (
	"github.com/crawlerclub/hotelextractor"
)

// Writer is the sink the batch tool writes extracted records into.
type Writer interface {
	Save(details []*hotelextractor.HotelDetails) error
	Close() error
}

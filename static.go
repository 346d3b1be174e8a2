package hotelextractor

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// StaticFetcher fetches markup over plain HTTP. Pages that render their
// content server-side (and cached copies) don't need a browser; the batch
// tool's static mode runs on this.
type StaticFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewStaticFetcher returns a fetcher with a reasonable timeout.
func NewStaticFetcher(userAgent string, timeout time.Duration) *StaticFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StaticFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Fetch downloads the page body and parses it into a snapshot.
func (f *StaticFetcher) Fetch(url string) (*Snapshot, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return NewSnapshot(string(body))
}

package hotelextractor

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Fetcher acquires the rendered page for a URL and hands back an immutable
// snapshot. All waiting (page load, lazy content, scroll) happens here,
// strictly before the snapshot reaches the extraction engine.
type Fetcher interface {
	Fetch(url string) (*Snapshot, error)
}

// BrowserFetcher renders pages through a headless browser. Review sections,
// facility lists, and the room table only materialise after scrolling, so a
// staged scroll runs before capture.
type BrowserFetcher struct {
	Browser   *rod.Browser
	UserAgent string
	Timeout   time.Duration
}

// NewBrowserFetcher launches a browser and connects to it.
func NewBrowserFetcher(userAgent string, timeout time.Duration, headless bool) *BrowserFetcher {
	u := launcher.New().Headless(headless).Set("--no-sandbox").MustLaunch()
	browser := rod.New().ControlURL(u).MustConnect()
	return &BrowserFetcher{
		Browser:   browser,
		UserAgent: userAgent,
		Timeout:   timeout,
	}
}

// Fetch navigates, scrolls the lazy sections into existence, and captures
// the rendered markup as a snapshot.
func (f *BrowserFetcher) Fetch(url string) (*Snapshot, error) {
	page, err := stealth.Page(f.Browser)
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	if f.Timeout > 0 {
		page = page.Timeout(f.Timeout)
	}
	if f.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.UserAgent}); err != nil {
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for load: %w", err)
	}

	f.megaScroll(page)

	content, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading rendered markup: %w", err)
	}

	return NewSnapshot(content)
}

// megaScroll walks the viewport down the page in stages and expands the
// review list when the page offers it. Best effort: a failed step never
// fails the fetch.
func (f *BrowserFetcher) megaScroll(page *rod.Page) {
	for i := 0; i < 10; i++ {
		_, _ = page.Eval(fmt.Sprintf(`() => window.scrollTo(0, %d)`, i*1200))
		time.Sleep(400 * time.Millisecond)
	}
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	time.Sleep(2 * time.Second)

	if el, err := page.Element(`[data-testid="fr-read-all-reviews"]`); err == nil && el != nil {
		_ = el.Click(proto.InputMouseButtonLeft, 1)
		time.Sleep(2 * time.Second)
	}
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() error {
	return f.Browser.Close()
}

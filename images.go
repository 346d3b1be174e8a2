package hotelextractor

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const maxImages = 50

var (
	// hostedImagePattern matches the hosting domain's hotel image path shape
	// in raw markup; the signed query string (k=..., o=...) marks a real
	// gallery asset rather than a sprite or placeholder.
	hostedImagePattern = regexp.MustCompile(`https://cf\.bstatic\.com/xdata/images/hotel/[^\s"'<>]+\.(?:jpg|jpeg|png|webp)\?[^\s"'<>]+`)

	// imageIDPattern captures the stable numeric id embedded before the
	// extension. The surrounding path varies per resolution variant while
	// referring to the same asset, so the id is the dedup identity.
	imageIDPattern = regexp.MustCompile(`/(\d+)\.(?:jpg|jpeg|png|webp)`)

	squareSegment = regexp.MustCompile(`/square\d+/`)
	maxSegment    = regexp.MustCompile(`/max\d+(?:x\d+)?/`)

	imageNodeSelectors = []Selector{
		{Query: `img[src*="bstatic.com/xdata/images/hotel"]`, Attr: "src"},
		{Query: `img[data-src*="bstatic.com/xdata/images/hotel"]`, Attr: "data-src"},
	}
)

// extractImages collects candidate gallery URLs from structured data, image
// nodes, and the raw markup, normalises resolution variants, deduplicates by
// embedded id, and designates the first id-bearing candidate as the main image.
func (e *Extractor) extractImages(snap *Snapshot, tr Trace) ([]string, string) {
	var candidates []string

	for _, block := range snap.Blocks {
		img := block.Get("image")
		if !img.Exists() {
			continue
		}
		if img.IsArray() {
			img.ForEach(func(_, v gjson.Result) bool {
				if s := strings.TrimSpace(v.String()); s != "" {
					candidates = append(candidates, s)
				}
				return true
			})
			continue
		}
		if s := strings.TrimSpace(img.String()); s != "" {
			candidates = append(candidates, s)
		}
	}

	for _, sel := range imageNodeSelectors {
		snap.Doc.Find(sel.Query).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(sel.Attr); ok && strings.TrimSpace(v) != "" {
				candidates = append(candidates, strings.TrimSpace(v))
			}
		})
	}

	var images []string
	for _, raw := range candidates {
		url := html.UnescapeString(raw)
		if _, ok := imageID(url); ok {
			url = normalizeResolution(url)
		}
		images = append(images, url)
	}

	// raw-markup matches additionally need the signed query (k=..., o=...)
	// that marks a real gallery asset rather than a sprite or placeholder
	for _, raw := range hostedImagePattern.FindAllString(snap.RawHTML, -1) {
		url := html.UnescapeString(raw)
		if !strings.Contains(url, "k=") || !strings.Contains(url, "o=") {
			continue
		}
		if _, ok := imageID(url); !ok {
			continue
		}
		images = append(images, normalizeResolution(url))
	}

	images = dedupBy(images, func(u string) (string, bool) { return imageID(u) })

	if len(images) == 0 {
		return nil, ""
	}
	tr["images"] = "merged"
	if len(images) > maxImages {
		images = images[:maxImages]
	}

	// the main image is the first candidate with a stable asset id; an
	// id-less passthrough URL only wins when nothing better exists
	main := images[0]
	for _, url := range images {
		if _, ok := imageID(url); ok {
			main = url
			break
		}
	}
	return images, main
}

// imageID extracts the stable numeric identifier embedded in an image URL
// path. Candidates without one have no dedup identity.
func imageID(url string) (string, bool) {
	m := imageIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// normalizeResolution rewrites resolution-variant path segments to one
// canonical resolution so two sightings of the same asset compare equal.
func normalizeResolution(url string) string {
	url = squareSegment.ReplaceAllString(url, "/max1024x768/")
	return maxSegment.ReplaceAllString(url, "/max1024x768/")
}

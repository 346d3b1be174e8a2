package hotelextractor

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// ErrSnapshotUnreadable is the only error the engine surfaces to its caller:
// the input could not be parsed as a document at all. Missing fields are
// never errors.
var ErrSnapshotUnreadable = errors.New("snapshot unreadable")

var jsonLDPattern = regexp.MustCompile(`(?s)<script[^>]*type=["']application/ld\+json["'][^>]*>(.*?)</script>`)

// Snapshot is an immutable capture of one rendered property page: the raw
// markup, the parsed JSON-LD blocks, and the element tree. The tree is
// parsed once and exposed both as a goquery document (CSS selectors) and as
// the underlying node root (XPath via htmlquery). A Snapshot is never
// mutated after construction.
type Snapshot struct {
	RawHTML string
	Blocks  []gjson.Result
	Doc     *goquery.Document
	Root    *html.Node
}

// NewSnapshot parses rendered markup into a Snapshot. It fails only when the
// input is empty, not valid text, or cannot be parsed as a markup tree.
func NewSnapshot(rawHTML string) (*Snapshot, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ErrSnapshotUnreadable
	}
	if !utf8.ValidString(rawHTML) {
		return nil, ErrSnapshotUnreadable
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil || root == nil {
		return nil, ErrSnapshotUnreadable
	}

	return &Snapshot{
		RawHTML: rawHTML,
		Blocks:  parseJSONLD(rawHTML),
		Doc:     goquery.NewDocumentFromNode(root),
		Root:    root,
	}, nil
}

// parseJSONLD collects every parseable ld+json block in document order.
// Unparseable blocks are skipped, not errors.
func parseJSONLD(rawHTML string) []gjson.Result {
	var blocks []gjson.Result
	for _, m := range jsonLDPattern.FindAllStringSubmatch(rawHTML, -1) {
		body := strings.TrimSpace(m[1])
		if !gjson.Valid(body) {
			continue
		}
		parsed := gjson.Parse(body)
		if parsed.IsArray() {
			parsed.ForEach(func(_, v gjson.Result) bool {
				if v.IsObject() {
					blocks = append(blocks, v)
				}
				return true
			})
			continue
		}
		if parsed.IsObject() {
			blocks = append(blocks, parsed)
		}
	}
	return blocks
}

// prefix returns the first n bytes of the raw markup, used to bound the
// noisiest pattern lookups to the head of the document.
func (s *Snapshot) prefix(n int) string {
	if len(s.RawHTML) <= n {
		return s.RawHTML
	}
	return s.RawHTML[:n]
}

package hotelextractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// Selector is one structural descriptor candidate. Query is a CSS selector
// unless XPath is set; descriptors are opaque to field logic, which only
// orders them. When Attr is non-empty the named attribute is read instead of
// the text content.
type Selector struct {
	Query string
	Attr  string
	XPath bool
}

// step is one strategy in a field chain: a named attempt that either yields
// a validator-passing value or falls through to the next step.
type step struct {
	name string
	run  func() (string, bool)
}

// runChain evaluates steps in order and short-circuits on the first success,
// recording the winning strategy name for the field. Exhaustion is not an
// error; the field is simply absent.
func runChain(tr Trace, field string, steps ...step) (string, bool) {
	for _, s := range steps {
		if v, ok := s.run(); ok {
			if tr != nil {
				tr[field] = s.name
			}
			return v, true
		}
	}
	return "", false
}

// structuredString scans the JSON-LD blocks in document order and returns
// the first non-empty string any of the given paths resolves to.
func structuredString(blocks []gjson.Result, paths ...string) (string, bool) {
	for _, block := range blocks {
		for _, path := range paths {
			v := block.Get(path)
			if !v.Exists() {
				continue
			}
			if s := strings.TrimSpace(v.String()); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// structuredFloat is structuredString for numeric properties.
func structuredFloat(blocks []gjson.Result, paths ...string) (float64, bool) {
	for _, block := range blocks {
		for _, path := range paths {
			v := block.Get(path)
			if v.Exists() && v.Type != gjson.Null {
				return v.Float(), true
			}
		}
	}
	return 0, false
}

// structuredObject returns the first block where path resolves to an object.
func structuredObject(blocks []gjson.Result, path string) (gjson.Result, bool) {
	for _, block := range blocks {
		v := block.Get(path)
		if v.Exists() && v.IsObject() {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// selectText tries each descriptor in order and returns the first
// non-whitespace text (or attribute value) it yields.
func selectText(snap *Snapshot, sels ...Selector) (string, bool) {
	for _, sel := range sels {
		if sel.XPath {
			node, err := htmlquery.Query(snap.Root, sel.Query)
			if err != nil || node == nil {
				continue
			}
			var text string
			if sel.Attr != "" {
				text = htmlquery.SelectAttr(node, sel.Attr)
			} else {
				text = htmlquery.InnerText(node)
			}
			if text = strings.TrimSpace(text); text != "" {
				return text, true
			}
			continue
		}

		node := snap.Doc.Find(sel.Query).First()
		if node.Length() == 0 {
			continue
		}
		var text string
		if sel.Attr != "" {
			text, _ = node.Attr(sel.Attr)
		} else {
			text = node.Text()
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, true
		}
	}
	return "", false
}

// selectEach runs fn over every node matched by the first descriptor that
// matches anything at all. CSS descriptors only; multi-valued XPath lookups
// go through countNodes/htmlquery directly.
func selectEach(snap *Snapshot, fn func(*goquery.Selection), sels ...Selector) bool {
	for _, sel := range sels {
		nodes := snap.Doc.Find(sel.Query)
		if nodes.Length() == 0 {
			continue
		}
		nodes.Each(func(_ int, s *goquery.Selection) { fn(s) })
		return true
	}
	return false
}

// countNodes counts the nodes an XPath expression matches.
func countNodes(snap *Snapshot, expr string) int {
	nodes, err := htmlquery.QueryAll(snap.Root, expr)
	if err != nil {
		return 0
	}
	return len(nodes)
}

// queryAll runs an XPath expression over the snapshot tree.
func queryAll(snap *Snapshot, expr string) ([]*html.Node, error) {
	return htmlquery.QueryAll(snap.Root, expr)
}

// innerText is the text content of a tree node.
func innerText(n *html.Node) string {
	return htmlquery.InnerText(n)
}

// patternCapture returns the first capture group of re in scope. Every
// pattern-lookup regex in this package carries exactly one capture group;
// raw-markup search has no structural guarantee, so these run last in every
// chain.
func patternCapture(scope string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(scope)
	if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// nodeText is the trimmed text content of a selection.
func nodeText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// firstLine returns the first non-empty line of a text blob.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

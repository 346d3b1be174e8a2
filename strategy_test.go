package hotelextractor

import (
	"regexp"
	"testing"

	"github.com/tidwall/gjson"
)

func TestRunChain(t *testing.T) {
	t.Run("first success short-circuits", func(t *testing.T) {
		tr := Trace{}
		calls := 0
		v, ok := runChain(tr, "field",
			step{"structured", func() (string, bool) { calls++; return "", false }},
			step{"structural", func() (string, bool) { calls++; return "yes", true }},
			step{"pattern", func() (string, bool) { calls++; return "never", true }},
		)
		if !ok || v != "yes" {
			t.Fatalf("runChain() = %q, %v", v, ok)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2 (later steps must not run)", calls)
		}
		if tr["field"] != "structural" {
			t.Errorf("trace = %q, want %q", tr["field"], "structural")
		}
	})

	t.Run("exhaustion is not an error", func(t *testing.T) {
		tr := Trace{}
		v, ok := runChain(tr, "field",
			step{"structured", func() (string, bool) { return "", false }},
		)
		if ok || v != "" {
			t.Errorf("runChain() = %q, %v, want absent", v, ok)
		}
		if _, present := tr["field"]; present {
			t.Error("trace must stay empty for an absent field")
		}
	})

	t.Run("nil trace", func(t *testing.T) {
		v, ok := runChain(nil, "field",
			step{"structured", func() (string, bool) { return "ok", true }},
		)
		if !ok || v != "ok" {
			t.Errorf("runChain(nil trace) = %q, %v", v, ok)
		}
	})
}

func TestStructuredString(t *testing.T) {
	blocks := []gjson.Result{
		gjson.Parse(`{"name":"","other":"x"}`),
		gjson.Parse(`{"name":"Maison Bleue"}`),
	}

	t.Run("skips empty values across blocks", func(t *testing.T) {
		v, ok := structuredString(blocks, "name")
		if !ok || v != "Maison Bleue" {
			t.Errorf("structuredString() = %q, %v", v, ok)
		}
	})

	t.Run("multiple paths in one block", func(t *testing.T) {
		v, ok := structuredString(blocks, "missing", "other")
		if !ok || v != "x" {
			t.Errorf("structuredString() = %q, %v", v, ok)
		}
	})

	t.Run("absent path", func(t *testing.T) {
		if _, ok := structuredString(blocks, "nope"); ok {
			t.Error("expected absence for unknown path")
		}
	})
}

func TestSelectText(t *testing.T) {
	snap := mustSnapshot(t, `<html><body>
		<h2 data-testid="property-name">  Maison Bleue  </h2>
		<a class="link" href="/x.html">go</a>
		<div class="empty">   </div>
	</body></html>`)

	t.Run("css text", func(t *testing.T) {
		v, ok := selectText(snap, Selector{Query: `h2[data-testid="property-name"]`})
		if !ok || v != "Maison Bleue" {
			t.Errorf("selectText() = %q, %v", v, ok)
		}
	})

	t.Run("css attribute", func(t *testing.T) {
		v, ok := selectText(snap, Selector{Query: `a.link`, Attr: "href"})
		if !ok || v != "/x.html" {
			t.Errorf("selectText(attr) = %q, %v", v, ok)
		}
	})

	t.Run("xpath", func(t *testing.T) {
		v, ok := selectText(snap, Selector{Query: `//h2[@data-testid="property-name"]`, XPath: true})
		if !ok || v != "Maison Bleue" {
			t.Errorf("selectText(xpath) = %q, %v", v, ok)
		}
	})

	t.Run("whitespace-only match falls through to next descriptor", func(t *testing.T) {
		v, ok := selectText(snap,
			Selector{Query: `div.empty`},
			Selector{Query: `h2[data-testid="property-name"]`},
		)
		if !ok || v != "Maison Bleue" {
			t.Errorf("selectText() = %q, %v", v, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := selectText(snap, Selector{Query: `div.absent`}); ok {
			t.Error("expected no match")
		}
	})
}

func TestPatternCapture(t *testing.T) {
	re := regexp.MustCompile(`score:\s*(\d+)`)

	if v, ok := patternCapture("score: 42 pts", re); !ok || v != "42" {
		t.Errorf("patternCapture() = %q, %v", v, ok)
	}
	if _, ok := patternCapture("no score here", re); ok {
		t.Error("expected no capture")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n  \n  Deluxe Room  \nextra"); got != "Deluxe Room" {
		t.Errorf("firstLine() = %q", got)
	}
	if got := firstLine("   \n \n"); got != "" {
		t.Errorf("firstLine(blank) = %q, want empty", got)
	}
}

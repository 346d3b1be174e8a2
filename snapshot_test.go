package hotelextractor

import (
	"errors"
	"testing"
)

func mustSnapshot(t *testing.T, rawHTML string) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(rawHTML)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

func TestNewSnapshot(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewSnapshot("")
		if !errors.Is(err, ErrSnapshotUnreadable) {
			t.Errorf("NewSnapshot(\"\") error = %v, want ErrSnapshotUnreadable", err)
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := NewSnapshot("   \n\t  ")
		if !errors.Is(err, ErrSnapshotUnreadable) {
			t.Errorf("NewSnapshot(whitespace) error = %v, want ErrSnapshotUnreadable", err)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, err := NewSnapshot("<html>\xff\xfe</html>")
		if !errors.Is(err, ErrSnapshotUnreadable) {
			t.Errorf("NewSnapshot(invalid utf8) error = %v, want ErrSnapshotUnreadable", err)
		}
	})

	t.Run("valid markup", func(t *testing.T) {
		snap, err := NewSnapshot(`<html><body><h1>Title</h1></body></html>`)
		if err != nil {
			t.Fatalf("NewSnapshot() error = %v", err)
		}
		if snap.Doc == nil || snap.Root == nil {
			t.Error("snapshot is missing a parsed tree view")
		}
	})

	t.Run("truncated markup still parses", func(t *testing.T) {
		// html5 parsing is forgiving; a cut-off document is not unreadable
		if _, err := NewSnapshot(`<html><body><div class="x`); err != nil {
			t.Errorf("NewSnapshot(truncated) error = %v, want nil", err)
		}
	})
}

func TestParseJSONLD(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		blocks := parseJSONLD(`<script type="application/ld+json">{"name":"Maison Bleue"}</script>`)
		if len(blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(blocks))
		}
		if got := blocks[0].Get("name").String(); got != "Maison Bleue" {
			t.Errorf("name = %q, want %q", got, "Maison Bleue")
		}
	})

	t.Run("top-level array is flattened", func(t *testing.T) {
		blocks := parseJSONLD(`<script type="application/ld+json">[{"a":1},{"b":2}]</script>`)
		if len(blocks) != 2 {
			t.Fatalf("got %d blocks, want 2", len(blocks))
		}
	})

	t.Run("invalid json is skipped", func(t *testing.T) {
		raw := `<script type="application/ld+json">{not json}</script>` +
			`<script type="application/ld+json">{"ok":true}</script>`
		blocks := parseJSONLD(raw)
		if len(blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(blocks))
		}
		if !blocks[0].Get("ok").Bool() {
			t.Error("surviving block is not the valid one")
		}
	})

	t.Run("document order", func(t *testing.T) {
		raw := `<script type="application/ld+json">{"ord":1}</script>` +
			`<div>filler</div>` +
			`<script type="application/ld+json">{"ord":2}</script>`
		blocks := parseJSONLD(raw)
		if len(blocks) != 2 || blocks[0].Get("ord").Int() != 1 || blocks[1].Get("ord").Int() != 2 {
			t.Errorf("blocks out of document order: %v", blocks)
		}
	})
}

func TestSnapshotPrefix(t *testing.T) {
	snap := &Snapshot{RawHTML: "abcdef"}
	if got := snap.prefix(3); got != "abc" {
		t.Errorf("prefix(3) = %q, want %q", got, "abc")
	}
	if got := snap.prefix(100); got != "abcdef" {
		t.Errorf("prefix(100) = %q, want full input", got)
	}
}

package hotelextractor

import (
	"strings"
	"testing"
)

func TestImageID(t *testing.T) {
	tests := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://cf.bstatic.com/xdata/images/hotel/max500/123456789.jpg?k=a&o=b", "123456789", true},
		{"https://cf.bstatic.com/xdata/images/hotel/square60/987.webp?k=a&o=b", "987", true},
		{"https://cf.bstatic.com/xdata/images/hotel/banner.jpg", "", false},
	}
	for _, tt := range tests {
		id, ok := imageID(tt.url)
		if id != tt.id || ok != tt.ok {
			t.Errorf("imageID(%q) = %q, %v, want %q, %v", tt.url, id, ok, tt.id, tt.ok)
		}
	}
}

func TestNormalizeResolution(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://x/xdata/images/hotel/square60/1.jpg", "https://x/xdata/images/hotel/max1024x768/1.jpg"},
		{"https://x/xdata/images/hotel/max500/1.jpg", "https://x/xdata/images/hotel/max1024x768/1.jpg"},
		{"https://x/xdata/images/hotel/max300x200/1.jpg", "https://x/xdata/images/hotel/max1024x768/1.jpg"},
		{"https://x/xdata/images/hotel/1.jpg", "https://x/xdata/images/hotel/1.jpg"},
	}
	for _, tt := range tests {
		if got := normalizeResolution(tt.in); got != tt.want {
			t.Errorf("normalizeResolution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractImages(t *testing.T) {
	e := NewExtractor("")

	t.Run("resolution variants collapse to one asset", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body>
			<img src="https://cf.bstatic.com/xdata/images/hotel/square60/111.jpg?k=aa&o=bb">
			<img src="https://cf.bstatic.com/xdata/images/hotel/max500/111.jpg?k=aa&o=bb">
			<img src="https://cf.bstatic.com/xdata/images/hotel/max500/222.jpg?k=cc&o=dd">
		</body></html>`)

		images, main := e.extractImages(snap, Trace{})
		if len(images) != 2 {
			t.Fatalf("got %d images, want 2: %v", len(images), images)
		}
		if main != images[0] {
			t.Errorf("main image = %q, want first entry %q", main, images[0])
		}
		for _, url := range images {
			if !strings.Contains(url, "/max1024x768/") {
				t.Errorf("image %q is not resolution-normalised", url)
			}
		}
	})

	t.Run("structured image field", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><head>
			<script type="application/ld+json">{"image":["https://cf.bstatic.com/xdata/images/hotel/max500/333.jpg?k=aa&o=bb"]}</script>
		</head><body></body></html>`)

		images, _ := e.extractImages(snap, Trace{})
		if len(images) != 1 {
			t.Fatalf("got %d images, want 1: %v", len(images), images)
		}
	})

	t.Run("raw markup candidates need the signed query", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body>
			<div data-x="https://cf.bstatic.com/xdata/images/hotel/max500/444.jpg?unsigned=1"></div>
			<div data-y="https://cf.bstatic.com/xdata/images/hotel/max500/555.jpg?k=aa&amp;o=bb"></div>
		</body></html>`)

		images, _ := e.extractImages(snap, Trace{})
		if len(images) != 1 {
			t.Fatalf("got %d images, want 1 (unsigned dropped): %v", len(images), images)
		}
		if !strings.Contains(images[0], "/555.jpg") {
			t.Errorf("kept image = %q, want the signed 555 asset", images[0])
		}
	})

	t.Run("main image prefers an id-bearing asset", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><head>
			<script type="application/ld+json">{"image":"https://cf.bstatic.com/xdata/images/hotel/banner.jpg"}</script>
		</head><body>
			<img src="https://cf.bstatic.com/xdata/images/hotel/max500/777.jpg?k=aa&o=bb">
		</body></html>`)

		images, main := e.extractImages(snap, Trace{})
		if len(images) != 2 {
			t.Fatalf("got %d images, want 2: %v", len(images), images)
		}
		if !strings.Contains(main, "/777.jpg") {
			t.Errorf("main image = %q, want the 777 asset over the id-less banner", main)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		snap := mustSnapshot(t, `<html><body><p>plain page</p></body></html>`)
		images, main := e.extractImages(snap, Trace{})
		if images != nil || main != "" {
			t.Errorf("images = %v main = %q, want absent", images, main)
		}
	})
}

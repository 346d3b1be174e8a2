package hotelextractor

import (
	"reflect"
	"strings"
	"testing"
)

func TestDedupBy(t *testing.T) {
	t.Run("keeps first-seen order", func(t *testing.T) {
		in := []string{"b", "a", "B", "c", "a"}
		got := dedupBy(in, func(s string) (string, bool) {
			return strings.ToLower(s), true
		})
		want := []string{"b", "a", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dedupBy() = %v, want %v", got, want)
		}
	})

	t.Run("keyless items pass through", func(t *testing.T) {
		in := []string{"x", "x", "keyed", "keyed"}
		got := dedupBy(in, func(s string) (string, bool) {
			if s == "x" {
				return "", false
			}
			return s, true
		})
		want := []string{"x", "x", "keyed"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("dedupBy() = %v, want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got := dedupBy(nil, func(s string) (string, bool) { return s, true })
		if len(got) != 0 {
			t.Errorf("dedupBy(nil) = %v, want empty", got)
		}
	})
}

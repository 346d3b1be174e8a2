package hotelextractor

// dedupBy collapses items sharing a derived key, keeping first-seen order.
// Items whose key function returns ("", false) have no stable identity and
// pass through untouched: they are never deduplicated against each other.
// Images key on the numeric id embedded in the URL path, attractions on the
// name, amenities on the canonical text.
func dedupBy[T any](items []T, key func(T) (string, bool)) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			out = append(out, item)
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

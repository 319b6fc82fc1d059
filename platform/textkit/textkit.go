// Package textkit provides case-insensitive text grouping utilities.
// Grouping fields like place, country or team name arrive from the sheet with
// inconsistent casing; these helpers compare on a normalized key while keeping
// the first-seen casing as the display label.
// This is part of the platform layer and contains no business logic.
package textkit

import "strings"

// Normalize returns the canonical comparison key for a text value:
// lowercased and trimmed. It is idempotent.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Equal reports whether two values normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// GroupBy buckets items by the normalized key of keyFn(item). The display
// label of each bucket is the raw key text of the first item seen for that
// normalized key. Items whose key is empty or whitespace-only are excluded.
func GroupBy[T any](items []T, keyFn func(T) string) map[string][]T {
	groups := make(map[string][]T)
	labels := make(map[string]string) // normalized key -> display label

	for _, item := range items {
		raw := keyFn(item)
		key := Normalize(raw)
		if key == "" {
			continue
		}

		label, ok := labels[key]
		if !ok {
			label = raw
			labels[key] = raw
		}
		groups[label] = append(groups[label], item)
	}

	return groups
}

// CountBy is GroupBy reduced to group sizes.
func CountBy[T any](items []T, keyFn func(T) string) map[string]int {
	counts := make(map[string]int)
	for label, group := range GroupBy(items, keyFn) {
		counts[label] = len(group)
	}
	return counts
}

// Unique returns the values deduplicated case-insensitively, first-seen
// casing retained, input order preserved.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := Normalize(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

package filter

import (
	"sort"
	"time"

	"leadboard_backend/internal/leads/domain"
)

// Sort directions. "oldest" is the dashboard default.
const (
	SortOldestFirst = "oldest"
	SortNewestFirst = "newest"
)

// SortByDateTime returns a new slice ordered by lead timestamp. Leads with a
// missing or unparseable dateTime sort as the zero time in both directions.
// The sort is stable: ties keep their input order.
func SortByDateTime(leads []domain.Lead, direction string) []domain.Lead {
	type keyed struct {
		lead domain.Lead
		at   time.Time
	}

	items := make([]keyed, len(leads))
	for i, lead := range leads {
		items[i].lead = lead
		if t, ok := lead.Timestamp(); ok {
			items[i].at = t
		}
	}

	newest := direction == SortNewestFirst
	sort.SliceStable(items, func(i, j int) bool {
		if newest {
			return items[i].at.After(items[j].at)
		}
		return items[i].at.Before(items[j].at)
	})

	out := make([]domain.Lead, len(items))
	for i, item := range items {
		out[i] = item.lead
	}
	return out
}

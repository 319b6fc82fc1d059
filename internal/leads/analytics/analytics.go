// Package analytics computes the derived statistics behind the dashboard
// tiles and filter-pick modals. Every function is a pure pass over the lead
// snapshot; view code invokes these instead of re-deriving counts inline.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/textkit"
)

// Summary holds the headline dashboard counts.
type Summary struct {
	Total       int `json:"total"`
	New         int `json:"new"`
	Contacted   int `json:"contacted"`
	Qualified   int `json:"qualified"`
	WaitingList int `json:"waitingList"`
	Lost        int `json:"lost"`
	Won         int `json:"won"`
	Spam        int `json:"spam"`

	Pending    int `json:"pending"`
	Forwarded  int `json:"forwarded"`
	Removed    int `json:"removed"`
	Genuine    int `json:"genuine"`
	RecentWeek int `json:"recentWeek"`

	PendingRate    string `json:"pendingRate"`
	ForwardedRate  string `json:"forwardedRate"`
	RemovedRate    string `json:"removedRate"`
	ConversionRate string `json:"conversionRate"`
}

// Summarize computes the headline counts for the dashboard tiles. now anchors
// the trailing-week window.
func Summarize(leads []domain.Lead, now time.Time) Summary {
	s := Summary{Total: len(leads)}
	weekAgo := now.Add(-7 * 24 * time.Hour)

	for _, lead := range leads {
		switch lead.CurrentStatus {
		case domain.StatusNew:
			s.New++
		case domain.StatusContacted:
			s.Contacted++
		case domain.StatusQualified:
			s.Qualified++
		case domain.StatusWaitingList:
			s.WaitingList++
		case domain.StatusLost:
			s.Lost++
		case domain.StatusWon:
			s.Won++
		case domain.StatusSpam:
			s.Spam++
		}

		// Pending / forwarded / removed are independent counts; removed is a
		// union (terminal status OR removed marker) counted once per lead.
		if lead.IsPending() {
			s.Pending++
		}
		if lead.IsForwarded() {
			s.Forwarded++
		}
		if lead.IsRemoved() {
			s.Removed++
		}
		if lead.IsGenuine() {
			s.Genuine++
		}
		if t, ok := lead.Timestamp(); ok && !t.Before(weekAgo) {
			s.RecentWeek++
		}
	}

	s.PendingRate = Rate(s.Pending, s.Total)
	s.ForwardedRate = Rate(s.Forwarded, s.Total)
	s.RemovedRate = Rate(s.Removed, s.Total)
	s.ConversionRate = Rate(s.Won, s.Total)

	return s
}

// Rate renders part/total as a percentage with one decimal place, "0.0" when
// total is zero.
func Rate(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// TopValue is one row of a top-N grouping.
type TopValue struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopValues groups leads case-insensitively by keyFn and returns the n most
// frequent values, count descending. Ties keep the order the labels were
// first encountered in. Empty keys are excluded.
func TopValues(leads []domain.Lead, keyFn func(domain.Lead) string, n int) []TopValue {
	counts := make(map[string]int)
	labels := make(map[string]string)
	order := make([]string, 0)

	for _, lead := range leads {
		raw := keyFn(lead)
		key := textkit.Normalize(raw)
		if key == "" {
			continue
		}
		if _, ok := labels[key]; !ok {
			labels[key] = raw
			order = append(order, key)
		}
		counts[key]++
	}

	// Stable sort keeps first-encounter order for equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if n > 0 && len(order) > n {
		order = order[:n]
	}

	out := make([]TopValue, len(order))
	for i, key := range order {
		out[i] = TopValue{Label: labels[key], Count: counts[key]}
	}
	return out
}

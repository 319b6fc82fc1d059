// Package filter evaluates the dashboard's filter dimensions over an
// in-memory lead snapshot. All dimensions are optional and combined with AND;
// malformed lead fields never fail a whole evaluation, they just don't match.
package filter

import (
	"strings"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/textkit"
)

// Team filter values with special meaning, alongside literal team names.
const (
	TeamForwarded = "forwarded"
	TeamRemoved   = "removed"
)

// Filters holds one value per filter dimension. Zero values mean the
// dimension is not applied.
type Filters struct {
	Search  string // substring across all display fields
	Status  string // exact status, case-insensitive
	Place   string
	Country string
	Quality string
	Team    string // literal team name, or TeamForwarded / TeamRemoved
	Pending bool   // only leads never routed to a team
	Hour    string // hour-range label, e.g. "6:00 PM - 12:00 AM"
	Date    string // exact local calendar date, YYYY-MM-DD
}

// Active reports whether any dimension is set.
func (f Filters) Active() bool {
	return f.Search != "" || f.Status != "" || f.Place != "" || f.Country != "" ||
		f.Quality != "" || f.Team != "" || f.Pending || f.Hour != "" || f.Date != ""
}

// Apply returns the leads matching every active dimension, preserving input
// order. With no active dimensions the input is returned unchanged.
func (f Filters) Apply(leads []domain.Lead) []domain.Lead {
	if !f.Active() {
		return leads
	}

	out := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if f.matches(lead) {
			out = append(out, lead)
		}
	}
	return out
}

func (f Filters) matches(lead domain.Lead) bool {
	if f.Search != "" && !matchesSearch(lead, f.Search) {
		return false
	}
	if f.Status != "" && !textkit.Equal(string(lead.CurrentStatus), f.Status) {
		return false
	}
	if f.Place != "" && !textkit.Equal(lead.Place, f.Place) {
		return false
	}
	if f.Country != "" && !textkit.Equal(lead.Country, f.Country) {
		return false
	}
	if f.Quality != "" && !textkit.Equal(string(lead.LeadQuality), f.Quality) {
		return false
	}
	if f.Team != "" && !matchesTeam(lead, f.Team) {
		return false
	}
	if f.Pending && !lead.IsPending() {
		return false
	}
	if f.Hour != "" && !matchesHour(lead, f.Hour) {
		return false
	}
	if f.Date != "" && !matchesDate(lead, f.Date) {
		return false
	}
	return true
}

// matchesSearch looks for the term in any display field, case-insensitively.
func matchesSearch(lead domain.Lead, term string) bool {
	needle := textkit.Normalize(term)
	if needle == "" {
		return true
	}

	haystacks := []string{
		lead.Name,
		lead.Phone,
		lead.SpecialNotes,
		lead.Country,
		lead.Place,
		string(lead.LeadQuality),
		string(lead.CurrentStatus),
		lead.ForwardedTo,
		lead.SlNo,
	}
	for _, h := range haystacks {
		if strings.Contains(textkit.Normalize(h), needle) {
			return true
		}
	}
	return false
}

func matchesTeam(lead domain.Lead, team string) bool {
	switch textkit.Normalize(team) {
	case TeamForwarded:
		return lead.IsForwarded()
	case TeamRemoved:
		return lead.IsRemoved()
	default:
		return textkit.Equal(lead.ForwardedTo, team)
	}
}

func matchesHour(lead domain.Lead, label string) bool {
	start, end, ok := domain.ParseHourRange(label)
	if !ok {
		return false
	}
	hour, ok := lead.Hour()
	if !ok {
		return false
	}
	return domain.InHourRange(hour, start, end)
}

func matchesDate(lead domain.Lead, date string) bool {
	key, ok := lead.DateKey()
	if !ok {
		return false
	}
	return key == strings.TrimSpace(date)
}

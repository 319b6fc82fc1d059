package analytics

import (
	"sort"
	"time"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/textkit"
)

// HourBucket is one time-of-day bucket in the peak-hours view.
type HourBucket struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	Count int    `json:"count"`
}

// topHourBuckets is how many buckets the peak-hours modal shows.
const topHourBuckets = 6

// PeakHours buckets leads by local hour of day into fixed-width buckets
// (width 1, 3, 6 or 12; anything else falls back to 1) and returns the top
// buckets by count. Leads without a parseable dateTime are skipped.
func PeakHours(leads []domain.Lead, width int) []HourBucket {
	switch width {
	case 1, 3, 6, 12:
	default:
		width = 1
	}

	counts := make(map[int]int)
	for _, lead := range leads {
		hour, ok := lead.Hour()
		if !ok {
			continue
		}
		counts[(hour/width)*width]++
	}

	starts := make([]int, 0, len(counts))
	for start := range counts {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool {
		if counts[starts[i]] != counts[starts[j]] {
			return counts[starts[i]] > counts[starts[j]]
		}
		return starts[i] < starts[j]
	})

	if len(starts) > topHourBuckets {
		starts = starts[:topHourBuckets]
	}

	out := make([]HourBucket, len(starts))
	for i, start := range starts {
		out[i] = HourBucket{
			Label: domain.FormatHourRange(start, width),
			Start: start,
			Count: counts[start],
		}
	}
	return out
}

// DayCount is one day of the daily trend series.
type DayCount struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Total     int    `json:"total"`
	Forwarded int    `json:"forwarded"`
}

// DailyTrend returns per-day lead counts for the trailing window of `days`
// calendar days ending at now's local date, oldest day first. Leads without a
// parseable dateTime contribute to no day.
func DailyTrend(leads []domain.Lead, days int, now time.Time) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}

	totals := make(map[string]int)
	forwarded := make(map[string]int)
	for _, lead := range leads {
		key, ok := lead.DateKey()
		if !ok {
			continue
		}
		totals[key]++
		if lead.IsForwarded() {
			forwarded[key]++
		}
	}

	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, DayCount{
			Date:      key,
			Total:     totals[key],
			Forwarded: forwarded[key],
		})
	}
	return out
}

// TeamStat is the rollup for one assigned team.
type TeamStat struct {
	Team    string `json:"team"`
	Total   int    `json:"total"`
	Won     int    `json:"won"`
	Genuine int    `json:"genuine"`
	WinRate string `json:"winRate"`
}

// topTeams is how many teams the dashboard rollup shows.
const topTeams = 5

// TeamRollup aggregates forwarded leads per team (case-insensitive grouping,
// first-seen casing as the label), excluding pending leads and the "removed"
// marker, sorted by total descending. Top 5 teams are returned.
func TeamRollup(leads []domain.Lead) []TeamStat {
	assigned := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.IsForwarded() {
			assigned = append(assigned, lead)
		}
	}

	groups := textkit.GroupBy(assigned, func(l domain.Lead) string { return l.ForwardedTo })

	out := make([]TeamStat, 0, len(groups))
	for team, members := range groups {
		stat := TeamStat{Team: team, Total: len(members)}
		for _, lead := range members {
			if lead.CurrentStatus == domain.StatusWon {
				stat.Won++
			}
			if lead.IsGenuine() {
				stat.Genuine++
			}
		}
		stat.WinRate = Rate(stat.Won, stat.Total)
		out = append(out, stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Team < out[j].Team
	})

	if len(out) > topTeams {
		out = out[:topTeams]
	}
	return out
}

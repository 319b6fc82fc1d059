package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayouts are the timestamp shapes observed in the sheet: Apps Script
// serializes Date cells as RFC 3339, while hand-entered rows and the lead
// form use shorter local layouts.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp parses the lead's dateTime string. ok is false when the field is
// empty or matches no known layout; callers treat that as "no timestamp".
func (l Lead) Timestamp() (time.Time, bool) {
	raw := strings.TrimSpace(l.DateTime)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Hour returns the lead's local hour of day (0-23).
func (l Lead) Hour() (int, bool) {
	t, ok := l.Timestamp()
	if !ok {
		return 0, false
	}
	return t.Hour(), true
}

// DateKey returns the lead's local calendar date as YYYY-MM-DD.
func (l Lead) DateKey() (string, bool) {
	t, ok := l.Timestamp()
	if !ok {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// FormatHour renders an hour of day (0-24) as a 12-hour clock label.
// Hour 24 wraps back to "12:00 AM".
func FormatHour(h int) string {
	h = h % 24
	hour12 := h % 12
	if hour12 == 0 {
		hour12 = 12
	}
	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:00 %s", hour12, meridiem)
}

// FormatHourRange renders a bucket [start, start+width) as the label used by
// the peak-hours view and accepted back by the hour filter, e.g.
// "6:00 PM - 12:00 AM".
func FormatHourRange(start, width int) string {
	return FormatHour(start) + " - " + FormatHour((start+width)%24)
}

// ParseHourRange parses an hour-range label back into [start, end) hours.
// end is in 1..24: a range ending at midnight parses as 24 so the interval
// stays right-open. ok is false for anything that is not a well-formed
// 12-hour AM/PM range.
func ParseHourRange(label string) (start, end int, ok bool) {
	parts := strings.Split(label, " - ")
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, ok = parse12Hour(parts[0])
	if !ok {
		return 0, 0, false
	}
	end, ok = parse12Hour(parts[1])
	if !ok {
		return 0, 0, false
	}
	if end == 0 {
		end = 24
	}
	return start, end, true
}

// InHourRange reports whether hour falls within [start, end), wrapping past
// midnight when end <= start.
func InHourRange(hour, start, end int) bool {
	if end > start {
		return hour >= start && hour < end
	}
	// Wrapped range, e.g. 10:00 PM - 2:00 AM.
	return hour >= start || hour < end%24
}

// parse12Hour converts "6:00 PM" to 18. Minutes are accepted but ignored;
// the sheet only ever emits whole hours.
func parse12Hour(s string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, false
	}

	clock := fields[0]
	if i := strings.IndexByte(clock, ':'); i >= 0 {
		clock = clock[:i]
	}

	var hour12 int
	if _, err := fmt.Sscanf(clock, "%d", &hour12); err != nil {
		return 0, false
	}
	if hour12 < 1 || hour12 > 12 {
		return 0, false
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour12 == 12 {
			return 0, true
		}
		return hour12, true
	case "PM":
		if hour12 == 12 {
			return 12, true
		}
		return hour12 + 12, true
	default:
		return 0, false
	}
}

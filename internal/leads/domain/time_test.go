package domain

import (
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		wantHr int
	}{
		{"2026-08-12T18:30:00", true, 18},
		{"2026-08-12T18:30", true, 18},
		{"2026-08-12 18:30:00", true, 18},
		{"2026-08-12 18:30", true, 18},
		{"2026-08-12", true, 0},
		{"", false, 0},
		{"not a date", false, 0},
		{"12/08/2026", false, 0},
	}

	for _, tt := range tests {
		lead := Lead{DateTime: tt.in}
		ts, ok := lead.Timestamp()
		if ok != tt.ok {
			t.Errorf("Timestamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && ts.Hour() != tt.wantHr {
			t.Errorf("Timestamp(%q) hour = %d, want %d", tt.in, ts.Hour(), tt.wantHr)
		}
	}
}

func TestTimestampRFC3339(t *testing.T) {
	lead := Lead{DateTime: "2026-08-12T18:30:00+05:30"}
	ts, ok := lead.Timestamp()
	if !ok {
		t.Fatal("expected RFC 3339 timestamp to parse")
	}
	want := time.Date(2026, 8, 12, 18, 30, 0, 0, time.FixedZone("", 5*3600+1800))
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts, want)
	}
}

func TestDateKey(t *testing.T) {
	lead := Lead{DateTime: "2026-08-12 23:59"}
	key, ok := lead.DateKey()
	if !ok || key != "2026-08-12" {
		t.Errorf("DateKey() = %q, %v; want %q, true", key, ok, "2026-08-12")
	}
}

func TestFormatHourRange(t *testing.T) {
	tests := []struct {
		start, width int
		want         string
	}{
		{0, 1, "12:00 AM - 1:00 AM"},
		{11, 1, "11:00 AM - 12:00 PM"},
		{18, 6, "6:00 PM - 12:00 AM"},
		{0, 12, "12:00 AM - 12:00 PM"},
		{12, 12, "12:00 PM - 12:00 AM"},
		{21, 3, "9:00 PM - 12:00 AM"},
	}

	for _, tt := range tests {
		if got := FormatHourRange(tt.start, tt.width); got != tt.want {
			t.Errorf("FormatHourRange(%d, %d) = %q, want %q", tt.start, tt.width, got, tt.want)
		}
	}
}

func TestParseHourRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"6:00 PM - 12:00 AM", 18, 24, true},
		{"12:00 AM - 1:00 AM", 0, 1, true},
		{"12:00 AM - 12:00 PM", 0, 12, true},
		{"9:00 AM - 12:00 PM", 9, 12, true},
		{"10:00 PM - 2:00 AM", 22, 2, true}, // wrapped, handled by InHourRange
		{"18:00 - 24:00", 0, 0, false},
		{"6 PM", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		start, end, ok := ParseHourRange(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseHourRange(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (start != tt.start || end != tt.end) {
			t.Errorf("ParseHourRange(%q) = %d, %d; want %d, %d", tt.in, start, end, tt.start, tt.end)
		}
	}
}

func TestInHourRange(t *testing.T) {
	tests := []struct {
		hour, start, end int
		want             bool
	}{
		{18, 18, 24, true},
		{23, 18, 24, true},
		{17, 18, 24, false},
		{0, 18, 24, false},
		{23, 22, 2, true}, // wrapped past midnight
		{1, 22, 2, true},
		{3, 22, 2, false},
		{9, 9, 12, true},
		{12, 9, 12, false},
	}

	for _, tt := range tests {
		if got := InHourRange(tt.hour, tt.start, tt.end); got != tt.want {
			t.Errorf("InHourRange(%d, %d, %d) = %v, want %v", tt.hour, tt.start, tt.end, got, tt.want)
		}
	}
}

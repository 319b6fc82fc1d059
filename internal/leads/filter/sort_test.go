package filter

import (
	"testing"

	"leadboard_backend/internal/leads/domain"
)

func TestSortByDateTimeOldestFirst(t *testing.T) {
	leads := []domain.Lead{
		{UID: "new", DateTime: "2026-08-12 10:00"},
		{UID: "none"},
		{UID: "old", DateTime: "2026-08-01 10:00"},
	}

	got := SortByDateTime(leads, SortOldestFirst)
	assertUIDs(t, got, "none", "old", "new")
}

func TestSortByDateTimeNewestFirst(t *testing.T) {
	leads := []domain.Lead{
		{UID: "old", DateTime: "2026-08-01 10:00"},
		{UID: "none"},
		{UID: "new", DateTime: "2026-08-12 10:00"},
	}

	got := SortByDateTime(leads, SortNewestFirst)
	assertUIDs(t, got, "new", "old", "none")
}

func TestSortByDateTimeStable(t *testing.T) {
	leads := []domain.Lead{
		{UID: "first", DateTime: "2026-08-01 10:00"},
		{UID: "second", DateTime: "2026-08-01 10:00"},
	}

	got := SortByDateTime(leads, SortOldestFirst)
	assertUIDs(t, got, "first", "second")
}

func TestSortByDateTimeDoesNotMutateInput(t *testing.T) {
	leads := []domain.Lead{
		{UID: "b", DateTime: "2026-08-12 10:00"},
		{UID: "a", DateTime: "2026-08-01 10:00"},
	}

	_ = SortByDateTime(leads, SortOldestFirst)
	assertUIDs(t, leads, "b", "a")
}

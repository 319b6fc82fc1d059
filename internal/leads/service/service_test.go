package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leadboard_backend/internal/leads/agent"
	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/transport"
	platformevents "leadboard_backend/platform/events"
)

type fakeStore struct {
	leads      []domain.Lead
	sheets     []string
	saved      []domain.Lead
	deleted    []string
	fetchCalls int
	fetchErr   error
}

func (f *fakeStore) FetchLeads(ctx context.Context) ([]domain.Lead, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.leads, nil
}

func (f *fakeStore) SheetNames(ctx context.Context) ([]string, error) {
	return f.sheets, nil
}

func (f *fakeStore) SaveLead(ctx context.Context, lead domain.Lead) error {
	f.saved = append(f.saved, lead)
	return nil
}

func (f *fakeStore) DeleteLead(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeCache struct {
	snapshot    []domain.Lead
	hit         bool
	invalidated int
	sortPref    string
}

func (f *fakeCache) GetSnapshot(ctx context.Context) ([]domain.Lead, bool, error) {
	return f.snapshot, f.hit, nil
}

func (f *fakeCache) SetSnapshot(ctx context.Context, leads []domain.Lead) error {
	f.snapshot = leads
	f.hit = true
	return nil
}

func (f *fakeCache) InvalidateSnapshot(ctx context.Context) error {
	f.invalidated++
	f.hit = false
	return nil
}

func (f *fakeCache) GetSortPreference(ctx context.Context) (string, error) {
	return f.sortPref, nil
}

func (f *fakeCache) SetSortPreference(ctx context.Context, direction string) error {
	f.sortPref = direction
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []platformevents.Event
}

func (b *recordingBus) Publish(ctx context.Context, event platformevents.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event platformevents.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler platformevents.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.EventName()
	}
	return out
}

type fakeAnalyzer struct {
	analyzed []domain.Lead
	result   agent.Analysis
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, lead domain.Lead) (agent.Analysis, error) {
	f.analyzed = append(f.analyzed, lead)
	if f.err != nil {
		return agent.Analysis{}, f.err
	}
	return f.result, nil
}

type phoneRegion string

func (p phoneRegion) GetDefaultPhoneRegion() string { return string(p) }

func newTestService(store *fakeStore, cache *fakeCache) (*Service, *recordingBus) {
	bus := &recordingBus{}
	svc := New(store, cache, bus, nil, phoneRegion("IN"), nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 12, 12, 0, 0, 0, time.Local) }
	return svc, bus
}

func TestListUsesCacheWhenFresh(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{
		snapshot: []domain.Lead{{UID: "u1", Phone: "+919876543210"}},
		hit:      true,
	}
	svc, _ := newTestService(store, cache)

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Total != 1 || store.fetchCalls != 0 {
		t.Errorf("total=%d fetchCalls=%d, want cache hit", resp.Total, store.fetchCalls)
	}
}

func TestListRefetchesOnMiss(t *testing.T) {
	store := &fakeStore{leads: []domain.Lead{{UID: "u1", Phone: "+919876543210"}}}
	cache := &fakeCache{}
	svc, _ := newTestService(store, cache)

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.fetchCalls != 1 || resp.Total != 1 {
		t.Errorf("fetchCalls=%d total=%d", store.fetchCalls, resp.Total)
	}
	if !cache.hit {
		t.Error("expected snapshot to be cached after the fetch")
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	store := &fakeStore{leads: []domain.Lead{
		{UID: "b", Phone: "1", Country: "India", DateTime: "2026-08-12 10:00"},
		{UID: "a", Phone: "2", Country: "India", DateTime: "2026-08-01 10:00"},
		{UID: "x", Phone: "3", Country: "USA", DateTime: "2026-08-05 10:00"},
	}}
	svc, _ := newTestService(store, &fakeCache{})

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{Country: "india"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Total != 2 || resp.Items[0].UID != "a" || resp.Items[1].UID != "b" {
		t.Errorf("got %+v, want [a b] oldest-first", resp.Items)
	}
}

func TestListHonorsPersistedSortPreference(t *testing.T) {
	store := &fakeStore{leads: []domain.Lead{
		{UID: "old", Phone: "1", DateTime: "2026-08-01 10:00"},
		{UID: "new", Phone: "2", DateTime: "2026-08-12 10:00"},
	}}
	svc, _ := newTestService(store, &fakeCache{sortPref: "newest"})

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Items[0].UID != "new" {
		t.Errorf("got %+v, want newest-first from persisted preference", resp.Items)
	}

	// Explicit request parameter wins over the preference.
	resp, err = svc.List(context.Background(), transport.ListLeadsRequest{Sort: "oldest"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.Items[0].UID != "old" {
		t.Errorf("got %+v, want oldest-first from request", resp.Items)
	}
}

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{hit: true}
	svc, bus := newTestService(store, cache)

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Phone: "9876543210",
		Name:  "Asha",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.UID == "" {
		t.Error("expected a generated uid")
	}
	if resp.Phone != "+919876543210" {
		t.Errorf("phone = %q, want E.164 with default region", resp.Phone)
	}
	if resp.CurrentStatus != "NEW" || resp.LeadQuality != "UNCATEGORIZED" {
		t.Errorf("defaults = %q/%q", resp.CurrentStatus, resp.LeadQuality)
	}
	if resp.DateTime == "" {
		t.Error("expected a stamped dateTime")
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d leads", len(store.saved))
	}
	if cache.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1", cache.invalidated)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "lead.saved" {
		t.Errorf("events = %v", names)
	}
}

func TestCreateRejectsDuplicatePhone(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{
		snapshot: []domain.Lead{{UID: "u1", Phone: "+91-9876543210"}},
		hit:      true,
	}
	svc, _ := newTestService(store, cache)

	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{Phone: "09876543210"})
	if !errors.Is(err, ErrDuplicatePhone) {
		t.Fatalf("err = %v, want ErrDuplicatePhone", err)
	}
	if len(store.saved) != 0 {
		t.Error("duplicate must not be saved")
	}
}

func TestUpdate(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{
		snapshot: []domain.Lead{{
			UID: "u1", Phone: "+919876543210", Name: "Asha",
			CurrentStatus: domain.StatusNew, ForwardedTo: "",
		}},
		hit: true,
	}
	svc, bus := newTestService(store, cache)

	team := "Sales A"
	status := "won"
	resp, err := svc.Update(context.Background(), "u1", transport.UpdateLeadRequest{
		ForwardedTo:   &team,
		CurrentStatus: &status,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if resp.ForwardedTo != "Sales A" || resp.CurrentStatus != "WON" {
		t.Errorf("got %+v", resp)
	}
	if resp.Name != "Asha" {
		t.Error("untouched fields must be preserved")
	}
	if len(store.saved) != 1 || cache.invalidated != 1 {
		t.Errorf("saved=%d invalidated=%d", len(store.saved), cache.invalidated)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "lead.saved" {
		t.Errorf("events = %v", names)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, &fakeCache{hit: true})

	_, err := svc.Update(context.Background(), "missing", transport.UpdateLeadRequest{})
	if !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("err = %v, want ErrLeadNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{snapshot: []domain.Lead{{UID: "u1", Phone: "1"}}, hit: true}
	svc, bus := newTestService(store, cache)

	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "u1" {
		t.Errorf("deleted = %v", store.deleted)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "lead.deleted" {
		t.Errorf("events = %v", names)
	}

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("err = %v, want ErrLeadNotFound", err)
	}
}

func TestCheckDuplicate(t *testing.T) {
	cache := &fakeCache{
		snapshot: []domain.Lead{{UID: "u1", Phone: "+91-9876543210"}},
		hit:      true,
	}
	svc, _ := newTestService(&fakeStore{}, cache)

	resp, err := svc.CheckDuplicate(context.Background(), "09876543210")
	if err != nil {
		t.Fatalf("CheckDuplicate: %v", err)
	}
	if !resp.Duplicate || len(resp.Matches) != 1 || resp.Matches[0].UID != "u1" {
		t.Errorf("got %+v", resp)
	}

	resp, err = svc.CheckDuplicate(context.Background(), "+911111111111")
	if err != nil {
		t.Fatalf("CheckDuplicate: %v", err)
	}
	if resp.Duplicate {
		t.Errorf("got %+v, want no match", resp)
	}
}

func TestTeamsExcludesBookkeepingSheets(t *testing.T) {
	store := &fakeStore{sheets: []string{"All leads", "Sales A", "Settings", "Sales B"}}
	svc, _ := newTestService(store, &fakeCache{})

	resp, err := svc.Teams(context.Background())
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if len(resp.Teams) != 2 || resp.Teams[0] != "Sales A" || resp.Teams[1] != "Sales B" {
		t.Errorf("teams = %v", resp.Teams)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	store := &fakeStore{leads: []domain.Lead{{UID: "u1", Phone: "1"}}}
	cache := &fakeCache{snapshot: []domain.Lead{}, hit: true}
	svc, bus := newTestService(store, cache)

	resp, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.Count != 1 || store.fetchCalls != 1 {
		t.Errorf("count=%d fetchCalls=%d", resp.Count, store.fetchCalls)
	}
	if len(cache.snapshot) != 1 {
		t.Error("expected the cache to hold the fresh snapshot")
	}
	if names := bus.names(); len(names) != 1 || names[0] != "snapshot.refreshed" {
		t.Errorf("events = %v", names)
	}
}

func TestSortPreferenceDefaultsToOldest(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, &fakeCache{})

	resp, err := svc.SortPreference(context.Background())
	if err != nil {
		t.Fatalf("SortPreference: %v", err)
	}
	if resp.Direction != "oldest" {
		t.Errorf("direction = %q, want oldest", resp.Direction)
	}

	set, err := svc.SetSortPreference(context.Background(), transport.SortPreferenceRequest{Direction: "newest"})
	if err != nil || set.Direction != "newest" {
		t.Fatalf("SetSortPreference: %+v, %v", set, err)
	}
}

func TestAnalyze(t *testing.T) {
	cache := &fakeCache{
		snapshot: []domain.Lead{{UID: "u1", Phone: "1", Name: "Asha", SpecialNotes: "wants a demo"}},
		hit:      true,
	}
	svc, _ := newTestService(&fakeStore{}, cache)
	analyzer := &fakeAnalyzer{result: agent.Analysis{
		Quality:         domain.QualityHot,
		Analysis:        "Strong buying intent in the notes.",
		SuggestedStatus: domain.StatusQualified,
	}}
	svc.analyzer = analyzer

	resp, err := svc.Analyze(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.UID != "u1" || resp.Quality != "HOT" || resp.SuggestedStatus != "QUALIFIED" {
		t.Errorf("got %+v", resp)
	}
	if len(analyzer.analyzed) != 1 || analyzer.analyzed[0].Name != "Asha" {
		t.Errorf("analyzed = %+v, want the full lead record", analyzer.analyzed)
	}

	if _, err := svc.Analyze(context.Background(), "missing"); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("err = %v, want ErrLeadNotFound", err)
	}
}

func TestAnalyzeDisabledWithoutAnalyzer(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, &fakeCache{hit: true})

	_, err := svc.Analyze(context.Background(), "u1")
	if !errors.Is(err, ErrAnalysisDisabled) {
		t.Fatalf("err = %v, want ErrAnalysisDisabled", err)
	}
}

func TestStats(t *testing.T) {
	cache := &fakeCache{
		snapshot: []domain.Lead{
			{UID: "a", Phone: "1", Place: "Kochi", CurrentStatus: domain.StatusWon, ForwardedTo: "Sales A", DateTime: "2026-08-12 19:00"},
			{UID: "b", Phone: "2", Place: "kochi", CurrentStatus: domain.StatusNew, DateTime: "2026-08-11 20:00"},
			{UID: "c", Phone: "3", Place: "Austin", CurrentStatus: domain.StatusNew},
		},
		hit: true,
	}
	svc, _ := newTestService(&fakeStore{}, cache)
	ctx := context.Background()

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Total != 3 || summary.Won != 1 || summary.Pending != 2 {
		t.Errorf("summary = %+v", summary)
	}

	top, err := svc.Top(ctx, "place")
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top.Values) != 2 || top.Values[0].Label != "Kochi" || top.Values[0].Count != 2 {
		t.Errorf("top = %+v", top)
	}

	// Unknown dimension falls back to place.
	fallback, err := svc.Top(ctx, "bogus")
	if err != nil || fallback.Dimension != "place" {
		t.Errorf("fallback = %+v, %v", fallback, err)
	}

	peak, err := svc.PeakHours(ctx, 6)
	if err != nil {
		t.Fatalf("PeakHours: %v", err)
	}
	if peak.Width != 6 || len(peak.Buckets) != 1 || peak.Buckets[0].Count != 2 {
		t.Errorf("peak = %+v", peak)
	}

	daily, err := svc.Daily(ctx, 2)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if daily.Days != 2 || len(daily.Series) != 2 || daily.Series[1].Total != 1 {
		t.Errorf("daily = %+v", daily)
	}

	teams, err := svc.TeamStats(ctx)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if len(teams.Teams) != 1 || teams.Teams[0].Team != "Sales A" || teams.Teams[0].WinRate != "100.0" {
		t.Errorf("teams = %+v", teams)
	}
}

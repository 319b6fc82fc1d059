// Package service implements the lead dashboard use cases on top of the
// sheet store and the redis snapshot cache.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadboard_backend/internal/events"
	"leadboard_backend/internal/leads/agent"
	"leadboard_backend/internal/leads/analytics"
	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/filter"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/internal/sheetstore"
	"leadboard_backend/platform/config"
	platformevents "leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/phone"
)

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrDuplicatePhone   = errors.New("a lead with this phone number already exists")
	ErrAnalysisDisabled = errors.New("lead analysis is not configured")
)

// dateTimeLayout is the format new leads are stamped with.
const dateTimeLayout = "2006-01-02T15:04:05"

// SheetStore is the authoritative lead store.
type SheetStore interface {
	FetchLeads(ctx context.Context) ([]domain.Lead, error)
	SheetNames(ctx context.Context) ([]string, error)
	SaveLead(ctx context.Context, lead domain.Lead) error
	DeleteLead(ctx context.Context, uid string) error
}

// SnapshotCache is the redis-backed lead cache.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) ([]domain.Lead, bool, error)
	SetSnapshot(ctx context.Context, leads []domain.Lead) error
	InvalidateSnapshot(ctx context.Context) error
	GetSortPreference(ctx context.Context) (string, error)
	SetSortPreference(ctx context.Context, direction string) error
}

// LeadAnalyzer produces an AI verdict for one lead. Nil when no API key is
// configured.
type LeadAnalyzer interface {
	Analyze(ctx context.Context, lead domain.Lead) (agent.Analysis, error)
}

type Service struct {
	store    SheetStore
	cache    SnapshotCache
	bus      platformevents.Bus
	analyzer LeadAnalyzer
	log      *logger.Logger
	region   string
	now      func() time.Time
}

func New(store SheetStore, cache SnapshotCache, bus platformevents.Bus, analyzer LeadAnalyzer, cfg config.PhoneConfig, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		bus:      bus,
		analyzer: analyzer,
		log:      log,
		region:   cfg.GetDefaultPhoneRegion(),
		now:      time.Now,
	}
}

// snapshot returns the current lead set, serving from the cache when fresh
// and refetching from the sheet on a miss. Cache write failures are logged by
// the repository and otherwise ignored; the sheet data still flows through.
func (s *Service) snapshot(ctx context.Context) ([]domain.Lead, error) {
	leads, hit, err := s.cache.GetSnapshot(ctx)
	if err == nil && hit {
		return leads, nil
	}

	leads, err = s.store.FetchLeads(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetSnapshot(ctx, leads)
	return leads, nil
}

// List returns leads matching the request's filters, sorted by dateTime. An
// explicit sort direction wins; otherwise the persisted preference applies,
// defaulting to oldest-first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	filters := filter.Filters{
		Search:  req.Search,
		Status:  req.Status,
		Place:   req.Place,
		Country: req.Country,
		Quality: req.Quality,
		Team:    req.Team,
		Pending: req.Pending,
		Hour:    req.Hour,
		Date:    req.Date,
	}

	direction := req.Sort
	if direction == "" {
		direction, _ = s.cache.GetSortPreference(ctx)
	}
	if direction == "" {
		direction = filter.SortOldestFirst
	}

	matched := filters.Apply(leads)
	sorted := filter.SortByDateTime(matched, direction)
	return transport.ToLeadListResponse(sorted), nil
}

// GetByUID returns a single lead.
func (s *Service) GetByUID(ctx context.Context, uid string) (transport.LeadResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	for _, lead := range leads {
		if lead.UID == uid {
			return transport.ToLeadResponse(lead), nil
		}
	}
	return transport.LeadResponse{}, ErrLeadNotFound
}

// CheckDuplicate reports the leads sharing the phone's significant digits.
func (s *Service) CheckDuplicate(ctx context.Context, phoneNumber string) (transport.DuplicateCheckResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.DuplicateCheckResponse{}, err
	}

	matches := make([]transport.LeadResponse, 0, 1)
	for _, lead := range leads {
		if phone.SameNumber(lead.Phone, phoneNumber) {
			matches = append(matches, transport.ToLeadResponse(lead))
		}
	}
	return transport.DuplicateCheckResponse{Duplicate: len(matches) > 0, Matches: matches}, nil
}

// Create stores a new lead. The phone number must not collide with an
// existing lead on its significant digits.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	for _, existing := range leads {
		if phone.SameNumber(existing.Phone, req.Phone) {
			return transport.LeadResponse{}, ErrDuplicatePhone
		}
	}

	lead := domain.Lead{
		UID:              uuid.NewString(),
		SlNo:             req.SlNo,
		Phone:            phone.NormalizeE164(req.Phone, s.region),
		Country:          req.Country,
		Place:            req.Place,
		Name:             req.Name,
		LeadQuality:      domain.ParseQuality(req.LeadQuality),
		BusinessIndustry: req.BusinessIndustry,
		SpecialNotes:     req.SpecialNotes,
		CurrentStatus:    domain.ParseStatus(req.CurrentStatus),
		ForwardedTo:      req.ForwardedTo,
		DateTime:         req.DateTime,
	}
	if strings.TrimSpace(lead.DateTime) == "" {
		lead.DateTime = s.now().Format(dateTimeLayout)
	}

	if err := s.store.SaveLead(ctx, lead); err != nil {
		return transport.LeadResponse{}, err
	}
	_ = s.cache.InvalidateSnapshot(ctx)
	s.bus.Publish(ctx, events.NewLeadSaved(lead.UID, lead.Phone, lead.ForwardedTo))

	return transport.ToLeadResponse(lead), nil
}

// Update applies a partial update to an existing lead and saves it back.
func (s *Service) Update(ctx context.Context, uid string, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	var lead domain.Lead
	found := false
	for _, existing := range leads {
		if existing.UID == uid {
			lead = existing
			found = true
			break
		}
	}
	if !found {
		return transport.LeadResponse{}, ErrLeadNotFound
	}

	if req.SlNo != nil {
		lead.SlNo = *req.SlNo
	}
	if req.Phone != nil {
		lead.Phone = phone.NormalizeE164(*req.Phone, s.region)
	}
	if req.Country != nil {
		lead.Country = *req.Country
	}
	if req.Place != nil {
		lead.Place = *req.Place
	}
	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.LeadQuality != nil {
		lead.LeadQuality = domain.ParseQuality(*req.LeadQuality)
	}
	if req.BusinessIndustry != nil {
		lead.BusinessIndustry = *req.BusinessIndustry
	}
	if req.SpecialNotes != nil {
		lead.SpecialNotes = *req.SpecialNotes
	}
	if req.CurrentStatus != nil {
		lead.CurrentStatus = domain.ParseStatus(*req.CurrentStatus)
	}
	if req.ForwardedTo != nil {
		lead.ForwardedTo = *req.ForwardedTo
	}
	if req.DateTime != nil {
		lead.DateTime = *req.DateTime
	}

	if err := s.store.SaveLead(ctx, lead); err != nil {
		return transport.LeadResponse{}, err
	}
	_ = s.cache.InvalidateSnapshot(ctx)
	s.bus.Publish(ctx, events.NewLeadSaved(lead.UID, lead.Phone, lead.ForwardedTo))

	return transport.ToLeadResponse(lead), nil
}

// Delete removes a lead from every sheet.
func (s *Service) Delete(ctx context.Context, uid string) error {
	if _, err := s.GetByUID(ctx, uid); err != nil {
		return err
	}
	if err := s.store.DeleteLead(ctx, uid); err != nil {
		return err
	}
	_ = s.cache.InvalidateSnapshot(ctx)
	s.bus.Publish(ctx, events.NewLeadDeleted(uid))
	return nil
}

// Analyze asks the model to classify one lead. Returns ErrAnalysisDisabled
// when no analyzer is configured.
func (s *Service) Analyze(ctx context.Context, uid string) (transport.LeadAnalysisResponse, error) {
	if s.analyzer == nil {
		return transport.LeadAnalysisResponse{}, ErrAnalysisDisabled
	}

	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.LeadAnalysisResponse{}, err
	}

	var lead domain.Lead
	found := false
	for _, existing := range leads {
		if existing.UID == uid {
			lead = existing
			found = true
			break
		}
	}
	if !found {
		return transport.LeadAnalysisResponse{}, ErrLeadNotFound
	}

	result, err := s.analyzer.Analyze(ctx, lead)
	if err != nil {
		return transport.LeadAnalysisResponse{}, err
	}
	return transport.LeadAnalysisResponse{
		UID:             lead.UID,
		Quality:         string(result.Quality),
		Analysis:        result.Analysis,
		SuggestedStatus: string(result.SuggestedStatus),
	}, nil
}

// Teams lists the routable team sheets, excluding bookkeeping sheets.
func (s *Service) Teams(ctx context.Context) (transport.TeamListResponse, error) {
	names, err := s.store.SheetNames(ctx)
	if err != nil {
		return transport.TeamListResponse{}, err
	}
	teams := make([]string, 0, len(names))
	for _, name := range names {
		if sheetstore.IsTeamSheet(name) {
			teams = append(teams, name)
		}
	}
	return transport.TeamListResponse{Teams: teams}, nil
}

// Refresh force-reloads the snapshot from the sheet, bypassing the cache.
func (s *Service) Refresh(ctx context.Context) (transport.RefreshResponse, error) {
	leads, err := s.store.FetchLeads(ctx)
	if err != nil {
		return transport.RefreshResponse{}, err
	}
	if err := s.cache.SetSnapshot(ctx, leads); err != nil {
		return transport.RefreshResponse{}, err
	}
	s.bus.Publish(ctx, events.NewSnapshotRefreshed(len(leads)))
	return transport.RefreshResponse{Count: len(leads)}, nil
}

// SortPreference returns the persisted dashboard sort direction.
func (s *Service) SortPreference(ctx context.Context) (transport.SortPreferenceResponse, error) {
	direction, err := s.cache.GetSortPreference(ctx)
	if err != nil {
		return transport.SortPreferenceResponse{}, err
	}
	if direction == "" {
		direction = filter.SortOldestFirst
	}
	return transport.SortPreferenceResponse{Direction: direction}, nil
}

// SetSortPreference persists the dashboard sort direction.
func (s *Service) SetSortPreference(ctx context.Context, req transport.SortPreferenceRequest) (transport.SortPreferenceResponse, error) {
	if err := s.cache.SetSortPreference(ctx, req.Direction); err != nil {
		return transport.SortPreferenceResponse{}, err
	}
	return transport.SortPreferenceResponse{Direction: req.Direction}, nil
}

// Stats

// Summary computes the headline dashboard counts.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(leads, s.now()), nil
}

// topDimension selects the grouping key for the top-values stat.
var topDimensions = map[string]func(domain.Lead) string{
	"place":    func(l domain.Lead) string { return l.Place },
	"country":  func(l domain.Lead) string { return l.Country },
	"industry": func(l domain.Lead) string { return l.BusinessIndustry },
	"quality":  func(l domain.Lead) string { return string(l.LeadQuality) },
	"status":   func(l domain.Lead) string { return string(l.CurrentStatus) },
}

// topValuesLimit is how many rows a top-values grouping returns.
const topValuesLimit = 5

// Top returns the most frequent values of one lead dimension.
func (s *Service) Top(ctx context.Context, dimension string) (transport.TopValuesResponse, error) {
	keyFn, ok := topDimensions[strings.ToLower(strings.TrimSpace(dimension))]
	if !ok {
		keyFn = topDimensions["place"]
		dimension = "place"
	}

	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.TopValuesResponse{}, err
	}
	return transport.TopValuesResponse{
		Dimension: strings.ToLower(strings.TrimSpace(dimension)),
		Values:    analytics.TopValues(leads, keyFn, topValuesLimit),
	}, nil
}

// PeakHours returns the busiest time-of-day buckets.
func (s *Service) PeakHours(ctx context.Context, width int) (transport.PeakHoursResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.PeakHoursResponse{}, err
	}
	switch width {
	case 1, 3, 6, 12:
	default:
		width = 1
	}
	return transport.PeakHoursResponse{Width: width, Buckets: analytics.PeakHours(leads, width)}, nil
}

// defaultTrendDays is the dashboard's daily-trend window.
const defaultTrendDays = 30

// Daily returns the trailing daily lead series.
func (s *Service) Daily(ctx context.Context, days int) (transport.DailyTrendResponse, error) {
	if days <= 0 || days > 366 {
		days = defaultTrendDays
	}
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.DailyTrendResponse{}, err
	}
	return transport.DailyTrendResponse{Days: days, Series: analytics.DailyTrend(leads, days, s.now())}, nil
}

// TeamStats returns the per-team rollup.
func (s *Service) TeamStats(ctx context.Context) (transport.TeamStatsResponse, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return transport.TeamStatsResponse{}, err
	}
	return transport.TeamStatsResponse{Teams: analytics.TeamRollup(leads)}, nil
}

// Package transport defines the request and response DTOs for the leads API.
package transport

import (
	"leadboard_backend/internal/leads/analytics"
	"leadboard_backend/internal/leads/domain"
)

// Request DTOs

// CreateLeadRequest is the payload for creating a lead. Phone is the only
// hard requirement; everything else can be filled in later from the dashboard.
type CreateLeadRequest struct {
	SlNo             string `json:"slNo,omitempty" validate:"omitempty,max=20"`
	Phone            string `json:"phone" validate:"required,min=5,max=20"`
	Country          string `json:"country,omitempty" validate:"omitempty,max=100"`
	Place            string `json:"place,omitempty" validate:"omitempty,max=100"`
	Name             string `json:"name,omitempty" validate:"omitempty,max=200"`
	LeadQuality      string `json:"leadQuality,omitempty" validate:"omitempty,max=50"`
	BusinessIndustry string `json:"businessIndustry,omitempty" validate:"omitempty,max=100"`
	SpecialNotes     string `json:"specialNotes,omitempty" validate:"omitempty,max=2000"`
	CurrentStatus    string `json:"currentStatus,omitempty" validate:"omitempty,max=50"`
	ForwardedTo      string `json:"forwardedTo,omitempty" validate:"omitempty,max=100"`
	DateTime         string `json:"dateTime,omitempty" validate:"omitempty,max=40"`
}

// UpdateLeadRequest is the payload for updating a lead. Pointer fields
// distinguish "not sent" from "set to empty", so a team assignment can be
// cleared without touching the rest of the record.
type UpdateLeadRequest struct {
	SlNo             *string `json:"slNo,omitempty" validate:"omitempty,max=20"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Country          *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Place            *string `json:"place,omitempty" validate:"omitempty,max=100"`
	Name             *string `json:"name,omitempty" validate:"omitempty,max=200"`
	LeadQuality      *string `json:"leadQuality,omitempty" validate:"omitempty,max=50"`
	BusinessIndustry *string `json:"businessIndustry,omitempty" validate:"omitempty,max=100"`
	SpecialNotes     *string `json:"specialNotes,omitempty" validate:"omitempty,max=2000"`
	CurrentStatus    *string `json:"currentStatus,omitempty" validate:"omitempty,max=50"`
	ForwardedTo      *string `json:"forwardedTo,omitempty" validate:"omitempty,max=100"`
	DateTime         *string `json:"dateTime,omitempty" validate:"omitempty,max=40"`
}

// ListLeadsRequest carries the filter and sort query parameters.
type ListLeadsRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Place   string `form:"place"`
	Country string `form:"country"`
	Quality string `form:"quality"`
	Team    string `form:"team"`
	Pending bool   `form:"pending"`
	Hour    string `form:"hour"`
	Date    string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Sort    string `form:"sort" validate:"omitempty,oneof=oldest newest"`
}

// SortPreferenceRequest updates the persisted dashboard sort direction.
type SortPreferenceRequest struct {
	Direction string `json:"direction" validate:"required,oneof=oldest newest"`
}

// Response DTOs

// LeadResponse mirrors the domain lead on the wire.
type LeadResponse struct {
	UID              string `json:"uid"`
	SlNo             string `json:"slNo"`
	Phone            string `json:"phone"`
	Country          string `json:"country"`
	Place            string `json:"place"`
	Name             string `json:"name"`
	LeadQuality      string `json:"leadQuality"`
	BusinessIndustry string `json:"businessIndustry"`
	SpecialNotes     string `json:"specialNotes"`
	CurrentStatus    string `json:"currentStatus"`
	ForwardedTo      string `json:"forwardedTo"`
	DateTime         string `json:"dateTime"`
}

// LeadListResponse is a filtered, sorted page of leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// DuplicateCheckResponse reports whether a phone number already exists.
type DuplicateCheckResponse struct {
	Duplicate bool           `json:"duplicate"`
	Matches   []LeadResponse `json:"matches,omitempty"`
}

// TeamListResponse lists the routable team sheets.
type TeamListResponse struct {
	Teams []string `json:"teams"`
}

// SortPreferenceResponse is the persisted dashboard sort direction.
type SortPreferenceResponse struct {
	Direction string `json:"direction"`
}

// RefreshResponse reports the outcome of a snapshot refresh.
type RefreshResponse struct {
	Count int `json:"count"`
}

// TopValuesResponse is a top-N grouping for one dimension.
type TopValuesResponse struct {
	Dimension string               `json:"dimension"`
	Values    []analytics.TopValue `json:"values"`
}

// PeakHoursResponse is the top hour buckets for a given bucket width.
type PeakHoursResponse struct {
	Width   int                    `json:"width"`
	Buckets []analytics.HourBucket `json:"buckets"`
}

// DailyTrendResponse is the trailing daily lead series.
type DailyTrendResponse struct {
	Days   int                  `json:"days"`
	Series []analytics.DayCount `json:"series"`
}

// LeadAnalysisResponse is the AI verdict for one lead.
type LeadAnalysisResponse struct {
	UID             string `json:"uid"`
	Quality         string `json:"quality"`
	Analysis        string `json:"analysis"`
	SuggestedStatus string `json:"suggestedStatus"`
}

// TeamStatsResponse is the per-team rollup.
type TeamStatsResponse struct {
	Teams []analytics.TeamStat `json:"teams"`
}

// Mapping

// ToLeadResponse maps a domain lead to its wire form.
func ToLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		UID:              lead.UID,
		SlNo:             lead.SlNo,
		Phone:            lead.Phone,
		Country:          lead.Country,
		Place:            lead.Place,
		Name:             lead.Name,
		LeadQuality:      string(lead.LeadQuality),
		BusinessIndustry: lead.BusinessIndustry,
		SpecialNotes:     lead.SpecialNotes,
		CurrentStatus:    string(lead.CurrentStatus),
		ForwardedTo:      lead.ForwardedTo,
		DateTime:         lead.DateTime,
	}
}

// ToLeadListResponse maps a slice of domain leads.
func ToLeadListResponse(leads []domain.Lead) LeadListResponse {
	items := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}
	return LeadListResponse{Items: items, Total: len(items)}
}

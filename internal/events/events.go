// Package events defines the domain events published by the lead dashboard
// modules. Handlers subscribe through the platform event bus.
package events

import (
	"leadboard_backend/platform/events"
)

// Event names.
const (
	LeadSavedName         = "lead.saved"
	LeadDeletedName       = "lead.deleted"
	SnapshotRefreshedName = "snapshot.refreshed"
)

// LeadSaved fires after a lead is created or updated in the sheet.
type LeadSaved struct {
	events.BaseEvent
	UID         string `json:"uid"`
	Phone       string `json:"phone"`
	ForwardedTo string `json:"forwardedTo"`
}

func (LeadSaved) EventName() string { return LeadSavedName }

// NewLeadSaved creates a LeadSaved event.
func NewLeadSaved(uid, phone, forwardedTo string) LeadSaved {
	return LeadSaved{
		BaseEvent:   events.NewBaseEvent(),
		UID:         uid,
		Phone:       phone,
		ForwardedTo: forwardedTo,
	}
}

// LeadDeleted fires after a lead is removed from every sheet.
type LeadDeleted struct {
	events.BaseEvent
	UID string `json:"uid"`
}

func (LeadDeleted) EventName() string { return LeadDeletedName }

// NewLeadDeleted creates a LeadDeleted event.
func NewLeadDeleted(uid string) LeadDeleted {
	return LeadDeleted{BaseEvent: events.NewBaseEvent(), UID: uid}
}

// SnapshotRefreshed fires after the cached snapshot is rebuilt from the sheet.
type SnapshotRefreshed struct {
	events.BaseEvent
	Count int `json:"count"`
}

func (SnapshotRefreshed) EventName() string { return SnapshotRefreshedName }

// NewSnapshotRefreshed creates a SnapshotRefreshed event.
func NewSnapshotRefreshed(count int) SnapshotRefreshed {
	return SnapshotRefreshed{BaseEvent: events.NewBaseEvent(), Count: count}
}

// Package domain holds the lead entity and the normalization rules applied to
// the loosely-typed records coming back from the sheet store.
package domain

import (
	"strings"

	"leadboard_backend/platform/phone"
	"leadboard_backend/platform/textkit"
)

// Status is the workflow state of a lead.
type Status string

const (
	StatusNew         Status = "NEW"
	StatusContacted   Status = "CONTACTED"
	StatusQualified   Status = "QUALIFIED"
	StatusWaitingList Status = "WAITING LIST"
	StatusLost        Status = "LOST"
	StatusWon         Status = "WON"
	StatusSpam        Status = "SPAM"
)

// Quality classifies lead value independently of workflow status.
type Quality string

const (
	QualityUncategorized Quality = "UNCATEGORIZED"
	QualityHot           Quality = "HOT"
	QualityWarm          Quality = "WARM"
	QualityCold          Quality = "COLD"
	QualityFake          Quality = "FAKE"
)

// removedMarker in forwardedTo soft-archives a lead without deleting it.
const removedMarker = "removed"

// Lead is a contact inquiry tracked through the sales pipeline. The uid is
// the only identity stable across store round-trips; slNo is a display
// sequence number and not guaranteed unique.
type Lead struct {
	UID              string  `json:"uid"`
	SlNo             string  `json:"slNo"`
	Phone            string  `json:"phone"`
	Country          string  `json:"country"`
	Place            string  `json:"place"`
	Name             string  `json:"name"`
	LeadQuality      Quality `json:"leadQuality"`
	BusinessIndustry string  `json:"businessIndustry"`
	SpecialNotes     string  `json:"specialNotes"`
	CurrentStatus    Status  `json:"currentStatus"`
	ForwardedTo      string  `json:"forwardedTo"`
	DateTime         string  `json:"dateTime"`
}

// Statuses returns every workflow status in pipeline order.
func Statuses() []Status {
	return []Status{
		StatusNew,
		StatusContacted,
		StatusQualified,
		StatusWaitingList,
		StatusLost,
		StatusWon,
		StatusSpam,
	}
}

// Qualities returns every quality value.
func Qualities() []Quality {
	return []Quality{
		QualityUncategorized,
		QualityHot,
		QualityWarm,
		QualityCold,
		QualityFake,
	}
}

// ParseStatus maps free text from the sheet to a Status. Exact matches win;
// otherwise the sheet's historical shorthand is accepted by substring
// ("win"/"won", "qual", "cont", "wait"). Unrecognized text falls back to NEW.
func ParseStatus(raw string) Status {
	s := strings.ToUpper(strings.TrimSpace(raw))

	for _, status := range Statuses() {
		if s == string(status) {
			return status
		}
	}

	switch {
	case strings.Contains(s, "WIN"), strings.Contains(s, "WON"):
		return StatusWon
	case strings.Contains(s, "LOST"):
		return StatusLost
	case strings.Contains(s, "QUAL"):
		return StatusQualified
	case strings.Contains(s, "CONT"):
		return StatusContacted
	case strings.Contains(s, "SPAM"):
		return StatusSpam
	case strings.Contains(s, "WAIT"):
		return StatusWaitingList
	default:
		return StatusNew
	}
}

// ParseQuality maps free text from the sheet to a Quality. The legacy
// "Genuine"/"GENUINE" labels are equivalent to HOT. Unrecognized text falls
// back to UNCATEGORIZED.
func ParseQuality(raw string) Quality {
	q := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case strings.Contains(q, "HOT"), strings.Contains(q, "GENUINE"):
		return QualityHot
	case strings.Contains(q, "WARM"):
		return QualityWarm
	case strings.Contains(q, "COLD"):
		return QualityCold
	case strings.Contains(q, "FAKE"):
		return QualityFake
	default:
		return QualityUncategorized
	}
}

// IsPending reports whether the lead has not been routed to any team.
func (l Lead) IsPending() bool {
	return strings.TrimSpace(l.ForwardedTo) == ""
}

// IsRemoved reports whether the lead is soft-archived: terminal status
// (LOST/SPAM) or the explicit "removed" routing marker.
func (l Lead) IsRemoved() bool {
	if l.CurrentStatus == StatusLost || l.CurrentStatus == StatusSpam {
		return true
	}
	return textkit.Normalize(l.ForwardedTo) == removedMarker
}

// IsForwarded reports whether the lead is assigned to a real team: routed
// somewhere, and not to the "removed" marker.
func (l Lead) IsForwarded() bool {
	if l.IsPending() {
		return false
	}
	return textkit.Normalize(l.ForwardedTo) != removedMarker
}

// IsGenuine reports whether the lead counts as a high-quality ("genuine")
// lead. ParseQuality already folds the legacy Genuine labels into HOT.
func (l Lead) IsGenuine() bool {
	return l.LeadQuality == QualityHot
}

// SamePhone reports whether the other lead's phone is a duplicate of this
// one's (same trailing digits, ignoring country-code prefixes).
func (l Lead) SamePhone(other Lead) bool {
	return phone.SameNumber(l.Phone, other.Phone)
}

// Package models holds the alert domain types.
package models

import (
	"time"

	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

type Kind string

const (
	KindIncident Kind = "incident"
	KindSOS      Kind = "sos"
)

func (k Kind) Valid() bool {
	return k == KindIncident || k == KindSOS
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityCritical
}

// ParseSeverity validates a severity string at trust boundaries.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "severity must be info, warning or critical")
	}
	return sev, nil
}

// Alert is a single incident or distress signal tied to a tourist. Alerts are
// append-only; they are never edited after creation.
type Alert struct {
	ID        id.AlertID
	TouristID id.UserID
	Kind      Kind
	Severity  Severity
	Message   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

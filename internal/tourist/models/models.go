package models

import (
	"time"

	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

// DocumentStatus tracks one document kind through its lifecycle. Upload moves
// it to submitted; an authority review moves it to verified or back to
// not_submitted on rejection.
type DocumentStatus string

const (
	DocumentNotSubmitted DocumentStatus = "not_submitted"
	DocumentSubmitted    DocumentStatus = "submitted"
	DocumentVerified     DocumentStatus = "verified"
)

func (s DocumentStatus) Valid() bool {
	return s == DocumentNotSubmitted || s == DocumentSubmitted || s == DocumentVerified
}

// DocumentKind identifies which document a status belongs to. Each kind is
// tracked independently.
type DocumentKind string

const (
	KindPassport     DocumentKind = "passport"
	KindFlightTicket DocumentKind = "flight_ticket"
)

func (k DocumentKind) Valid() bool {
	return k == KindPassport || k == KindFlightTicket
}

// ParseDocumentKind validates a kind string at trust boundaries.
func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(s)
	if !k.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document kind must be passport or flight_ticket")
	}
	return k, nil
}

// VerificationState is derived from the pair of document statuses. It is
// never stored: always recomputed on read so it can not go stale.
type VerificationState string

const (
	VerificationPending     VerificationState = "pending"
	VerificationUnderReview VerificationState = "under_review"
	VerificationVerified    VerificationState = "verified"
)

// SafetyStatus is set by the incident-reporting flow; record reads only
// classify it for display grouping.
type SafetyStatus string

const (
	SafetySafe    SafetyStatus = "safe"
	SafetyWarning SafetyStatus = "warning"
	SafetyDanger  SafetyStatus = "danger"
)

func (s SafetyStatus) Valid() bool {
	return s == SafetySafe || s == SafetyWarning || s == SafetyDanger
}

// rank orders statuses by urgency: safe < warning < danger.
func (s SafetyStatus) rank() int {
	switch s {
	case SafetyDanger:
		return 2
	case SafetyWarning:
		return 1
	default:
		return 0
	}
}

// Outranks reports whether s is a more urgent classification than other.
func (s SafetyStatus) Outranks(other SafetyStatus) bool {
	return s.rank() > other.rank()
}

// TouristRecord is the registration record for one tourist. Document and
// safety fields are updated through the service; verification state is a
// projection and deliberately not a field here.
type TouristRecord struct {
	UserID             id.UserID
	FullName           string
	Country            string
	City               string
	Latitude           float64
	Longitude          float64
	SafetyStatus       SafetyStatus
	PassportStatus     DocumentStatus
	FlightTicketStatus DocumentStatus
	RegistrationDate   time.Time
	VerificationDate   *time.Time
}

// DocumentStatusFor returns the status for the given kind.
func (r *TouristRecord) DocumentStatusFor(kind DocumentKind) DocumentStatus {
	if kind == KindPassport {
		return r.PassportStatus
	}
	return r.FlightTicketStatus
}

// SetDocumentStatus writes the status for the given kind.
func (r *TouristRecord) SetDocumentStatus(kind DocumentKind, status DocumentStatus) {
	if kind == KindPassport {
		r.PassportStatus = status
		return
	}
	r.FlightTicketStatus = status
}

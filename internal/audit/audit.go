package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	UserID    string
	Subject   string
	Action    string
	Reason    string
}

type AuditEvent string

const (
	EventUserCreated       AuditEvent = "user_created"
	EventSessionCreated    AuditEvent = "session_created"
	EventSessionRevoked    AuditEvent = "session_revoked"
	EventAuthFailed        AuditEvent = "auth_failed"
	EventDocumentSubmitted AuditEvent = "document_submitted"
	EventDocumentVerified  AuditEvent = "document_verified"
	EventDocumentRejected  AuditEvent = "document_rejected"
	EventIncidentReported  AuditEvent = "incident_reported"
	EventSOSRaised         AuditEvent = "sos_raised"
)

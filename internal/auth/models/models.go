package models

import (
	"time"

	id "tourshield/pkg/domain"
	dErrors "tourshield/pkg/domain-errors"
)

// This file contains pure domain models for authentication: entities
// that should not depend on transport or HTTP-specific concerns.

// Role determines which dashboard a viewer is authorized for.
// Roles are assigned at sign-up and immutable thereafter; there is
// deliberately no role-change operation.
type Role string

const (
	RoleTourist   Role = "tourist"
	RoleAuthority Role = "authority"
)

func (r Role) String() string { return string(r) }

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTourist || r == RoleAuthority
}

// ParseRole validates a role string at trust boundaries.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role must be tourist or authority")
	}
	return r, nil
}

// User represents a registered account. The role is fixed at creation.
// This is a pure domain entity - use ProfileResult for JSON responses.
type User struct {
	ID           id.UserID
	Email        string
	DisplayName  string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

// Session represents an authentication session and its lifecycle state.
type Session struct {
	ID     id.SessionID
	UserID id.UserID
	Status SessionStatus

	// Device display metadata for session management UI, e.g. "Chrome on macOS".
	DeviceDisplayName string

	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastSeenAt time.Time
	RevokedAt  *time.Time
}

func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

func (s *Session) IsRevoked() bool {
	return s.Status == SessionStatusRevoked
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Revoke transitions the session to revoked state.
// Returns true if the transition occurred, false if already revoked.
func (s *Session) Revoke(at time.Time) bool {
	if s.IsRevoked() {
		return false
	}
	s.Status = SessionStatusRevoked
	if s.RevokedAt == nil || at.After(*s.RevokedAt) {
		s.RevokedAt = &at
	}
	return true
}

// RecordActivity updates the session's last seen time if the given time is
// after the current value.
func (s *Session) RecordActivity(at time.Time) {
	if at.After(s.LastSeenAt) {
		s.LastSeenAt = at
	}
}

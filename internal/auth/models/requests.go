package models

import (
	"strings"
	"time"

	dErrors "tourshield/pkg/domain-errors"
)

// SignUpRequest creates an account with a fixed role.
// Password confirmation is a form concern and is checked client-side.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// Normalize trims and lowercases fields that are compared later.
func (r *SignUpRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
}

// Validate enforces boundary invariants before the service is invoked.
func (r *SignUpRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if len(r.Password) < 8 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if _, err := ParseRole(r.Role); err != nil {
		return err
	}
	if r.DisplayName == "" {
		return dErrors.New(dErrors.CodeValidation, "display name is required")
	}
	if len(r.DisplayName) > 100 {
		return dErrors.New(dErrors.CodeValidation, "display name too long")
	}
	return nil
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SignInRequest) Validate() error {
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

// SignInResult is returned from SignUp and SignIn: the viewer is signed in
// either way, mirroring how the dashboard treats registration.
type SignInResult struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResult is the JSON projection of a viewer's profile.
type ProfileResult struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

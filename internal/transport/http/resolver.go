package httptransport

import (
	"context"

	"tourshield/internal/access"
	authmodels "tourshield/internal/auth/models"
	id "tourshield/pkg/domain"
)

// SessionResolver loads the viewer behind a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID id.SessionID) (*authmodels.User, error)
}

// profileResolver adapts the auth service to the guard's profile lookup.
type profileResolver struct {
	auth SessionResolver
}

// NewProfileResolver builds the guard's profile source from the auth service.
func NewProfileResolver(auth SessionResolver) access.ProfileResolver {
	return &profileResolver{auth: auth}
}

func (r *profileResolver) ResolveProfile(ctx context.Context, sessionID id.SessionID) (*access.Profile, error) {
	user, err := r.auth.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &access.Profile{
		ViewerID:    user.ID,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, nil
}

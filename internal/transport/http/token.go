package httptransport

import (
	jwttoken "tourshield/internal/jwt_token"
	"tourshield/internal/platform/middleware"
)

// tokenValidator adapts the JWT service to the middleware's validator.
type tokenValidator struct {
	jwt *jwttoken.JWTService
}

// NewTokenValidator wraps the JWT service for the auth middleware.
func NewTokenValidator(jwt *jwttoken.JWTService) middleware.TokenValidator {
	return &tokenValidator{jwt: jwt}
}

func (v *tokenValidator) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := v.jwt.ValidateSessionToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		Role:      claims.Role,
	}, nil
}

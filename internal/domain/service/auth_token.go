package service

import (
	"time"

	"github.com/google/uuid"
)

// AuthTokenService signs and validates the bearer tokens accepted by the HTTP
// layer. These are login credentials, unrelated to proof-of-presence tokens.
type AuthTokenService interface {
	// GenerateAccessToken creates a signed access token for the user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ParseAccessToken validates a token and returns the user it identifies.
	ParseAccessToken(token string) (uuid.UUID, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration
}

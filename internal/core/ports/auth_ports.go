package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a token pair plus the sanitized user on success.
	Login(ctx context.Context, identifier, password string) (*domain.TokenPair, *domain.User, error)
	// Refresh exchanges a valid, current refresh token for a new pair,
	// invalidating the presented one.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// Logout clears the user's stored refresh token. Idempotent.
	Logout(ctx context.Context, userID uuid.UUID) error
	// Verify checks an access token and returns the user id it carries.
	// This is the only contract the other handlers consume.
	Verify(accessToken string) (uuid.UUID, error)
}

package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByIdentifier looks a user up by username or email.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error

	// UpdateRefreshToken overwrites the stored refresh token unconditionally.
	// A nil token clears it. This is a single-field write that skips the
	// usual record validation on purpose.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	// RotateRefreshToken replaces the stored refresh token only if the
	// current value equals old (compare-and-swap). It reports whether the
	// swap happened; false means the presented token lost a race or was
	// already invalidated.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, old, new string) (bool, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, upload FileUpload) (*domain.User, error)
	UpdateCover(ctx context.Context, id uuid.UUID, upload FileUpload) (*domain.User, error)
}

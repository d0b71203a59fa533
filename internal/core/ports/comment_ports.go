package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type CommentRepository interface {
	Save(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentService interface {
	Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]*domain.Comment, error)
	Update(ctx context.Context, commentID, ownerID uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, ownerID uuid.UUID) error
}

package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type LikeRepository interface {
	GetVideoLike(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error)
	GetCommentLike(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error)
	Save(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error)
}

type LikeService interface {
	// ToggleVideoLike reports whether the video ends up liked.
	ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error)
}

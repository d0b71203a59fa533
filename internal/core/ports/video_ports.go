package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type VideoFilter struct {
	Query    string
	OwnerID  *uuid.UUID
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

type VideoRepository interface {
	Save(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	UpdateMeta(ctx context.Context, id uuid.UUID, title, description, thumbnailURL string) (*domain.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TogglePublished(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Duration    float64
	Video       FileUpload
	Thumbnail   FileUpload
}

type UpdateVideoInput struct {
	VideoID     uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	// Thumbnail is optional; nil keeps the current one.
	Thumbnail *FileUpload
}

type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

type VideoService interface {
	Publish(ctx context.Context, input PublishVideoInput) (*domain.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, input ListVideosInput) ([]*domain.Video, error)
	Update(ctx context.Context, input UpdateVideoInput) (*domain.Video, error)
	Delete(ctx context.Context, videoID, ownerID uuid.UUID) error
	TogglePublish(ctx context.Context, videoID, ownerID uuid.UUID) (*domain.Video, error)
}

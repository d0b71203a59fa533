package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type PlaylistRepository interface {
	Save(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error)
	UpdateMeta(ctx context.Context, id uuid.UUID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}

type CreatePlaylistInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	// VideoID optionally seeds the playlist with a first video.
	VideoID *uuid.UUID
}

type PlaylistService interface {
	Create(ctx context.Context, input CreatePlaylistInput) (*domain.Playlist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error)
	Update(ctx context.Context, playlistID, ownerID uuid.UUID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, playlistID, ownerID uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID, ownerID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID, ownerID uuid.UUID) error
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type playlistService struct {
	repo      ports.PlaylistRepository
	videoRepo ports.VideoRepository
}

func NewPlaylistService(repo ports.PlaylistRepository, videoRepo ports.VideoRepository) ports.PlaylistService {
	return &playlistService{repo: repo, videoRepo: videoRepo}
}

func (s *playlistService) Create(ctx context.Context, input ports.CreatePlaylistInput) (*domain.Playlist, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	playlist := &domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Save(ctx, playlist); err != nil {
		return nil, fmt.Errorf("%w: saving playlist: %v", domain.ErrInternal, err)
	}

	if input.VideoID != nil {
		if err := s.AddVideo(ctx, playlist.ID, *input.VideoID, input.OwnerID); err != nil {
			return nil, err
		}
		playlist.VideoIDs = []uuid.UUID{*input.VideoID}
	}

	return playlist, nil
}

func (s *playlistService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching playlist: %v", domain.ErrInternal, err)
	}
	if playlist == nil {
		return nil, domain.ErrPlaylistNotFound
	}
	return playlist, nil
}

func (s *playlistService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	playlists, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing playlists: %v", domain.ErrInternal, err)
	}
	return playlists, nil
}

func (s *playlistService) Update(ctx context.Context, playlistID, ownerID uuid.UUID, name, description string) (*domain.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := s.checkOwner(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}

	playlist, err := s.repo.UpdateMeta(ctx, playlistID, name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: updating playlist: %v", domain.ErrInternal, err)
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, playlistID, ownerID uuid.UUID) error {
	if err := s.checkOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, playlistID); err != nil {
		return fmt.Errorf("%w: deleting playlist: %v", domain.ErrInternal, err)
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, ownerID uuid.UUID) error {
	if err := s.checkOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("%w: fetching video: %v", domain.ErrInternal, err)
	}
	if video == nil {
		return domain.ErrVideoNotFound
	}

	if err := s.repo.AddVideo(ctx, playlistID, videoID); err != nil {
		return fmt.Errorf("%w: adding video to playlist: %v", domain.ErrInternal, err)
	}
	return nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, ownerID uuid.UUID) error {
	if err := s.checkOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}

	removed, err := s.repo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("%w: removing video from playlist: %v", domain.ErrInternal, err)
	}
	if !removed {
		return domain.ErrVideoNotInList
	}
	return nil
}

func (s *playlistService) checkOwner(ctx context.Context, playlistID, ownerID uuid.UUID) error {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: fetching playlist: %v", domain.ErrInternal, err)
	}
	if playlist == nil {
		return domain.ErrPlaylistNotFound
	}
	if playlist.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	return nil
}

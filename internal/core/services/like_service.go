package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type likeService struct {
	repo ports.LikeRepository
}

func NewLikeService(repo ports.LikeRepository) ports.LikeService {
	return &likeService{repo: repo}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	existing, err := s.repo.GetVideoLike(ctx, userID, videoID)
	if err != nil {
		return false, fmt.Errorf("%w: fetching like: %v", domain.ErrInternal, err)
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("%w: removing like: %v", domain.ErrInternal, err)
		}
		return false, nil
	}

	like := &domain.Like{
		ID:        uuid.New(),
		UserID:    userID,
		VideoID:   &videoID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, like); err != nil {
		return false, fmt.Errorf("%w: saving like: %v", domain.ErrInternal, err)
	}
	return true, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	existing, err := s.repo.GetCommentLike(ctx, userID, commentID)
	if err != nil {
		return false, fmt.Errorf("%w: fetching like: %v", domain.ErrInternal, err)
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("%w: removing like: %v", domain.ErrInternal, err)
		}
		return false, nil
	}

	like := &domain.Like{
		ID:        uuid.New(),
		UserID:    userID,
		CommentID: &commentID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, like); err != nil {
		return false, fmt.Errorf("%w: saving like: %v", domain.ErrInternal, err)
	}
	return true, nil
}

func (s *likeService) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	videos, err := s.repo.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing liked videos: %v", domain.ErrInternal, err)
	}
	return videos, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type commentService struct {
	repo      ports.CommentRepository
	videoRepo ports.VideoRepository
}

func NewCommentService(repo ports.CommentRepository, videoRepo ports.VideoRepository) ports.CommentService {
	return &commentService{repo: repo, videoRepo: videoRepo}
}

func (s *commentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching video: %v", domain.ErrInternal, err)
	}
	if video == nil {
		return nil, domain.ErrVideoNotFound
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: saving comment: %v", domain.ErrInternal, err)
	}
	return comment, nil
}

func (s *commentService) ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]*domain.Comment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}

	comments, err := s.repo.ListByVideo(ctx, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing comments: %v", domain.ErrInternal, err)
	}
	return comments, nil
}

func (s *commentService) Update(ctx context.Context, commentID, ownerID uuid.UUID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	if err := s.checkOwner(ctx, commentID, ownerID); err != nil {
		return nil, err
	}

	comment, err := s.repo.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, fmt.Errorf("%w: updating comment: %v", domain.ErrInternal, err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, ownerID uuid.UUID) error {
	if err := s.checkOwner(ctx, commentID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("%w: deleting comment: %v", domain.ErrInternal, err)
	}
	return nil
}

func (s *commentService) checkOwner(ctx context.Context, commentID, ownerID uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%w: fetching comment: %v", domain.ErrInternal, err)
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}
	if comment.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	return nil
}

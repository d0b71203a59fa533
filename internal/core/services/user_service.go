package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type UserService struct {
	repo  ports.UserRepository
	media ports.MediaStore
}

func NewUserService(repo ports.UserRepository, media ports.MediaStore) *UserService {
	return &UserService{repo: repo, media: media}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching user: %v", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	pub := user.Public()
	return &pub, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, id uuid.UUID, upload ports.FileUpload) (*domain.User, error) {
	return s.updateImage(ctx, id, upload, "avatars", s.repo.UpdateAvatar)
}

func (s *UserService) UpdateCover(ctx context.Context, id uuid.UUID, upload ports.FileUpload) (*domain.User, error) {
	return s.updateImage(ctx, id, upload, "covers", s.repo.UpdateCover)
}

func (s *UserService) updateImage(ctx context.Context, id uuid.UUID, upload ports.FileUpload, folder string,
	persist func(context.Context, uuid.UUID, string) error) (*domain.User, error) {
	if upload.Body == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}

	url, err := s.media.Upload(ctx, folder, upload)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading image: %v", domain.ErrInternal, err)
	}

	if err := persist(ctx, id, url); err != nil {
		return nil, fmt.Errorf("%w: updating user: %v", domain.ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

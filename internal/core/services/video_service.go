package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

const defaultPageSize = 10

// Columns the listing endpoint may sort on. Anything else falls back to
// created_at.
var videoSortColumns = map[string]bool{
	"created_at": true,
	"views":      true,
	"duration":   true,
	"title":      true,
}

type videoService struct {
	repo  ports.VideoRepository
	media ports.MediaStore
}

func NewVideoService(repo ports.VideoRepository, media ports.MediaStore) ports.VideoService {
	return &videoService{repo: repo, media: media}
}

func (s *videoService) Publish(ctx context.Context, input ports.PublishVideoInput) (*domain.Video, error) {
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidInput)
	}
	if input.Video.Body == nil {
		return nil, fmt.Errorf("%w: video file is required", domain.ErrInvalidInput)
	}
	if input.Thumbnail.Body == nil {
		return nil, fmt.Errorf("%w: thumbnail file is required", domain.ErrInvalidInput)
	}

	videoURL, err := s.media.Upload(ctx, "videos", input.Video)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading video: %v", domain.ErrInternal, err)
	}
	thumbURL, err := s.media.Upload(ctx, "thumbnails", input.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading thumbnail: %v", domain.ErrInternal, err)
	}

	video := &domain.Video{
		ID:           uuid.New(),
		OwnerID:      input.OwnerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		Duration:     input.Duration,
		IsPublished:  true,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Save(ctx, video); err != nil {
		return nil, fmt.Errorf("%w: saving video: %v", domain.ErrInternal, err)
	}

	return video, nil
}

func (s *videoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching video: %v", domain.ErrInternal, err)
	}
	if video == nil {
		return nil, domain.ErrVideoNotFound
	}

	// Best effort; a lost view count is not worth failing the request.
	_ = s.repo.IncrementViews(ctx, id)

	return video, nil
}

func (s *videoService) List(ctx context.Context, input ports.ListVideosInput) ([]*domain.Video, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}

	filter := ports.VideoFilter{
		Query:    input.Query,
		SortDesc: input.SortType == "desc",
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if videoSortColumns[input.SortBy] {
		filter.SortBy = input.SortBy
	} else {
		filter.SortBy = "created_at"
		filter.SortDesc = true
	}
	if input.UserID != "" {
		ownerID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
		}
		filter.OwnerID = &ownerID
	}

	videos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listing videos: %v", domain.ErrInternal, err)
	}
	return videos, nil
}

func (s *videoService) Update(ctx context.Context, input ports.UpdateVideoInput) (*domain.Video, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	current, err := s.ownedVideo(ctx, input.VideoID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	thumbURL := current.ThumbnailURL
	if input.Thumbnail != nil {
		thumbURL, err = s.media.Upload(ctx, "thumbnails", *input.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("%w: uploading thumbnail: %v", domain.ErrInternal, err)
		}
	}

	updated, err := s.repo.UpdateMeta(ctx, input.VideoID, input.Title, input.Description, thumbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: updating video: %v", domain.ErrInternal, err)
	}
	return updated, nil
}

func (s *videoService) Delete(ctx context.Context, videoID, ownerID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, videoID, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("%w: deleting video: %v", domain.ErrInternal, err)
	}

	// Storage cleanup is best effort; orphaned objects are cheaper than a
	// half-deleted record.
	_ = s.media.Delete(ctx, video.VideoURL)
	_ = s.media.Delete(ctx, video.ThumbnailURL)

	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, videoID, ownerID uuid.UUID) (*domain.Video, error) {
	if _, err := s.ownedVideo(ctx, videoID, ownerID); err != nil {
		return nil, err
	}

	video, err := s.repo.TogglePublished(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: toggling publish status: %v", domain.ErrInternal, err)
	}
	return video, nil
}

func (s *videoService) ownedVideo(ctx context.Context, videoID, ownerID uuid.UUID) (*domain.Video, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching video: %v", domain.ErrInternal, err)
	}
	if video == nil {
		return nil, domain.ErrVideoNotFound
	}
	if video.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return video, nil
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

// snapshotMaxAge is how old a rolled-up stats row may be before the
// dashboard recomputes live instead.
const snapshotMaxAge = time.Hour

type dashboardService struct {
	repo      ports.DashboardRepository
	videoRepo ports.VideoRepository
}

func NewDashboardService(repo ports.DashboardRepository, videoRepo ports.VideoRepository) ports.DashboardService {
	return &dashboardService{repo: repo, videoRepo: videoRepo}
}

func (s *dashboardService) GetChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching stats snapshot: %v", domain.ErrInternal, err)
	}
	if snapshot != nil && time.Since(snapshot.ComputedAt) < snapshotMaxAge {
		return snapshot, nil
	}

	stats, err := s.repo.ComputeStats(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: computing channel stats: %v", domain.ErrInternal, err)
	}
	return stats, nil
}

func (s *dashboardService) GetChannelVideos(ctx context.Context, channelID uuid.UUID) ([]*domain.Video, error) {
	videos, err := s.videoRepo.List(ctx, ports.VideoFilter{
		OwnerID:  &channelID,
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    100,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing channel videos: %v", domain.ErrInternal, err)
	}
	return videos, nil
}

func (s *dashboardService) RollupAllChannels(ctx context.Context) error {
	channelIDs, err := s.repo.ListChannelIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list channels: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(channelIDs))

	for _, channelID := range channelIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := s.repo.SnapshotStats(ctx, id); err != nil {
				errChan <- fmt.Errorf("failed to snapshot channel %s: %w", id, err)
			}
		}(channelID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}
	return nil
}

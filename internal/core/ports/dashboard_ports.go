package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type DashboardRepository interface {
	// ComputeStats aggregates the channel's totals live.
	ComputeStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
	// SnapshotStats recomputes the channel's totals and upserts them into
	// the channel_stats rollup table.
	SnapshotStats(ctx context.Context, channelID uuid.UUID) error
	// GetSnapshot returns the rolled-up stats, or nil if none exist yet.
	GetSnapshot(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
	// ListChannelIDs returns every user id owning at least one video.
	ListChannelIDs(ctx context.Context) ([]uuid.UUID, error)
}

type DashboardService interface {
	GetChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID uuid.UUID) ([]*domain.Video, error)
	// RollupAllChannels snapshots stats for every channel.
	RollupAllChannels(ctx context.Context) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

// statsQuery is the SQL translation of the original aggregation: video
// totals joined with per-video likes and the channel's subscriber count.
const statsQuery = `
	SELECT
		COUNT(v.id),
		COALESCE(SUM(v.views), 0),
		(SELECT COUNT(*) FROM likes l JOIN videos lv ON lv.id = l.video_id WHERE lv.owner_id = $1),
		(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1),
		now()
	FROM videos v
	WHERE v.owner_id = $1
`

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) ports.DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) ComputeStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	stats := &domain.ChannelStats{ChannelID: channelID}
	err := r.db.QueryRowContext(ctx, statsQuery, channelID).Scan(
		&stats.TotalVideos, &stats.TotalViews, &stats.TotalLikes, &stats.TotalSubscribers, &stats.ComputedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute channel stats: %w", err)
	}
	return stats, nil
}

func (r *DashboardRepository) SnapshotStats(ctx context.Context, channelID uuid.UUID) error {
	query := `
		INSERT INTO channel_stats (channel_id, total_videos, total_views, total_likes, total_subscribers, computed_at)
		SELECT $1, COUNT(v.id), COALESCE(SUM(v.views), 0),
			(SELECT COUNT(*) FROM likes l JOIN videos lv ON lv.id = l.video_id WHERE lv.owner_id = $1),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1),
			now()
		FROM videos v
		WHERE v.owner_id = $1
		ON CONFLICT (channel_id) DO UPDATE SET
			total_videos = EXCLUDED.total_videos,
			total_views = EXCLUDED.total_views,
			total_likes = EXCLUDED.total_likes,
			total_subscribers = EXCLUDED.total_subscribers,
			computed_at = EXCLUDED.computed_at
	`
	_, err := r.db.ExecContext(ctx, query, channelID)
	if err != nil {
		return fmt.Errorf("failed to snapshot channel stats: %w", err)
	}
	return nil
}

func (r *DashboardRepository) GetSnapshot(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	query := `
		SELECT channel_id, total_videos, total_views, total_likes, total_subscribers, computed_at
		FROM channel_stats
		WHERE channel_id = $1
	`
	stats := &domain.ChannelStats{}
	err := r.db.QueryRowContext(ctx, query, channelID).Scan(
		&stats.ChannelID, &stats.TotalVideos, &stats.TotalViews,
		&stats.TotalLikes, &stats.TotalSubscribers, &stats.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stats, nil
}

func (r *DashboardRepository) ListChannelIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT owner_id FROM videos`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan channel id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}
	return ids, nil
}

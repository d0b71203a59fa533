package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChannelStats is the dashboard aggregate for a channel. ComputedAt is the
// snapshot time when served from the rollup table, or the request time when
// computed live.
type ChannelStats struct {
	ChannelID        uuid.UUID `json:"channel_id"`
	TotalVideos      int64     `json:"total_videos"`
	TotalViews       int64     `json:"total_views"`
	TotalLikes       int64     `json:"total_likes"`
	TotalSubscribers int64     `json:"total_subscribers"`
	ComputedAt       time.Time `json:"computed_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like targets exactly one of VideoID or CommentID.
type Like struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	VideoID   *uuid.UUID `json:"video_id,omitempty"`
	CommentID *uuid.UUID `json:"comment_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

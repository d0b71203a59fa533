package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	VideoIDs    []uuid.UUID `json:"video_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a subscriber to a channel. Channels are users; every
// user doubles as a channel other users can subscribe to.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
)

type SubscriptionRepository interface {
	Get(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error)
	Save(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListSubscribers returns the users subscribed to the channel.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error)
	// ListChannels returns the channels the user subscribes to.
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error)
}

type SubscriptionService interface {
	// Toggle reports whether the user ends up subscribed.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error)
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error)
}

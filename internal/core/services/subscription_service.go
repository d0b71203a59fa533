package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type subscriptionService struct {
	repo     ports.SubscriptionRepository
	userRepo ports.UserRepository
}

func NewSubscriptionService(repo ports.SubscriptionRepository, userRepo ports.UserRepository) ports.SubscriptionService {
	return &subscriptionService{repo: repo, userRepo: userRepo}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, domain.ErrSelfSubscribe
	}

	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("%w: fetching channel: %v", domain.ErrInternal, err)
	}
	if channel == nil {
		return false, domain.ErrUserNotFound
	}

	existing, err := s.repo.Get(ctx, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("%w: fetching subscription: %v", domain.ErrInternal, err)
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("%w: removing subscription: %v", domain.ErrInternal, err)
		}
		return false, nil
	}

	sub := &domain.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return false, fmt.Errorf("%w: saving subscription: %v", domain.ErrInternal, err)
	}
	return true, nil
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error) {
	users, err := s.repo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing subscribers: %v", domain.ErrInternal, err)
	}
	return sanitizeUsers(users), nil
}

func (s *subscriptionService) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error) {
	users, err := s.repo.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing channels: %v", domain.ErrInternal, err)
	}
	return sanitizeUsers(users), nil
}

func sanitizeUsers(users []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		pub := u.Public()
		out = append(out, &pub)
	}
	return out
}

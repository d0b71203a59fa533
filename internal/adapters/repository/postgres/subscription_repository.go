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

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) ports.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Get(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error) {
	query := `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`
	sub := &domain.Subscription{}
	err := r.db.QueryRowContext(ctx, query, subscriberID, channelID).Scan(
		&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, sub.ID, sub.SubscriberID, sub.ChannelID).Scan(&sub.CreatedAt)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subscriptions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, COALESCE(u.avatar_url, ''), u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`
	return r.listUsers(ctx, query, channelID)
}

func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, COALESCE(u.avatar_url, ''), u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`
	return r.listUsers(ctx, query, subscriberID)
}

func (r *SubscriptionRepository) listUsers(ctx context.Context, query string, arg any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.AvatarURL, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

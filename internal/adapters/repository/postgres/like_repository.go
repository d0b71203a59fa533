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

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) ports.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) GetVideoLike(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error) {
	query := `
		SELECT id, user_id, video_id, comment_id, created_at
		FROM likes
		WHERE user_id = $1 AND video_id = $2
	`
	return r.getOne(ctx, query, userID, videoID)
}

func (r *LikeRepository) GetCommentLike(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error) {
	query := `
		SELECT id, user_id, video_id, comment_id, created_at
		FROM likes
		WHERE user_id = $1 AND comment_id = $2
	`
	return r.getOne(ctx, query, userID, commentID)
}

func (r *LikeRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Like, error) {
	like := &domain.Like{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&like.ID, &like.UserID, &like.VideoID, &like.CommentID, &like.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return like, nil
}

func (r *LikeRepository) Save(ctx context.Context, like *domain.Like) error {
	query := `
		INSERT INTO likes (id, user_id, video_id, comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, like.ID, like.UserID, like.VideoID, like.CommentID).
		Scan(&like.CreatedAt)
}

func (r *LikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM likes WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE l.user_id = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

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

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) ports.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, comment.ID, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`
	comment := &domain.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*domain.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment := &domain.Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, video_id, owner_id, content, created_at, updated_at
	`
	comment := &domain.Comment{}
	err := r.db.QueryRowContext(ctx, query, id, content).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

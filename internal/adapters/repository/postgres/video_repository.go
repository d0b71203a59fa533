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

const videoColumns = `id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at`

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) ports.VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Save(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.VideoURL, video.ThumbnailURL, video.Duration, video.IsPublished,
	).Scan(&video.CreatedAt, &video.UpdatedAt)
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	video := &domain.Video{}
	err := scanVideo(r.db.QueryRowContext(ctx, query, id), video)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return video, nil
}

func (r *VideoRepository) List(ctx context.Context, filter ports.VideoFilter) ([]*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE 1=1`
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	} else {
		query += " AND is_published = true"
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	// filter.SortBy is whitelisted by the service layer; never user input.
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", filter.SortBy, direction)

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *VideoRepository) UpdateMeta(ctx context.Context, id uuid.UUID, title, description, thumbnailURL string) (*domain.Video, error) {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + videoColumns
	video := &domain.Video{}
	if err := scanVideo(r.db.QueryRowContext(ctx, query, id, title, description, thumbnailURL), video); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM videos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *VideoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = now()
		WHERE id = $1
		RETURNING ` + videoColumns
	video := &domain.Video{}
	if err := scanVideo(r.db.QueryRowContext(ctx, query, id), video); err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}
	return video, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner, video *domain.Video) error {
	return row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
}

func scanVideos(rows *sql.Rows) ([]*domain.Video, error) {
	var videos []*domain.Video
	for rows.Next() {
		video := &domain.Video{}
		if err := scanVideo(rows, video); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return videos, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type PlaylistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) ports.PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// playlistQuery aggregates member video ids so a playlist loads in one
// round trip.
const playlistQuery = `
	SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
	       COALESCE(array_agg(pv.video_id ORDER BY pv.added_at) FILTER (WHERE pv.video_id IS NOT NULL), '{}') AS video_ids
	FROM playlists p
	LEFT JOIN playlist_videos pv ON pv.playlist_id = p.id
`

func (r *PlaylistRepository) Save(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	query := playlistQuery + ` WHERE p.id = $1 GROUP BY p.id`
	playlist, err := scanPlaylist(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	query := playlistQuery + ` WHERE p.owner_id = $1 GROUP BY p.id ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*domain.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlists: %w", err)
	}
	return playlists, nil
}

func (r *PlaylistRepository) UpdateMeta(ctx context.Context, id uuid.UUID, name, description string) (*domain.Playlist, error) {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, name, description); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM playlists WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, playlistID, videoID)
	return err
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	res, err := r.db.ExecContext(ctx, query, playlistID, videoID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanPlaylist(row rowScanner) (*domain.Playlist, error) {
	playlist := &domain.Playlist{}
	var videoIDs []string
	err := row.Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt, pq.Array(&videoIDs),
	)
	if err != nil {
		return nil, err
	}
	for _, raw := range videoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse video id %q: %w", raw, err)
		}
		playlist.VideoIDs = append(playlist.VideoIDs, id)
	}
	return playlist, nil
}

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

const userColumns = `id, username, email, full_name, avatar_url, cover_url, password_hash, refresh_token, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return r.getOne(ctx, query, identifier)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	var avatar, cover sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&avatar,
		&cover,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.AvatarURL = avatar.String
	user.CoverURL = cover.String
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.FullName, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, avatarURL)
	return err
}

func (r *UserRepository) UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	query := `UPDATE users SET cover_url = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, coverURL)
	return err
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `UPDATE users SET refresh_token = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, token)
	return err
}

func (r *UserRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, old, new string) (bool, error) {
	// Single-statement compare-and-swap; concurrent rotations cannot both
	// match the old value.
	query := `UPDATE users SET refresh_token = $3 WHERE id = $1 AND refresh_token = $2`
	res, err := r.db.ExecContext(ctx, query, id, old, new)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	PasswordHash string    `json:"-"`
	// RefreshToken is the single currently valid refresh token for this
	// user. nil means no active session.
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns a copy safe to hand to clients: the credential hash and
// the stored refresh token never leave the service layer.
func (u User) Public() User {
	u.PasswordHash = ""
	u.RefreshToken = nil
	return u
}

// TokenPair is issued on login and on every successful refresh rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

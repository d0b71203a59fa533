package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

// TokenConfig carries the two independent signing secrets and lifetimes:
// a short one for access tokens, a long one for refresh tokens.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func TokenConfigFromEnv() TokenConfig {
	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		fmt.Println("Warning: ACCESS_TOKEN_SECRET or REFRESH_TOKEN_SECRET not set")
	}

	cfg := TokenConfig{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTTL = d
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshTTL = d
		}
	}
	return cfg
}

// AuthService owns the session lifecycle: issuing, verifying, rotating and
// revoking access/refresh token pairs. A user has at most one live refresh
// token; it must match the stored value byte-for-byte to be exchanged.
type AuthService struct {
	userRepo ports.UserRepository
	cfg      TokenConfig
}

func NewAuthService(userRepo ports.UserRepository, cfg TokenConfig) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.FullName == "" || input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: fullname, email, username and password are required", domain.ErrInvalidInput)
	}

	for _, identifier := range []string{input.Username, input.Email} {
		existing, err := s.userRepo.GetByIdentifier(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("%w: looking up user: %v", domain.ErrInternal, err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: username or email taken", domain.ErrAlreadyExists)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", domain.ErrInternal, err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: creating user: %v", domain.ErrInternal, err)
	}

	pub := user.Public()
	return &pub, nil
}

// Login verifies the credential and starts a session. An unknown identifier
// and a wrong password fail identically so the caller cannot tell which
// half was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.TokenPair, *domain.User, error) {
	if identifier == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: identifier and password are required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: looking up user: %v", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	pub := user.Public()
	return pair, &pub, nil
}

// Refresh rotates a refresh token: the presented token must verify against
// the refresh secret and must equal the value currently stored for the
// user. On success the stored value is atomically replaced, so the
// presented token can never be exchanged again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", domain.ErrInvalidInput)
	}

	// Signature and expiry are checked before any store read.
	userID, err := parseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user: %v", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, domain.ErrTokenInvalid
	}

	stored := user.RefreshToken
	if stored == nil || subtle.ConstantTimeCompare([]byte(*stored), []byte(refreshToken)) != 1 {
		return nil, domain.ErrTokenReused
	}

	pair, err := s.mint(user.ID)
	if err != nil {
		return nil, err
	}

	// Compare-and-swap: if a concurrent refresh already rotated the stored
	// value, this one loses and must fail closed.
	swapped, err := s.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: persisting refresh token: %v", domain.ErrInternal, err)
	}
	if !swapped {
		return nil, domain.ErrTokenReused
	}

	return pair, nil
}

// Logout clears the stored refresh token so no previously issued refresh
// token can pass the match check again. Calling it twice is not an error.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("%w: clearing refresh token: %v", domain.ErrInternal, err)
	}
	return nil
}

// Verify checks an access token and returns the user id it is bound to.
func (s *AuthService) Verify(accessToken string) (uuid.UUID, error) {
	userID, err := parseToken(accessToken, s.cfg.AccessSecret)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}
	return userID, nil
}

// issue mints a fresh pair and persists the refresh token onto the user
// row. No pair is ever returned without the persistence succeeding; a
// refresh token the store does not recognize would be worthless.
func (s *AuthService) issue(ctx context.Context, userID uuid.UUID) (*domain.TokenPair, error) {
	pair, err := s.mint(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, &pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("%w: persisting refresh token: %v", domain.ErrInternal, err)
	}
	return pair, nil
}

func (s *AuthService) mint(userID uuid.UUID) (*domain.TokenPair, error) {
	access, err := signToken(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: signing access token: %v", domain.ErrInternal, err)
	}
	refresh, err := signToken(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: signing refresh token: %v", domain.ErrInternal, err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		// Unique per token so two rotations within the same second still
		// produce distinct refresh values.
		ID: uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	return uuid.Parse(claims.Subject)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		FullName: "Test User",
		Email:    email,
		Username: username,
		Password: "s3cret",
	}
}

type fakeUserRepo struct {
	users      map[uuid.UUID]*domain.User
	updateErr  error
	lookupErr  error
	reads      int
	lastStored map[uuid.UUID]*string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[uuid.UUID]*domain.User),
		lastStored: make(map[uuid.UUID]*string),
	}
}

func (r *fakeUserRepo) addUser(username, email, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: string(hash),
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.reads++
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	r.reads++
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return nil
}

func (r *fakeUserRepo) UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	return nil
}

func (r *fakeUserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.RefreshToken = token
	r.lastStored[id] = token
	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(ctx context.Context, id uuid.UUID, old, new string) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	u, ok := r.users[id]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != old {
		return false, nil
	}
	u.RefreshToken = &new
	r.lastStored[id] = &new
	return true, nil
}

func testConfig() TokenConfig {
	return TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	pair, got, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.PasswordHash, "password hash must not leak")

	// The refresh token must be persisted, or it could never be exchanged.
	require.NotNil(t, repo.users[user.ID].RefreshToken)
	assert.Equal(t, pair.RefreshToken, *repo.users[user.ID].RefreshToken)

	// Login by email works too.
	_, _, err = svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	_, _, errUnknown := svc.Login(ctx, "nobody", "s3cret")
	_, _, errWrongPass := svc.Login(ctx, "alice", "wrong")

	// Unknown identifier and wrong password must be indistinguishable.
	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

	_, _, err := svc.Login(ctx, "", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.addUser("alice", "alice@example.com", "s3cret")
	repo.updateErr = assert.AnError
	svc := NewAuthService(repo, testConfig())

	pair, _, err := svc.Login(ctx, "alice", "s3cret")
	require.ErrorIs(t, err, domain.ErrInternal)
	assert.Nil(t, pair, "no pair may be handed out if the refresh token was not stored")
}

func TestRefresh_Rotation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	first, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "refresh must rotate the token")

	// The spent token no longer matches the stored value.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenReused)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The current token still works.
	third, err := svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, second.RefreshToken, third.RefreshToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	reads := repo.reads
	_, err = svc.Refresh(ctx, "not-a-jwt")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.Equal(t, reads, repo.reads, "a malformed token must be rejected without touching the store")

	// A structurally valid token signed with the wrong secret also fails
	// before any store read.
	forged, err := signToken(uuid.New(), []byte("wrong-secret"), time.Hour)
	require.NoError(t, err)
	reads = repo.reads
	_, err = svc.Refresh(ctx, forged)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.Equal(t, reads, repo.reads)

	// Expired tokens fail the same way.
	expired, err := signToken(uuid.New(), testConfig().RefreshSecret, -time.Minute)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRefresh_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())

	// Well-signed token for a user the store has never seen.
	token, err := signToken(uuid.New(), testConfig().RefreshSecret, time.Hour)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRefresh_LostRace(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	first, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	// Simulate a concurrent rotation that lands between this request's
	// match check and its swap: the stored value changes under us.
	rotated, err := repo.RotateRefreshToken(ctx, user.ID, first.RefreshToken, "someone-else-rotated")
	require.NoError(t, err)
	require.True(t, rotated)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenReused)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	pair, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	assert.Nil(t, repo.users[user.ID].RefreshToken)

	// The session is dead: the last issued refresh token is unusable.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenReused)

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(ctx, user.ID))
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.addUser("alice", "alice@example.com", "s3cret")
	svc := NewAuthService(repo, testConfig())

	pair, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	id, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	// A refresh token is not an access token.
	_, err = svc.Verify(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.Verify("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())

	user, err := svc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, registerInput("alice", "other@example.com"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Register(ctx, registerInput("other", "alice@example.com"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	input := registerInput("bob", "bob@example.com")
	input.Password = ""
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vidtube/api/internal/adapters/handler/http"
	repo "github.com/vidtube/api/internal/adapters/repository/postgres"
	"github.com/vidtube/api/internal/core/ports"
	"github.com/vidtube/api/internal/core/services"
)

type TestApp struct {
	DB           *sql.DB
	Server       *httptest.Server
	Client       *http.Client
	DashboardSvc ports.DashboardService
	DBContainer  testcontainers.Container
}

// stubMediaStore stands in for object storage; integration tests cover the
// database and HTTP surface, not S3.
type stubMediaStore struct{}

func (s *stubMediaStore) Upload(ctx context.Context, folder string, upload ports.FileUpload) (string, error) {
	return fmt.Sprintf("https://media.test/%s/%s", folder, upload.Name), nil
}

func (s *stubMediaStore) Delete(ctx context.Context, url string) error {
	return nil
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	os.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	videoRepo := repo.NewVideoRepository(db)
	commentRepo := repo.NewCommentRepository(db)
	likeRepo := repo.NewLikeRepository(db)
	playlistRepo := repo.NewPlaylistRepository(db)
	subscriptionRepo := repo.NewSubscriptionRepository(db)
	dashboardRepo := repo.NewDashboardRepository(db)

	media := &stubMediaStore{}
	tokenCfg := services.TokenConfigFromEnv()

	authSvc := services.NewAuthService(userRepo, tokenCfg)
	dashboardSvc := services.NewDashboardService(dashboardRepo, videoRepo)

	router := handler.NewHandler(handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, "", http.SameSiteLaxMode, tokenCfg.AccessTTL, tokenCfg.RefreshTTL),
		User:         handler.NewUserHandler(services.NewUserService(userRepo, media)),
		Video:        handler.NewVideoHandler(services.NewVideoService(videoRepo, media)),
		Comment:      handler.NewCommentHandler(services.NewCommentService(commentRepo, videoRepo)),
		Like:         handler.NewLikeHandler(services.NewLikeService(likeRepo)),
		Playlist:     handler.NewPlaylistHandler(services.NewPlaylistService(playlistRepo, videoRepo)),
		Subscription: handler.NewSubscriptionHandler(services.NewSubscriptionService(subscriptionRepo, userRepo)),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
	}, authSvc)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:           db,
		Server:       server,
		Client:       server.Client(),
		DashboardSvc: dashboardSvc,
		DBContainer:  dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// postJSON sends a JSON body, optionally with a bearer token.
func (app *TestApp) postJSON(t *testing.T, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

type session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// registerAndLogin creates a fresh account and opens a session for it.
func (app *TestApp) registerAndLogin(t *testing.T, username string) session {
	t.Helper()

	resp := app.postJSON(t, "/api/auth/register", "", map[string]string{
		"fullname": "User " + username,
		"email":    username + "@example.com",
		"username": username,
		"password": "password123",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.postJSON(t, "/api/auth/login", "", map[string]string{
		"identifier": username,
		"password":   "password123",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	return session{
		UserID:       payload.Data.User.ID,
		AccessToken:  payload.Data.AccessToken,
		RefreshToken: payload.Data.RefreshToken,
	}
}

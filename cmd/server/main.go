package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/vidtube/api/internal/adapters/handler/http"
	repo "github.com/vidtube/api/internal/adapters/repository/postgres"
	"github.com/vidtube/api/internal/adapters/storage/s3"
	"github.com/vidtube/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	mediaStore, err := s3.NewMediaStore(context.Background(), s3.Config{
		Region:        os.Getenv("S3_REGION"),
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		Bucket:        os.Getenv("S3_BUCKET"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	})
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := repo.NewUserRepository(db)
	videoRepo := repo.NewVideoRepository(db)
	commentRepo := repo.NewCommentRepository(db)
	likeRepo := repo.NewLikeRepository(db)
	playlistRepo := repo.NewPlaylistRepository(db)
	subscriptionRepo := repo.NewSubscriptionRepository(db)
	dashboardRepo := repo.NewDashboardRepository(db)

	// Services
	tokenCfg := services.TokenConfigFromEnv()
	authSvc := services.NewAuthService(userRepo, tokenCfg)
	userSvc := services.NewUserService(userRepo, mediaStore)
	videoSvc := services.NewVideoService(videoRepo, mediaStore)
	commentSvc := services.NewCommentService(commentRepo, videoRepo)
	likeSvc := services.NewLikeService(likeRepo)
	playlistSvc := services.NewPlaylistService(playlistRepo, videoRepo)
	subscriptionSvc := services.NewSubscriptionService(subscriptionRepo, userRepo)
	dashboardSvc := services.NewDashboardService(dashboardRepo, videoRepo)

	router := handler.NewHandler(handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, os.Getenv("COOKIE_DOMAIN"), cookieSameSite(), tokenCfg.AccessTTL, tokenCfg.RefreshTTL),
		User:         handler.NewUserHandler(userSvc),
		Video:        handler.NewVideoHandler(videoSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		Like:         handler.NewLikeHandler(likeSvc),
		Playlist:     handler.NewPlaylistHandler(playlistSvc),
		Subscription: handler.NewSubscriptionHandler(subscriptionSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
	}, authSvc)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func cookieSameSite() stdhttp.SameSite {
	switch os.Getenv("COOKIE_SAMESITE") {
	case "none":
		return stdhttp.SameSiteNoneMode
	case "strict":
		return stdhttp.SameSiteStrictMode
	default:
		return stdhttp.SameSiteLaxMode
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

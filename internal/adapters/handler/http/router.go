package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vidtube/api/internal/core/ports"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Video        *VideoHandler
	Comment      *CommentHandler
	Like         *LikeHandler
	Playlist     *PlaylistHandler
	Subscription *SubscriptionHandler
	Dashboard    *DashboardHandler
}

func NewHandler(h Handlers, authService ports.AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	requireAuth := RequireAuth(authService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.With(requireAuth).Post("/logout", h.Auth.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(requireAuth).Get("/me", h.User.GetMe)
			r.With(requireAuth).Patch("/me/avatar", h.User.UpdateAvatar)
			r.With(requireAuth).Patch("/me/cover", h.User.UpdateCover)
			r.Get("/{id}/playlists", h.Playlist.ListByUser)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.Video.List)
			r.With(requireAuth).Post("/", h.Video.Publish)
			r.Get("/{id}", h.Video.GetByID)
			r.With(requireAuth).Patch("/{id}", h.Video.Update)
			r.With(requireAuth).Delete("/{id}", h.Video.Delete)
			r.With(requireAuth).Patch("/{id}/toggle-publish", h.Video.TogglePublish)
			r.Get("/{id}/comments", h.Comment.ListByVideo)
			r.With(requireAuth).Post("/{id}/comments", h.Comment.Add)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/{id}", h.Comment.Update)
			r.Delete("/{id}", h.Comment.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/videos/{id}/toggle", h.Like.ToggleVideoLike)
			r.Post("/comments/{id}/toggle", h.Like.ToggleCommentLike)
			r.Get("/videos", h.Like.ListLikedVideos)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.With(requireAuth).Post("/", h.Playlist.Create)
			r.Get("/{id}", h.Playlist.GetByID)
			r.With(requireAuth).Patch("/{id}", h.Playlist.Update)
			r.With(requireAuth).Delete("/{id}", h.Playlist.Delete)
			r.With(requireAuth).Post("/{id}/videos/{videoId}", h.Playlist.AddVideo)
			r.With(requireAuth).Delete("/{id}/videos/{videoId}", h.Playlist.RemoveVideo)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.With(requireAuth).Post("/channels/{id}/toggle", h.Subscription.Toggle)
			r.Get("/channels/{id}/subscribers", h.Subscription.ListSubscribers)
			r.Get("/users/{id}/channels", h.Subscription.ListChannels)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", h.Dashboard.GetStats)
			r.Get("/videos", h.Dashboard.GetVideos)
		})
	})

	return r
}

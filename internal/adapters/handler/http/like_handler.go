package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/ports"
)

type LikeHandler struct {
	service ports.LikeService
}

func NewLikeHandler(service ports.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleVideoLike)
}

func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleCommentLike)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request,
	toggle func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	liked, err := toggle(r.Context(), userID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *LikeHandler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	videos, err := h.service.ListLikedVideos(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, videos)
}

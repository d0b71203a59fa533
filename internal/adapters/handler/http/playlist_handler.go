package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/ports"
)

type PlaylistHandler struct {
	service ports.PlaylistService
}

func NewPlaylistHandler(service ports.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoID     string `json:"video_id"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreatePlaylistInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.VideoID != "" {
		videoID, err := uuid.Parse(req.VideoID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid video id")
			return
		}
		input.VideoID = &videoID
	}

	playlist, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, playlist)
}

func (h *PlaylistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, err := h.service.GetByID(r.Context(), playlistID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	playlists, err := h.service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, playlists)
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.service.Update(r.Context(), playlistID, userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}

	if err := h.service.Delete(r.Context(), playlistID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.changeVideo(w, r, h.service.AddVideo)
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.changeVideo(w, r, h.service.RemoveVideo)
}

func (h *PlaylistHandler) changeVideo(w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, playlistID, videoID, ownerID uuid.UUID) error) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist id")
		return
	}
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	if err := change(r.Context(), playlistID, videoID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

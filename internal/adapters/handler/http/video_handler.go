package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/ports"
)

// maxVideoUploadSize bounds the whole publish form, video file included.
const maxVideoUploadSize = 512 << 20 // 512 MiB

type VideoHandler struct {
	service ports.VideoService
}

func NewVideoHandler(service ports.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	videos, err := h.service.List(r.Context(), ports.ListVideosInput{
		Page:     page,
		Limit:    limit,
		Query:    q.Get("query"),
		SortBy:   q.Get("sortBy"),
		SortType: q.Get("sortType"),
		UserID:   q.Get("userId"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, videos)
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := r.ParseMultipartForm(maxVideoUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	videoFile, err := fileFromRequest(r, "video", maxVideoUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer videoFile.close()

	thumbFile, err := fileFromRequest(r, "thumbnail", maxVideoUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer thumbFile.close()

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	video, err := h.service.Publish(r.Context(), ports.PublishVideoInput{
		OwnerID:     userID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
		Video:       videoFile.FileUpload,
		Thumbnail:   thumbFile.FileUpload,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, video)
}

func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := h.service.GetByID(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, video)
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	input := ports.UpdateVideoInput{VideoID: videoID, OwnerID: userID}

	// Metadata-only updates arrive as JSON; thumbnail replacements as
	// multipart.
	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		var req updateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input.Title = req.Title
		input.Description = req.Description
	} else {
		if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "failed to parse multipart form")
			return
		}
		input.Title = r.FormValue("title")
		input.Description = r.FormValue("description")

		if thumb, err := fileFromRequest(r, "thumbnail", maxImageUploadSize); err == nil {
			defer thumb.close()
			input.Thumbnail = &thumb.FileUpload
		}
	}

	video, err := h.service.Update(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	if err := h.service.Delete(r.Context(), videoID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := h.service.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, video)
}

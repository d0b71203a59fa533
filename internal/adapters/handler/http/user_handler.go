package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

// maxImageUploadSize bounds avatar and cover uploads.
const maxImageUploadSize = 10 << 20 // 10 MiB

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.service.UpdateAvatar)
}

func (h *UserHandler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "cover", h.service.UpdateCover)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string,
	update func(context.Context, uuid.UUID, ports.FileUpload) (*domain.User, error)) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	upload, err := fileFromRequest(r, field, maxImageUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer upload.close()

	user, err := update(r.Context(), userID, upload.FileUpload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

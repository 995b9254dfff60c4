package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/transport"
	"github.com/talenthub/talent-hub/pkg/logger"
)

// multipart form field holding the profile photo
const photoField = "photo"

type ServiceAPI interface {
	GetProfile(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, actor *auth.User, dto UpdateProfileDTO) (*User, error)
	UpdatePhoto(ctx context.Context, actor *auth.User, header *multipart.FileHeader) (*User, error)
	List(ctx context.Context, actor *auth.User) ([]User, error)
	AssignRole(ctx context.Context, actor *auth.User, userID int64, dto AssignRoleDTO) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	maxPhotoSize int64
}

func NewHandler(service ServiceAPI, maxPhotoSize int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:  transport.NewBaseHandler(lg),
		Service:      service,
		maxPhotoSize: maxPhotoSize,
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.UpdateProfile(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(h.maxPhotoSize); err != nil {
		h.HandleServiceError(w, internal.NewUploadError("failed to parse upload", internal.ErrCodeFileTooLarge))
		return
	}

	_, header, err := r.FormFile(photoField)
	if err != nil {
		h.HandleServiceError(w, internal.NewUploadError("photo file is missing", internal.ErrCodeFileMissing))
		return
	}

	profile, err := h.Service.UpdatePhoto(r.Context(), user, header)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.Service.List(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.AssignRole(r.Context(), user, userID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

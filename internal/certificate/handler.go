package certificate

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

// multipart form field holding the certificate file
const formField = "certificate"

type ServiceAPI interface {
	Upload(ctx context.Context, user *auth.User, header *multipart.FileHeader) (*Certificate, error)
	ListOwn(ctx context.Context, user *auth.User) ([]Certificate, error)
	ListPending(ctx context.Context, actor *auth.User) ([]*CertificateDetail, error)
	Verify(ctx context.Context, actor *auth.User, certID, courseID int64) (*CertificateDetail, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	maxSize int64
}

func NewHandler(service ServiceAPI, maxSize int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		maxSize:     maxSize,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// some slack over the cap so the service can reject with a proper error
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		h.HandleServiceError(w, internal.NewUploadError("failed to parse upload", internal.ErrCodeFileTooLarge))
		return
	}

	_, header, err := r.FormFile(formField)
	if err != nil {
		h.HandleServiceError(w, internal.NewUploadError("certificate file is missing", internal.ErrCodeFileMissing))
		return
	}

	cert, err := h.Service.Upload(r.Context(), user, header)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, cert)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	certs, err := h.Service.ListOwn(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, certs)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	certs, err := h.Service.ListPending(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, certs)
}

type verifyDTO struct {
	CourseID int64 `json:"course_id"`
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	certID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid certificate id")
		return
	}

	var dto verifyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.CourseID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "course_id is required")
		return
	}

	detail, err := h.Service.Verify(r.Context(), user, certID, dto.CourseID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}

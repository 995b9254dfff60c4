package request

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/transport"
	"github.com/talenthub/talent-hub/pkg/logger"
)

type ServiceAPI interface {
	ApplyToCourse(ctx context.Context, user *auth.User, courseID int64) (*CourseRequest, error)
	ApproveCourseRequest(ctx context.Context, actor *auth.User, requestID int64) (*CourseRequestDetail, error)
	RejectCourseRequest(ctx context.Context, actor *auth.User, requestID int64) (*CourseRequestDetail, error)
	ListCourseRequestsForApprover(actor *auth.User) ([]*CourseRequestDetail, error)

	RequestProjectRole(ctx context.Context, user *auth.User, projectID int64) (*ProjectRequest, error)
	ApproveProjectRequest(ctx context.Context, actor *auth.User, requestID int64) (*ProjectRequestDetail, error)
	RejectProjectRequest(ctx context.Context, actor *auth.User, requestID int64) (*ProjectRequestDetail, error)
	ListProjectRequestsForApprover(actor *auth.User) ([]*ProjectRequestDetail, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ApplyToCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courseID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.Service.ApplyToCourse(r.Context(), user, courseID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "application submitted"})
}

func (h *Handler) ListCourseRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListCourseRequestsForApprover(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

func (h *Handler) ApproveCourseRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveCourse(w, r, h.Service.ApproveCourseRequest, "application approved")
}

func (h *Handler) RejectCourseRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveCourse(w, r, h.Service.RejectCourseRequest, "application rejected")
}

func (h *Handler) resolveCourse(
	w http.ResponseWriter,
	r *http.Request,
	resolve func(context.Context, *auth.User, int64) (*CourseRequestDetail, error),
	message string,
) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if _, err := resolve(r.Context(), user, requestID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) RequestProjectRole(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req, err := h.Service.RequestProjectRole(r.Context(), user, projectID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListProjectRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListProjectRequestsForApprover(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

func (h *Handler) ApproveProjectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveProject(w, r, h.Service.ApproveProjectRequest, "application approved")
}

func (h *Handler) RejectProjectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveProject(w, r, h.Service.RejectProjectRequest, "application rejected")
}

func (h *Handler) resolveProject(
	w http.ResponseWriter,
	r *http.Request,
	resolve func(context.Context, *auth.User, int64) (*ProjectRequestDetail, error),
	message string,
) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if _, err := resolve(r.Context(), user, requestID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return 0, false
	}
	return id, true
}

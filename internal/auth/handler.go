package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/talenthub/talent-hub/internal/transport"
	"github.com/talenthub/talent-hub/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ResolveUser(tokenString string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

type userCtxKey struct{}

// UserFromContext returns the resolved user attached by AuthMiddleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// AuthMiddleware resolves the bearer token into a full user record once per
// request; handlers downstream read it from context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := h.Service.ResolveUser(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

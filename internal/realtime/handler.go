package realtime

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/transport"
)

// TokenResolver validates a handshake credential into a user identity.
type TokenResolver interface {
	ResolveUser(tokenString string) (*auth.User, error)
}

type Handler struct {
	*transport.BaseHandler
	hub      *Hub
	resolver TokenResolver
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, resolver TokenResolver, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		hub:         hub,
		resolver:    resolver,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve authenticates the handshake and joins the connection to the user's
// channel. The credential is rejected before the upgrade; there is no
// partially accepted connection.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := h.resolver.ResolveUser(token)
	if err != nil {
		h.Logger.Warn("websocket handshake rejected", "error", err)
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error("websocket upgrade failed", "error", err, "user_id", user.ID)
		return
	}

	h.hub.Register(user.ID, conn)

	go h.readLoop(user.ID, conn)
}

// readLoop drains inbound frames so pings and close frames are processed;
// the server never acts on client messages.
func (h *Handler) readLoop(userID int64, conn *websocket.Conn) {
	defer func() {
		h.hub.Unregister(userID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

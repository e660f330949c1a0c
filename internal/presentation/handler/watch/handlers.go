package watch

import (
	"net/http"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades connections into coordinator sessions. Joining a room is a
// separate joinRoom event after the upgrade, so this endpoint takes no
// parameters.
type Handler struct {
	core     *ws.Core
	upgrader websocket.Upgrader
	logger   logging.Logger
}

func NewHandler(core *ws.Core, allowedOrigins []string, logger logging.Logger) *Handler {
	allowAll := false
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = struct{}{}
	}

	return &Handler{
		core:   core,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := origins[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	session := domain.NewSession(uuid.NewString(), "")
	client := ws.NewClient(conn, session)

	h.core.Register() <- client

	go client.WritePump()
	go client.ReadPump(h.core)

	h.logger.Debug(logging.Rooms, logging.Membership, "session connected", map[logging.ExtraKey]any{
		logging.SessionID: session.ID,
	})
}

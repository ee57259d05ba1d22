package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"vales/internal/domain"
	"vales/internal/middleware"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from allowedOrigins; "*" allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	_, anyOrigin := allowed["*"]

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || anyOrigin {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// RegisterRoutes expects group to authenticate with middleware.JWTAuthWithQuery.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/ws", h.Connect)
}

func (h *Handler) Connect(c *gin.Context) {
	userID := middleware.UserID(c)
	approver := domain.UserRole(middleware.Role(c)).CanApprove()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already answered with an HTTP error
		h.hub.logger.Warnw("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	h.hub.logger.Debugw("websocket connected", "user_id", userID, "approver", approver)
	h.hub.serve(conn, userID, approver)
}

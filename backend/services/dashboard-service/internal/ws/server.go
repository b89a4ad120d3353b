package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server upgrades HTTP connections to live dashboard WebSockets.
type Server struct {
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is HTTP handler for /ws endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(id, conn, s.hub.opts, s.logger, func(id string) {
		s.hub.Remove(id)
		cancel()
	})
	if err := s.hub.Register(connection); err != nil {
		s.logger.Error("failed to register viewer", zap.String("viewer_id", id), zap.Error(err))
		cancel()
		_ = conn.Close()
		return
	}

	go connection.Start(ctx)
	s.logger.Info("viewer connected", zap.String("viewer_id", id), zap.String("remote", r.RemoteAddr))
}

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The 3D frontend is served from its own dev server.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 5 * time.Second

// streamWS pushes one JSON BargeState frame per engine tick over a
// WebSocket. Incoming messages are read and discarded; the socket is a
// one-way state feed and commands go through the HTTP endpoints.
func (s *Server) streamWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := uuid.NewString()
	log := s.log.With(zap.String("client", clientID))
	log.Info("websocket client connected", zap.String("remote", r.RemoteAddr))

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	// Drain reads so control frames are processed and closes noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			log.Info("websocket client disconnected")
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(st); err != nil {
				log.Info("websocket write failed, closing", zap.Error(err))
				return
			}
		}
	}
}

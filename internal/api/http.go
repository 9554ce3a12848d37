package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"barge-simulator/internal/sim"
)

// Server exposes the barge engine to the 3D frontend: JSON commands in,
// state snapshots out (polling, SSE, or WebSocket).
type Server struct {
	eng *sim.Engine
	r   chi.Router
	log *zap.Logger
}

func NewServer(eng *sim.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{eng: eng, r: chi.NewRouter(), log: log}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) routes() {
	s.r.Use(middleware.Recoverer)

	s.r.Get("/health", s.health)
	s.r.Get("/state", s.state)

	s.r.Post("/command/add-pontoon", s.addPontoon)
	s.r.Post("/command/add-item", s.addItem)
	s.r.Post("/command/move-item", s.moveItem)
	s.r.Post("/command/set-geometry", s.setGeometry)

	s.r.Get("/stream", s.streamSSE)
	s.r.Get("/ws", s.streamWS)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) addPontoon(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(sim.AddPontoonCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": sim.CmdAddPontoon})
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(sim.AddItemCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": sim.CmdAddItem})
}

func (s *Server) moveItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int     `json:"index"`
		X     float64 `json:"x"`
		Z     float64 `json:"z"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.MoveItemCommand{
		At:    time.Now(),
		Index: body.Index,
		X:     body.X,
		Z:     body.Z,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": sim.CmdMoveItem})
}

func (s *Server) setGeometry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID     int      `json:"id"`
		Width  *float64 `json:"width,omitempty"`
		Height *float64 `json:"height,omitempty"`
		Depth  *float64 `json:"depth,omitempty"`
		Weight *float64 `json:"weight,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.Width == nil && body.Height == nil && body.Depth == nil && body.Weight == nil {
		http.Error(w, "at least one of width, height, depth, weight required", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.SetGeometryCommand{
		At:     time.Now(),
		ID:     body.ID,
		Width:  body.Width,
		Height: body.Height,
		Depth:  body.Depth,
		Weight: body.Weight,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": sim.CmdSetGeometry, "id": body.ID})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(st)
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

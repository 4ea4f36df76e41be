package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"gridlords/internal/engine"
	"gridlords/internal/store"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	log      zerolog.Logger
}

func New(port int, registry *store.Registry, gen engine.MapGenerator, gameCfg engine.Config, turnTimeout time.Duration, log zerolog.Logger) *Server {
	return &Server{
		handlers: NewHandlers(registry, gen, gameCfg, turnTimeout, log),
		port:     port,
		log:      log,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/create", s.handlers.HandleCreateSession)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info().Str("addr", addr).Msg("gridlords server starting")
	return http.ListenAndServe(addr, mux)
}

package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"gridlords/internal/engine"
	"gridlords/internal/lobby"
	qr "gridlords/internal/qrcode"
	"gridlords/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	mu       sync.Mutex
	LobbyMgr *lobby.Manager
	Hubs     map[string]*Hub

	registry    *store.Registry
	gen         engine.MapGenerator
	gameCfg     engine.Config
	turnTimeout time.Duration
	log         zerolog.Logger
}

func NewHandlers(registry *store.Registry, gen engine.MapGenerator, gameCfg engine.Config, turnTimeout time.Duration, log zerolog.Logger) *Handlers {
	return &Handlers{
		LobbyMgr:    lobby.NewManager(),
		Hubs:        make(map[string]*Hub),
		registry:    registry,
		gen:         gen,
		gameCfg:     gameCfg,
		turnTimeout: turnTimeout,
		log:         log,
	}
}

// HandleCreateSession creates a new session lobby and returns its ID.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := h.LobbyMgr.Create()
	lob := h.LobbyMgr.Get(sessionID)
	hub := NewHub(sessionID, lob, h.registry, h.gen, h.gameCfg, h.turnTimeout, h.log)

	h.mu.Lock()
	h.Hubs[sessionID] = hub
	h.mu.Unlock()
	go hub.Run()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"session_id":%q}`, sessionID)
}

// HandleQR generates a QR code PNG for joining the session.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}
	joinURL := fmt.Sprintf("http://%s/join?session=%s", r.Host, sessionID)
	png, err := qr.Generate(joinURL)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "spectator" or "player"

	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	hub, ok := h.Hubs[sessionID]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade error")
		return
	}

	ct := ClientPlayer
	if clientType == "spectator" {
		ct = ClientSpectator
	}

	client := NewClient(hub, conn, playerID, ct, h.log)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(uuid.NewString()))
}

package server

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gridlords/internal/engine"
	"gridlords/internal/lobby"
	"gridlords/internal/protocol"
	"gridlords/internal/store"
)

// Hub manages WebSocket connections and game state for one session room.
// Its run loop is the per-session single-writer queue: every transport
// action enters through the incoming channel and is processed FIFO, so
// mutations for one session never interleave.
type Hub struct {
	mu        sync.Mutex
	sessionID string
	lobby     *lobby.Lobby
	registry  *store.Registry
	gen       engine.MapGenerator
	gameCfg   engine.Config
	session   *engine.Session

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	timeouts   chan turnDeadline
	quit       chan struct{}

	turnTimeout time.Duration
	turnTimer   *time.Timer
	log         zerolog.Logger
}

// turnDeadline identifies the exact handover a timer was armed for, so a
// stale timer never ends the wrong turn.
type turnDeadline struct {
	PlayerID string
	Turn     int
}

func NewHub(sessionID string, lob *lobby.Lobby, registry *store.Registry, gen engine.MapGenerator, gameCfg engine.Config, turnTimeout time.Duration, log zerolog.Logger) *Hub {
	return &Hub{
		sessionID:   sessionID,
		lobby:       lob,
		registry:    registry,
		gen:         gen,
		gameCfg:     gameCfg,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		incoming:    make(chan IncomingMessage, 256),
		timeouts:    make(chan turnDeadline, 4),
		quit:        make(chan struct{}),
		turnTimeout: turnTimeout,
		log:         log.With().Str("session", sessionID).Logger(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.session != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			// Disconnection detaches the subscription only; game state
			// is never mutated here.
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case td := <-h.timeouts:
			h.handleTurnTimeout(td)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgLeave:
		h.handleLeave(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil {
		h.sendError(msg.Client, "", "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, "", err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "", "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

// handleStartGame moves the room from Forming to Drafting: the session is
// created, registered, and the draft opened.
func (h *Hub) handleStartGame(msg IncomingMessage) {
	if h.session != nil {
		h.sendError(msg.Client, "", "session already started")
		return
	}
	if !h.lobby.CanStart() {
		h.sendError(msg.Client, "", "not all players ready")
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, "", err.Error())
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	players := make([]*engine.Player, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		players[i] = engine.NewPlayer(lp.ID, lp.Name)
	}

	h.session = engine.NewSession(players, h.gameCfg, engine.DefaultCatalog(), h.gen)
	h.registry.Put(h.session)

	events, err := h.session.StartDraft()
	if err != nil {
		h.sendError(msg.Client, "", err.Error())
		return
	}
	h.log.Info().Int("players", len(players)).Msg("draft started")
	h.broadcastEvents(events)
	h.broadcastState()
}

func (h *Hub) handleLeave(msg IncomingMessage) {
	if h.session == nil {
		h.lobby.Leave(msg.Client.PlayerID)
		h.sendLobbyUpdate()
		return
	}
	events, err := h.session.MarkInactive(msg.Client.PlayerID)
	if err != nil {
		h.broadcastApplied(events)
		h.replyError(msg.Client, err)
		return
	}
	h.broadcastEvents(events)
	h.broadcastState()
	h.armTurnTimer(events)
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.session == nil {
		h.sendError(msg.Client, "", "session not started")
		return
	}

	action, err := parseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, "", err.Error())
		return
	}

	events, err := h.session.Apply(msg.Client.PlayerID, action)
	if err != nil {
		h.broadcastApplied(events)
		h.replyError(msg.Client, err)
		return
	}

	h.broadcastEvents(events)
	h.broadcastState()
	h.armTurnTimer(events)
}

// broadcastApplied flushes events from an action that failed after
// partially applying, such as a confirm whose activation errored: the
// confirm itself stands and every client must learn about it.
func (h *Hub) broadcastApplied(events []engine.Event) {
	if len(events) == 0 {
		return
	}
	h.broadcastEvents(events)
	h.broadcastState()
}

// parseAction decodes an action envelope; the message type doubles as
// the engine action type.
func parseAction(env protocol.Envelope) (engine.Action, error) {
	action := engine.Action{Type: engine.ActionType(env.Type)}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &action); err != nil {
			return engine.Action{}, errors.New("invalid action payload")
		}
		action.Type = engine.ActionType(env.Type)
	}
	return action, nil
}

// replyError maps the engine error taxonomy onto the wire: validation
// errors return their code, consistency errors force a full-state resync
// for the stale client.
func (h *Hub) replyError(client *Client, err error) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		h.sendError(client, verr.Code, verr.Error())
		return
	}
	var cerr *engine.ConsistencyError
	if errors.As(err, &cerr) && h.session != nil {
		h.log.Warn().Err(err).Str("player", client.PlayerID).Msg("stale client view, resyncing")
		env := protocol.MustEnvelope(protocol.MsgResync, h.session.ViewFor(client.PlayerID))
		client.SendEnvelope(env)
		return
	}
	h.sendError(client, "", err.Error())
}

// armTurnTimer restarts the turn deadline when a handover happened.
func (h *Hub) armTurnTimer(events []engine.Event) {
	if h.turnTimeout <= 0 {
		return
	}
	for _, ev := range events {
		if ev.Type != engine.EventTurnStarted {
			continue
		}
		turn, _ := ev.Data["turn"].(int)
		td := turnDeadline{PlayerID: ev.Player, Turn: turn}
		if h.turnTimer != nil {
			h.turnTimer.Stop()
		}
		h.turnTimer = time.AfterFunc(h.turnTimeout, func() {
			select {
			case h.timeouts <- td:
			default:
			}
		})
	}
}

// handleTurnTimeout forces EndTurn for a stalled player. It runs inside
// the hub loop, so it takes the same serialized path as player actions.
func (h *Hub) handleTurnTimeout(td turnDeadline) {
	if h.session == nil {
		return
	}
	view := h.session.PublicView()
	if view.Status != engine.StatusActive.String() ||
		view.CurrentPlayerID != td.PlayerID || view.TurnNumber != td.Turn {
		return
	}
	h.log.Info().Str("player", td.PlayerID).Int("turn", td.Turn).Msg("turn timeout, forcing end turn")
	events, err := h.session.EndTurn(td.PlayerID)
	if err != nil {
		h.log.Error().Err(err).Msg("forced end turn failed")
		return
	}
	h.broadcastEvents(events)
	h.broadcastState()
	h.armTurnTimer(events)
}

var _ engine.Broadcaster = (*Hub)(nil)

// Emit satisfies engine.Broadcaster for one event.
func (h *Hub) Emit(_ string, ev engine.Event) {
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.Emit(h.sessionID, ev)
	}
}

// broadcastState sends each client its scoped snapshot. Snapshots are
// taken strictly after the mutation that triggered the broadcast.
func (h *Hub) broadcastState() {
	if h.session == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.session == nil {
		return
	}
	if client.Type == ClientSpectator {
		env := protocol.MustEnvelope(protocol.MsgGameState, h.session.PublicView())
		client.SendEnvelope(env)
	} else {
		env := protocol.MustEnvelope(protocol.MsgPlayerState, h.session.ViewFor(client.PlayerID))
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		SessionID: h.sessionID,
		Players:   lps,
		Started:   h.lobby.IsStarted(),
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error().Err(err).Msg("broadcast marshal error")
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn().Str("player", client.PlayerID).Msg("client buffer full")
		}
	}
}

func (h *Hub) sendError(client *Client, code, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Code: code, Message: message})
	client.SendEnvelope(env)
}

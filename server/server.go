package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/malaleche/gameserver/broadcast"
	"github.com/malaleche/gameserver/config"
	"github.com/malaleche/gameserver/game"
	"github.com/malaleche/gameserver/logger"
	"github.com/malaleche/gameserver/monitor"
	"github.com/malaleche/gameserver/network"
	"github.com/malaleche/gameserver/persistence"
	"github.com/malaleche/gameserver/room"
	gameserver_rpc "github.com/malaleche/gameserver/rpc"
	"github.com/malaleche/gameserver/services"
	"github.com/malaleche/gameserver/session"
	"github.com/malaleche/gameserver/timer"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	roomService    *services.RoomService
	broadcaster    broadcast.Broadcaster
	timers         *timer.Manager
	rpcServer      *gameserver_rpc.Server
	monitor        *monitor.Monitor
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store, notifier *persistence.Notifier) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		sessionManager: session.NewManager(),
		timers:         timer.NewManager(),
		monitor:        monitor.NewMonitor("malaleche"),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewSessionBroadcaster(s.sessionManager)
	s.roomManager = room.NewManager(store, s.broadcaster, s.timers, cfg.Game.SettleDelay)
	s.roomService = services.NewRoomService(store, s.roomManager, notifier)

	rpcServer, err := gameserver_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	historyService := gameserver_rpc.NewHistoryService(s.roomService)
	rpc.Register(historyService)

	s.monitor.StartServer(cfg.Server.MetricsAddress)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.monitor.IncCommandsReceived()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypeCloseRoom:
		s.handleCloseRoom(sess)
	case network.MsgTypeStartRound:
		s.handleStartRound(sess)
	case network.MsgTypePlayCard:
		s.handlePlayCard(sess, packet)
	case network.MsgTypeResolveRound:
		s.handleResolveRound(sess, packet)
	case network.MsgTypeHistory:
		s.handleHistory(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.monitor.ObserveCommandLatency(time.Since(start))
	s.monitor.SetActiveRooms(s.roomManager.Count())
}

// errorReply is the wire shape of a failed command.
type errorReply struct {
	Command uint16    `json:"command"`
	Code    game.Kind `json:"code"`
	Message string    `json:"message"`
}

func (s *GameServer) sendError(sess *session.Session, command uint16, err error) {
	reply := errorReply{
		Command: command,
		Code:    game.KindOf(err),
		Message: err.Error(),
	}
	if err := sess.SendJSON(network.MsgTypeError, reply); err != nil {
		logger.Log.Warnf("Session %s: error reply undelivered: %v", sess.GetID(), err)
	}
}

type createRoomRequest struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

type createRoomReply struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req createRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, packet.MsgID, game.ErrValidation)
		return
	}

	roomID, playerID, err := s.roomService.CreateRoom(req.Name, game.Mode(req.Mode))
	if err != nil {
		s.sendError(sess, packet.MsgID, err)
		return
	}

	sess.Bind(roomID, playerID)
	logger.Log.Infof("Session %s created room %s as player %s", sess.GetID(), roomID, playerID)

	if err := sess.SendJSON(network.MsgTypeCreateRoom, createRoomReply{RoomID: roomID, PlayerID: playerID}); err != nil {
		logger.Log.Warnf("Session %s: create reply undelivered: %v", sess.GetID(), err)
	}
	s.sendState(sess, roomID)
}

type joinRoomRequest struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type joinRoomReply struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req joinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, packet.MsgID, game.ErrValidation)
		return
	}

	playerID, err := s.roomService.JoinRoom(req.RoomID, req.Name)
	if err != nil {
		s.sendError(sess, packet.MsgID, err)
		return
	}

	sess.Bind(req.RoomID, playerID)
	logger.Log.Infof("Session %s joined room %s as player %s", sess.GetID(), req.RoomID, playerID)

	if err := sess.SendJSON(network.MsgTypeJoinRoom, joinRoomReply{RoomID: req.RoomID, PlayerID: playerID}); err != nil {
		logger.Log.Warnf("Session %s: join reply undelivered: %v", sess.GetID(), err)
	}
	s.sendState(sess, req.RoomID)
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	roomID, _ := sess.Identity()
	if roomID == "" {
		return
	}
	sess.Bind("", "")
}

func (s *GameServer) handleCloseRoom(sess *session.Session) {
	roomID, _ := sess.Identity()
	if roomID == "" {
		s.sendError(sess, network.MsgTypeCloseRoom, game.ErrRoomNotFound)
		return
	}
	if err := s.roomService.CloseRoom(roomID); err != nil {
		s.sendError(sess, network.MsgTypeCloseRoom, err)
	}
}

func (s *GameServer) handleStartRound(sess *session.Session) {
	roomID, playerID := sess.Identity()
	if err := s.roomService.StartRound(roomID, playerID); err != nil {
		s.sendError(sess, network.MsgTypeStartRound, err)
	}
}

type playCardRequest struct {
	CardID      string `json:"card_id"`
	RoundNumber int    `json:"round_number"`
}

func (s *GameServer) handlePlayCard(sess *session.Session, packet *network.Packet) {
	var req playCardRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, packet.MsgID, game.ErrValidation)
		return
	}

	roomID, playerID := sess.Identity()
	if err := s.roomService.SubmitCard(roomID, playerID, req.CardID, req.RoundNumber); err != nil {
		s.sendError(sess, packet.MsgID, err)
	}
}

type resolveRoundRequest struct {
	WinnerID  string `json:"winner_id"`
	LoserID   string `json:"loser_id"`
	PotAmount int    `json:"pot_amount"`
}

func (s *GameServer) handleResolveRound(sess *session.Session, packet *network.Packet) {
	var req resolveRoundRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, packet.MsgID, game.ErrValidation)
		return
	}

	roomID, playerID := sess.Identity()
	if err := s.roomService.ResolveRound(roomID, playerID, req.WinnerID, req.LoserID, req.PotAmount); err != nil {
		s.sendError(sess, packet.MsgID, err)
		return
	}
	s.monitor.IncRoundsResolved()
}

func (s *GameServer) handleHistory(sess *session.Session) {
	roomID, _ := sess.Identity()
	out, err := s.roomService.GetHistoryAndStats(roomID)
	if err != nil {
		s.sendError(sess, network.MsgTypeHistory, err)
		return
	}
	if err := sess.SendJSON(network.MsgTypeHistory, out); err != nil {
		logger.Log.Warnf("Session %s: history undelivered: %v", sess.GetID(), err)
	}
}

// sendState pushes the current sanitized state to one session, used right
// after create and join so the client does not wait for the next broadcast.
func (s *GameServer) sendState(sess *session.Session, roomID string) {
	r, exists := s.roomManager.GetRoom(roomID)
	if !exists {
		return
	}
	snap, err := r.Snapshot()
	if err != nil {
		return
	}
	if err := sess.SendJSON(network.MsgTypeRoomState, room.NewStateView(snap)); err != nil {
		logger.Log.Warnf("Session %s: state undelivered: %v", sess.GetID(), err)
	}
}

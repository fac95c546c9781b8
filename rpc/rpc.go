package rpc

import (
	"net"
	"net/rpc"

	"github.com/malaleche/gameserver/logger"
	"github.com/malaleche/gameserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// HistoryService exposes room history and stats to out-of-band tooling.
type HistoryService struct {
	roomService *services.RoomService
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(rs *services.RoomService) *HistoryService {
	return &HistoryService{roomService: rs}
}

type HistoryArgs struct {
	RoomID string
}

type HistoryReply struct {
	Data *services.HistoryAndStats
}

// GetHistoryAndStats follows the net/rpc signature: exported method,
// exported argument types, pointer reply, error return.
func (hs *HistoryService) GetHistoryAndStats(args *HistoryArgs, reply *HistoryReply) error {
	data, err := hs.roomService.GetHistoryAndStats(args.RoomID)
	if err != nil {
		return err
	}
	reply.Data = data
	return nil
}

// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/malaleche/gameserver/session"
)

var (
	ErrNoSessions = errors.New("no sessions for target")
)

// Broadcaster fans server-to-client messages out. Room broadcasts carry the
// sanitized shared state; per-player sends carry private hands.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	SendToPlayer(playerID string, msgID uint16, data []byte) error
}

// SessionBroadcaster delivers over live websocket sessions.
type SessionBroadcaster struct {
	sessionManager *session.Manager
}

func NewSessionBroadcaster(sessionManager *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{
		sessionManager: sessionManager,
	}
}

// BroadcastToRoom sends to every session bound to the room. Send failures
// on individual sessions are skipped; the connection reader tears the
// session down on its own.
func (b *SessionBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	sessions := b.sessionManager.GetByRoomID(roomID)
	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

// SendToPlayer sends to every session a player has open.
func (b *SessionBroadcaster) SendToPlayer(playerID string, msgID uint16, data []byte) error {
	sessions := b.sessionManager.GetByPlayerID(playerID)
	if len(sessions) == 0 {
		return ErrNoSessions
	}
	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

// persistence/interface.go
package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

// Store is the database surface the rest of the server talks to.
type Store interface {
	CreateRoom(room *GameRoom) error
	GetRoom(code string) (*GameRoom, error)
	SaveRoomState(code, status string, pot, currentRound int, dealerID string) error

	AddPlayer(player *RoomPlayer) error
	ListPlayers(code string) ([]RoomPlayer, error)
	SavePlayerHand(playerID string, hand []string) error

	RecordPlay(rec *PlayedCardRecord) error
	CountPlays(code string, round int) (int, error)
	SettleRound(code, winnerID, loserID string, potAwarded int) error

	AppendHistory(rec *RoundRecord) error
	History(code string, limit int) ([]RoundRecord, error)
	Stats(code string) ([]PlayerStats, error)

	Transaction(fn func(tx *gorm.DB) error) error
	Ping() error
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
	ErrDuplicatePlay  = fmt.Errorf("player already has a recorded play this round")
)

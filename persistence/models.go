package persistence

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GameRoom is the persisted room row. It carries only the shared state;
// decks and hands never leave the server and players' hands are stored on
// their own rows.
type GameRoom struct {
	gorm.Model
	Code         string `gorm:"uniqueIndex;not null"`
	Status       string `gorm:"not null"`
	Mode         string `gorm:"not null"`
	Pot          int    `gorm:"default:0"`
	CurrentRound int    `gorm:"default:0"`
	DealerID     string `gorm:"index"`
}

// RoomPlayer is one seat in a room. Hand holds card ids only; card text is
// resolved from the mode's deck.
type RoomPlayer struct {
	gorm.Model
	PlayerID string         `gorm:"uniqueIndex;not null"`
	RoomCode string         `gorm:"index;not null"`
	Name     string         `gorm:"not null"`
	Lucas    int            `gorm:"default:10"`
	IsDealer bool           `gorm:"default:false"`
	Hand     pq.StringArray `gorm:"type:text[]"`
}

// PlayedCardRecord is the out-of-band played-card marker. The unique index
// is what turns a double play into a Conflict.
type PlayedCardRecord struct {
	gorm.Model
	RoomCode    string `gorm:"not null;uniqueIndex:idx_one_play_per_round,priority:1"`
	RoundNumber int    `gorm:"not null;uniqueIndex:idx_one_play_per_round,priority:2"`
	PlayerID    string `gorm:"not null;uniqueIndex:idx_one_play_per_round,priority:3"`
	CardID      string `gorm:"not null"`
	Revealed    bool   `gorm:"default:false"`
}

// RoundRecord is one settled round in the room history.
type RoundRecord struct {
	gorm.Model
	RoomCode    string         `gorm:"index;not null"`
	RoundNumber int            `gorm:"not null"`
	WhiteCards  pq.StringArray `gorm:"type:text[]"`
	WinnerID    string
	LoserID     string
	PotAwarded  int
}

// PlayerStats is the aggregated per-player line for the stats view.
type PlayerStats struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Earnings int    `json:"earnings"`
}

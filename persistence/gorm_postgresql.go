// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormPostgreSQL implements Store on top of GORM.
type GormPostgreSQL struct {
	db *gorm.DB
}

// DSN builds the conninfo string shared by the store and the notifier.
func DSN(host string, port int, user, password, dbname string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// NewGormPostgreSQL opens the database, migrates the schema and installs
// the change-notification triggers.
func NewGormPostgreSQL(dsn string) (*GormPostgreSQL, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(db); err != nil {
		return nil, err
	}
	if err := installNotifyTriggers(db); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&GameRoom{},
		&RoomPlayer{},
		&PlayedCardRecord{},
		&RoundRecord{},
	)
}

// CreateRoom inserts a new room row.
func (p *GormPostgreSQL) CreateRoom(room *GameRoom) error {
	return p.db.Create(room).Error
}

// GetRoom loads a room by its code.
func (p *GormPostgreSQL) GetRoom(code string) (*GameRoom, error) {
	var room GameRoom
	if err := p.db.Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &room, nil
}

// SaveRoomState updates the shared room columns after a transition.
func (p *GormPostgreSQL) SaveRoomState(code, status string, pot, currentRound int, dealerID string) error {
	result := p.db.Model(&GameRoom{}).Where("code = ?", code).Updates(map[string]interface{}{
		"status":        status,
		"pot":           pot,
		"current_round": currentRound,
		"dealer_id":     dealerID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// AddPlayer seats a player in a room.
func (p *GormPostgreSQL) AddPlayer(player *RoomPlayer) error {
	return p.db.Create(player).Error
}

// ListPlayers returns the seats of a room in join order. Join order is what
// the dealer rotation runs over.
func (p *GormPostgreSQL) ListPlayers(code string) ([]RoomPlayer, error) {
	var players []RoomPlayer
	err := p.db.Where("room_code = ?", code).Order("id asc").Find(&players).Error
	return players, err
}

// SavePlayerHand replaces a player's stored hand (card ids).
func (p *GormPostgreSQL) SavePlayerHand(playerID string, hand []string) error {
	return p.db.Model(&RoomPlayer{}).Where("player_id = ?", playerID).
		Update("hand", pq.StringArray(hand)).Error
}

// RecordPlay inserts the played-card marker. The unique index on
// (room, round, player) converts a second play into ErrDuplicatePlay.
func (p *GormPostgreSQL) RecordPlay(rec *PlayedCardRecord) error {
	if err := p.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePlay
		}
		return err
	}
	return nil
}

// CountPlays returns how many markers exist for a round.
func (p *GormPostgreSQL) CountPlays(code string, round int) (int, error) {
	var count int64
	err := p.db.Model(&PlayedCardRecord{}).
		Where("room_code = ? AND round_number = ?", code, round).
		Count(&count).Error
	return int(count), err
}

// SettleRound applies the currency settlement in one transaction: the
// winner gains the awarded pot, the loser drops one luca floored at zero.
func (p *GormPostgreSQL) SettleRound(code, winnerID, loserID string, potAwarded int) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RoomPlayer{}).
			Where("room_code = ? AND player_id = ?", code, winnerID).
			Update("lucas", gorm.Expr("lucas + ?", potAwarded))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		result = tx.Model(&RoomPlayer{}).
			Where("room_code = ? AND player_id = ?", code, loserID).
			Update("lucas", gorm.Expr("GREATEST(lucas - 1, 0)"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// AppendHistory stores one settled round.
func (p *GormPostgreSQL) AppendHistory(rec *RoundRecord) error {
	return p.db.Create(rec).Error
}

// History returns the most recent rounds, newest first.
func (p *GormPostgreSQL) History(code string, limit int) ([]RoundRecord, error) {
	var records []RoundRecord
	err := p.db.Where("room_code = ?", code).
		Order("round_number desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Stats aggregates wins, losses and pot earnings per player, sorted by
// earnings descending.
func (p *GormPostgreSQL) Stats(code string) ([]PlayerStats, error) {
	var stats []PlayerStats
	err := p.db.Raw(`
        SELECT
            rp.player_id,
            rp.name,
            COALESCE(w.wins, 0) AS wins,
            COALESCE(l.losses, 0) AS losses,
            COALESCE(w.earnings, 0) AS earnings
        FROM room_players rp
        LEFT JOIN (
            SELECT winner_id, COUNT(*) AS wins, SUM(pot_awarded) AS earnings
            FROM round_records WHERE room_code = ? GROUP BY winner_id
        ) w ON w.winner_id = rp.player_id
        LEFT JOIN (
            SELECT loser_id, COUNT(*) AS losses
            FROM round_records WHERE room_code = ? GROUP BY loser_id
        ) l ON l.loser_id = rp.player_id
        WHERE rp.room_code = ?
        ORDER BY earnings DESC`,
		code, code, code,
	).Scan(&stats).Error
	return stats, err
}

// Transaction runs fn inside a database transaction.
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}

// Ping checks the connection; callers map a failure to ServiceUnavailable.
func (p *GormPostgreSQL) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection pool.
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

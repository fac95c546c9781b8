// services/room_service.go
package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/malaleche/gameserver/game"
	"github.com/malaleche/gameserver/logger"
	"github.com/malaleche/gameserver/persistence"
	"github.com/malaleche/gameserver/room"
)

const historyLimit = 10

// RoomService is the command surface: it validates input, produces player
// identities, and routes commands into the per-room serialized engine.
type RoomService struct {
	store    persistence.Store
	rooms    *room.Manager
	notifier *persistence.Notifier
	cache    *playerCache

	watchMutex sync.Mutex
	watchStops map[string]func()
}

// NewRoomService wires the service. notifier may be nil when the change
// feed is not configured; the cache then just lives until room close.
func NewRoomService(store persistence.Store, rooms *room.Manager, notifier *persistence.Notifier) *RoomService {
	return &RoomService{
		store:      store,
		rooms:      rooms,
		notifier:   notifier,
		cache:      newPlayerCache(),
		watchStops: make(map[string]func()),
	}
}

// CreateRoom opens a room and seats its creator, who judges round one.
func (s *RoomService) CreateRoom(playerName string, mode game.Mode) (roomID, dealerPlayerID string, err error) {
	if playerName == "" {
		return "", "", fmt.Errorf("player name required: %w", game.ErrValidation)
	}
	if mode == "" {
		return "", "", fmt.Errorf("game mode required: %w", game.ErrValidation)
	}

	r, err := s.rooms.CreateRoom(mode)
	if err != nil {
		return "", "", err
	}

	playerID := uuid.New().String()
	if err := r.Join(playerID, playerName); err != nil {
		s.rooms.RemoveRoom(r.Code)
		return "", "", err
	}

	s.watchRoom(r.Code)
	return r.Code, playerID, nil
}

// JoinRoom seats a player in an existing room.
func (s *RoomService) JoinRoom(roomID, playerName string) (playerID string, err error) {
	if playerName == "" {
		return "", fmt.Errorf("player name required: %w", game.ErrValidation)
	}
	r, exists := s.rooms.GetRoom(roomID)
	if !exists {
		return "", fmt.Errorf("room %s: %w", roomID, game.ErrRoomNotFound)
	}

	playerID = uuid.New().String()
	if err := r.Join(playerID, playerName); err != nil {
		return "", err
	}
	return playerID, nil
}

// StartRound begins the next round on behalf of a seated player.
func (s *RoomService) StartRound(roomID, playerID string) error {
	r, snap, err := s.roomAndState(roomID)
	if err != nil {
		return err
	}
	if snap.PlayerByID(playerID) == nil {
		return fmt.Errorf("player %s: %w", playerID, game.ErrPlayerNotFound)
	}
	return r.StartRound()
}

// SubmitCard records a play. The round number guards stale clients: a play
// for a finished round resyncs instead of landing on the current one.
func (s *RoomService) SubmitCard(roomID, playerID, cardID string, roundNumber int) error {
	if playerID == "" || cardID == "" {
		return fmt.Errorf("player and card required: %w", game.ErrValidation)
	}
	r, snap, err := s.roomAndState(roomID)
	if err != nil {
		return err
	}
	if roundNumber != snap.CurrentRound {
		return fmt.Errorf("round %d is not current: %w", roundNumber, game.ErrWrongPhase)
	}
	return r.PlayCard(playerID, cardID)
}

// ResolveRound settles the round. The pot is computed server side; a
// client-supplied amount is advisory only.
func (s *RoomService) ResolveRound(roomID, dealerID, winnerID, loserID string, potAmount int) error {
	if dealerID == "" || winnerID == "" || loserID == "" {
		return fmt.Errorf("dealer, winner and loser required: %w", game.ErrValidation)
	}
	r, snap, err := s.roomAndState(roomID)
	if err != nil {
		return err
	}
	if expected := snap.Pot + len(snap.Players); potAmount != 0 && potAmount != expected {
		logger.Log.Warnf("room %s: client pot %d disagrees with server %d", roomID, potAmount, expected)
	}
	return r.Resolve(dealerID, winnerID, loserID)
}

// CloseRoom ends the game and releases the room.
func (s *RoomService) CloseRoom(roomID string) error {
	if _, exists := s.rooms.GetRoom(roomID); !exists {
		return fmt.Errorf("room %s: %w", roomID, game.ErrRoomNotFound)
	}
	s.rooms.RemoveRoom(roomID)
	s.unwatchRoom(roomID)
	s.cache.invalidate(roomID)
	return nil
}

// HistoryEntry is one settled round with names resolved for display.
type HistoryEntry struct {
	RoundNumber int      `json:"round_number"`
	WhiteCards  []string `json:"white_cards"`
	WinnerName  string   `json:"winner_name"`
	LoserName   string   `json:"loser_name"`
	PotAwarded  int      `json:"pot_awarded"`
}

// HistoryAndStats bundles the recent rounds with the room leaderboard.
type HistoryAndStats struct {
	History []HistoryEntry            `json:"history"`
	Stats   []persistence.PlayerStats `json:"stats"`
}

// GetHistoryAndStats returns the last rounds (newest first) and per-player
// totals sorted by earnings.
func (s *RoomService) GetHistoryAndStats(roomID string) (*HistoryAndStats, error) {
	if _, err := s.store.GetRoom(roomID); err != nil {
		if err == persistence.ErrRecordNotFound {
			return nil, fmt.Errorf("room %s: %w", roomID, game.ErrRoomNotFound)
		}
		return nil, fmt.Errorf("load room: %v: %w", err, game.ErrUnavailable)
	}

	records, err := s.store.History(roomID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %v: %w", err, game.ErrUnavailable)
	}
	stats, err := s.store.Stats(roomID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %v: %w", err, game.ErrUnavailable)
	}

	players, err := s.Players(roomID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.PlayerID] = p.Name
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		// the player left the room; history outlives the seat
		return "Jugador Fugado"
	}

	out := &HistoryAndStats{Stats: stats}
	for _, rec := range records {
		out.History = append(out.History, HistoryEntry{
			RoundNumber: rec.RoundNumber,
			WhiteCards:  rec.WhiteCards,
			WinnerName:  nameOf(rec.WinnerID),
			LoserName:   nameOf(rec.LoserID),
			PotAwarded:  rec.PotAwarded,
		})
	}
	return out, nil
}

// Players returns the room's player rows through the cache.
func (s *RoomService) Players(roomID string) ([]persistence.RoomPlayer, error) {
	if players, ok := s.cache.get(roomID); ok {
		return players, nil
	}
	players, err := s.store.ListPlayers(roomID)
	if err != nil {
		return nil, fmt.Errorf("list players: %v: %w", err, game.ErrUnavailable)
	}
	s.cache.put(roomID, players)
	return players, nil
}

// DeriveState rebuilds the public room state from the persisted rows: the
// latest room record merged with the latest player records. Hands are not
// part of it, so a client's locally held hand survives the merge.
func (s *RoomService) DeriveState(roomID string) (*room.StateView, error) {
	roomRow, err := s.store.GetRoom(roomID)
	if err != nil {
		if err == persistence.ErrRecordNotFound {
			return nil, fmt.Errorf("room %s: %w", roomID, game.ErrRoomNotFound)
		}
		return nil, fmt.Errorf("load room: %v: %w", err, game.ErrUnavailable)
	}
	players, err := s.Players(roomID)
	if err != nil {
		return nil, err
	}

	view := &room.StateView{
		RoomID:       roomRow.Code,
		Status:       game.Status(roomRow.Status),
		Mode:         game.Mode(roomRow.Mode),
		Pot:          roomRow.Pot,
		CurrentRound: roomRow.CurrentRound,
		DealerID:     roomRow.DealerID,
	}
	if view.Status == game.StatusPlaying || view.Status == game.StatusRevealing {
		if n, err := s.store.CountPlays(roomID, roomRow.CurrentRound); err == nil {
			view.PlaysSubmitted = n
		}
	}
	for _, p := range players {
		view.Players = append(view.Players, room.PlayerView{
			ID:       p.PlayerID,
			Name:     p.Name,
			Lucas:    p.Lucas,
			IsDealer: p.IsDealer,
			HandSize: len(p.Hand),
		})
	}
	return view, nil
}

// watchRoom invalidates the player cache whenever the change feed reports
// a row-level change for the room.
func (s *RoomService) watchRoom(roomID string) {
	if s.notifier == nil {
		return
	}
	events, cancel := s.notifier.Subscribe(roomID)

	s.watchMutex.Lock()
	s.watchStops[roomID] = cancel
	s.watchMutex.Unlock()

	go func() {
		for ev := range events {
			if ev.Table == "room_players" {
				s.cache.invalidate(roomID)
			}
		}
	}()
}

func (s *RoomService) unwatchRoom(roomID string) {
	s.watchMutex.Lock()
	defer s.watchMutex.Unlock()
	if cancel, ok := s.watchStops[roomID]; ok {
		cancel()
		delete(s.watchStops, roomID)
	}
}

func (s *RoomService) roomAndState(roomID string) (*room.Room, game.Snapshot, error) {
	r, exists := s.rooms.GetRoom(roomID)
	if !exists {
		return nil, game.Snapshot{}, fmt.Errorf("room %s: %w", roomID, game.ErrRoomNotFound)
	}
	snap, err := r.Snapshot()
	if err != nil {
		return nil, game.Snapshot{}, err
	}
	return r, snap, nil
}

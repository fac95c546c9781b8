// room/room.go
package room

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/malaleche/gameserver/game"
	"github.com/malaleche/gameserver/logger"
	"github.com/malaleche/gameserver/network"
	"github.com/malaleche/gameserver/persistence"
	"github.com/malaleche/gameserver/timer"
)

// Room holds the authoritative snapshot of one game. Every command runs
// under the room mutex, so commands from concurrent sessions are applied
// one at a time: validate, transition, persist, broadcast.
type Room struct {
	Code        string
	CreatedAt   time.Time
	engine      *game.Engine
	snap        game.Snapshot
	store       persistence.Store
	broadcaster Broadcaster
	timers      *timer.Manager
	settleDelay time.Duration
	settleTimer int64
	closed      bool
	mutex       sync.Mutex
}

// NewRoom builds a lobby-state room. The decks are shuffled once here.
func NewRoom(code string, mode game.Mode, store persistence.Store, broadcaster Broadcaster,
	timers *timer.Manager, settleDelay time.Duration) *Room {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Room{
		Code:        code,
		CreatedAt:   time.Now(),
		engine:      game.NewEngine(),
		snap:        game.NewSnapshot(code, mode, rng),
		store:       store,
		broadcaster: broadcaster,
		timers:      timers,
		settleDelay: settleDelay,
	}
}

// Snapshot returns a copy of the current state.
func (r *Room) Snapshot() (game.Snapshot, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return game.Snapshot{}, game.ErrRoomNotFound
	}
	return r.snap.Clone(), nil
}

// Join seats a player and announces the new roster.
func (r *Room) Join(playerID, name string) error {
	return r.apply(func(s game.Snapshot) (game.Snapshot, error) {
		next, err := r.engine.AddPlayer(s, playerID, name)
		if err != nil {
			return s, err
		}
		p := next.PlayerByID(playerID)
		if err := r.store.AddPlayer(&persistence.RoomPlayer{
			PlayerID: playerID,
			RoomCode: r.Code,
			Name:     name,
			Lucas:    p.Lucas,
			IsDealer: p.IsDealer,
			Hand:     nil,
		}); err != nil {
			return s, fmt.Errorf("seat player: %v: %w", err, game.ErrUnavailable)
		}
		return next, nil
	})
}

// StartRound deals the next round. Called by a seated player from the
// lobby, and by the settle timer after every resolution.
func (r *Room) StartRound() error {
	err := r.apply(func(s game.Snapshot) (game.Snapshot, error) {
		next, err := r.engine.StartRound(s)
		if err != nil {
			return s, err
		}
		for i := range next.Players {
			p := &next.Players[i]
			if err := r.store.SavePlayerHand(p.ID, cardIDs(p.Hand)); err != nil {
				return s, fmt.Errorf("save hand: %v: %w", err, game.ErrUnavailable)
			}
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	r.sendHands()
	return nil
}

// PlayCard applies a non-dealer's play. The persisted marker row backs the
// duplicate-play conflict across restarts.
func (r *Room) PlayCard(playerID, cardID string) error {
	return r.apply(func(s game.Snapshot) (game.Snapshot, error) {
		next, err := r.engine.PlayCard(s, playerID, cardID)
		if err != nil {
			return s, err
		}
		err = r.store.RecordPlay(&persistence.PlayedCardRecord{
			RoomCode:    r.Code,
			RoundNumber: next.CurrentRound,
			PlayerID:    playerID,
			CardID:      cardID,
		})
		if err == persistence.ErrDuplicatePlay {
			return s, game.ErrAlreadyPlayed
		}
		if err != nil {
			return s, fmt.Errorf("record play: %v: %w", err, game.ErrUnavailable)
		}
		if err := r.store.SavePlayerHand(playerID, cardIDs(next.PlayerByID(playerID).Hand)); err != nil {
			return s, fmt.Errorf("save hand: %v: %w", err, game.ErrUnavailable)
		}
		return next, nil
	})
}

// Resolve settles the round, records history, and schedules the automatic
// start of the next round after the settle delay.
func (r *Room) Resolve(dealerID, winnerID, loserID string) error {
	var result game.Result
	err := r.apply(func(s game.Snapshot) (game.Snapshot, error) {
		next, res, err := r.engine.ResolveRound(s, dealerID, winnerID, loserID)
		if err != nil {
			return s, err
		}
		if err := r.store.SettleRound(r.Code, winnerID, loserID, res.PotAwarded); err != nil {
			return s, fmt.Errorf("settle: %v: %w", err, game.ErrUnavailable)
		}
		if err := r.store.AppendHistory(&persistence.RoundRecord{
			RoomCode:    r.Code,
			RoundNumber: res.RoundNumber,
			WhiteCards:  cardIDs(res.WhiteCards),
			WinnerID:    winnerID,
			LoserID:     loserID,
			PotAwarded:  res.PotAwarded,
		}); err != nil {
			logger.Log.Errorf("room %s: append history: %v", r.Code, err)
		}
		result = res
		return next, nil
	})
	if err != nil {
		return err
	}

	if data, err := json.Marshal(result); err == nil {
		r.broadcaster.BroadcastToRoom(r.Code, network.MsgTypeRoundResult, data)
	}

	r.mutex.Lock()
	r.settleTimer = r.timers.AddTimer(r.settleDelay, 0, func() {
		if err := r.StartRound(); err != nil {
			// the room may have been closed while the timer was pending
			logger.Log.Debugf("room %s: auto-advance skipped: %v", r.Code, err)
		}
	})
	r.mutex.Unlock()
	return nil
}

// Close ends the game and stops the pending settle timer. Commands arriving
// after Close fail with RoomNotFound and emit nothing.
func (r *Room) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}
	if r.settleTimer != 0 {
		r.timers.RemoveTimer(r.settleTimer)
	}
	if next, err := r.engine.Close(r.snap); err == nil {
		r.snap = next
		if err := r.store.SaveRoomState(r.Code, string(next.Status), next.Pot, next.CurrentRound, next.DealerID); err != nil {
			logger.Log.Errorf("room %s: persist close: %v", r.Code, err)
		}
	}
	r.closed = true
}

// apply serializes one command: transition under the lock, write through to
// the store, then broadcast the sanitized state.
func (r *Room) apply(fn func(game.Snapshot) (game.Snapshot, error)) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return game.ErrRoomNotFound
	}

	next, err := fn(r.snap)
	if err != nil {
		return err
	}

	if err := r.store.SaveRoomState(r.Code, string(next.Status), next.Pot, next.CurrentRound, next.DealerID); err != nil {
		return fmt.Errorf("save room state: %v: %w", err, game.ErrUnavailable)
	}

	r.snap = next
	r.broadcastLocked()
	return nil
}

func (r *Room) broadcastLocked() {
	view := NewStateView(r.snap)
	data, err := json.Marshal(view)
	if err != nil {
		logger.Log.Errorf("room %s: marshal state view: %v", r.Code, err)
		return
	}
	if err := r.broadcaster.BroadcastToRoom(r.Code, network.MsgTypeRoomState, data); err != nil {
		logger.Log.Warnf("room %s: broadcast: %v", r.Code, err)
	}
}

// sendHands delivers each player's private hand over their own sessions.
func (r *Room) sendHands() {
	r.mutex.Lock()
	snap := r.snap.Clone()
	r.mutex.Unlock()

	for _, p := range snap.Players {
		hand := HandView{RoomID: r.Code, PlayerID: p.ID, Hand: p.Hand}
		data, err := json.Marshal(hand)
		if err != nil {
			continue
		}
		if err := r.broadcaster.SendToPlayer(p.ID, network.MsgTypeHandState, data); err != nil {
			logger.Log.Debugf("room %s: hand for %s undelivered: %v", r.Code, p.ID, err)
		}
	}
}

func cardIDs(cards []game.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// Manager indexes live rooms by code.
type Manager struct {
	rooms       map[string]*Room
	store       persistence.Store
	broadcaster Broadcaster
	timers      *timer.Manager
	settleDelay time.Duration
	mutex       sync.RWMutex
}

// NewManager creates a room manager sharing one store, broadcaster and
// timer wheel across rooms.
func NewManager(store persistence.Store, broadcaster Broadcaster, timers *timer.Manager,
	settleDelay time.Duration) *Manager {
	return &Manager{
		rooms:       make(map[string]*Room),
		store:       store,
		broadcaster: broadcaster,
		timers:      timers,
		settleDelay: settleDelay,
	}
}

// CreateRoom generates a fresh code, persists the room row and registers
// the live room.
func (m *Manager) CreateRoom(mode game.Mode) (*Room, error) {
	if !game.ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q: %w", mode, game.ErrValidation)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var code string
	for attempt := 0; ; attempt++ {
		code = GenerateCode()
		if _, taken := m.rooms[code]; !taken {
			break
		}
		if attempt > 10 {
			return nil, fmt.Errorf("could not allocate a room code: %w", game.ErrUnavailable)
		}
	}

	if err := m.store.CreateRoom(&persistence.GameRoom{
		Code:   code,
		Status: string(game.StatusLobby),
		Mode:   string(mode),
	}); err != nil {
		return nil, fmt.Errorf("create room: %v: %w", err, game.ErrUnavailable)
	}

	room := NewRoom(code, mode, m.store, m.broadcaster, m.timers, m.settleDelay)
	m.rooms[code] = room
	return room, nil
}

// GetRoom finds a live room by code.
func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[code]
	return room, exists
}

// RemoveRoom closes a room and drops it from the index.
func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if room, exists := m.rooms[code]; exists {
		room.Close()
		delete(m.rooms, code)
	}
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

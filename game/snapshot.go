package game

import "math/rand"

// Snapshot is the immutable aggregate state of one room. Engine transitions
// take a snapshot and return a new one; the input is never mutated.
type Snapshot struct {
	RoomID       string   `json:"room_id"`
	Status       Status   `json:"status"`
	Mode         Mode     `json:"mode"`
	Players      []Player `json:"players"`
	Pot          int      `json:"pot"`
	CurrentRound int      `json:"current_round"`
	DealerID     string   `json:"dealer_id"`
	ActiveWhites []Card   `json:"active_whites"`
	DeckWhite    Deck     `json:"-"`
	DeckBlack    Deck     `json:"-"`
}

// NewSnapshot builds the lobby state for a fresh room. Decks are shuffled
// exactly once here; exhaustion later is never recovered by reshuffling.
func NewSnapshot(roomID string, mode Mode, rng *rand.Rand) Snapshot {
	prompts, responses := DecksForMode(mode)
	return Snapshot{
		RoomID:    roomID,
		Status:    StatusLobby,
		Mode:      mode,
		Players:   nil,
		Pot:       0,
		DeckWhite: prompts.Shuffled(rng),
		DeckBlack: responses.Shuffled(rng),
	}
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	out.ActiveWhites = make([]Card, len(s.ActiveWhites))
	copy(out.ActiveWhites, s.ActiveWhites)
	out.DeckWhite = make(Deck, len(s.DeckWhite))
	copy(out.DeckWhite, s.DeckWhite)
	out.DeckBlack = make(Deck, len(s.DeckBlack))
	copy(out.DeckBlack, s.DeckBlack)
	return out
}

// PlayerByID returns a pointer into s.Players, or nil.
func (s *Snapshot) PlayerByID(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Dealer returns the current dealer, or nil before the first round.
func (s *Snapshot) Dealer() *Player {
	for i := range s.Players {
		if s.Players[i].IsDealer {
			return &s.Players[i]
		}
	}
	return nil
}

// NonDealers returns the players eligible to play a response this round.
func (s *Snapshot) NonDealers() []*Player {
	var out []*Player
	for i := range s.Players {
		if !s.Players[i].IsDealer {
			out = append(out, &s.Players[i])
		}
	}
	return out
}

// AllPlayed reports whether every non-dealer has a card on the table.
// A degenerate room with a single eligible player still completes.
func (s *Snapshot) AllPlayed() bool {
	played := false
	for i := range s.Players {
		if s.Players[i].IsDealer {
			continue
		}
		if !s.Players[i].HasPlayed() {
			return false
		}
		played = true
	}
	return played
}

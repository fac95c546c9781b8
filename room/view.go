package room

import "github.com/malaleche/gameserver/game"

// PlayerView is the public slice of a player. Hands stay private: only the
// count is shared, the cards travel over the owner's own session.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lucas     int    `json:"lucas"`
	IsDealer  bool   `json:"is_dealer"`
	HasPlayed bool   `json:"has_played"`
	IsWinner  bool   `json:"is_winner,omitempty"`
	IsLoser   bool   `json:"is_loser,omitempty"`
	HandSize  int    `json:"hand_size"`
}

// StateView is the broadcast shape of a room. Played cards are only
// revealed once the round reaches REVEALING.
type StateView struct {
	RoomID       string       `json:"room_id"`
	Status       game.Status  `json:"status"`
	Mode         game.Mode    `json:"mode"`
	Pot          int          `json:"pot"`
	CurrentRound int          `json:"current_round"`
	DealerID     string       `json:"dealer_id"`
	ActiveWhites []game.Card  `json:"active_whites"`
	PlayedCards  []game.Card  `json:"played_cards,omitempty"`
	// PlaysSubmitted is how many cards are already down this round, so
	// clients can show progress before anything is revealed.
	PlaysSubmitted int          `json:"plays_submitted"`
	Players        []PlayerView `json:"players"`
}

// HandView travels only to the owning player's sessions.
type HandView struct {
	RoomID   string      `json:"room_id"`
	PlayerID string      `json:"player_id"`
	Hand     []game.Card `json:"hand"`
}

// NewStateView strips the private parts out of a snapshot.
func NewStateView(s game.Snapshot) StateView {
	view := StateView{
		RoomID:       s.RoomID,
		Status:       s.Status,
		Mode:         s.Mode,
		Pot:          s.Pot,
		CurrentRound: s.CurrentRound,
		DealerID:     s.DealerID,
		ActiveWhites: s.ActiveWhites,
	}

	revealed := s.Status == game.StatusRevealing || s.Status == game.StatusResolving
	for _, p := range s.Players {
		view.Players = append(view.Players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Lucas:     p.Lucas,
			IsDealer:  p.IsDealer,
			HasPlayed: p.HasPlayed(),
			IsWinner:  p.IsWinner,
			IsLoser:   p.IsLoser,
			HandSize:  len(p.Hand),
		})
		if p.HasPlayed() {
			view.PlaysSubmitted++
		}
		if revealed && p.PlayedCard != nil {
			view.PlayedCards = append(view.PlayedCards, *p.PlayedCard)
		}
	}
	return view
}

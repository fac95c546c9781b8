package game

import "fmt"

// Tunables shared by every room. The original game fixed all of these.
const (
	InitialLucas    = 10
	HandTarget      = 10
	PromptsPerRound = 2
)

// Engine applies commands to snapshots. It is pure and synchronous: one
// command in, one new snapshot out, no internal locking. Callers must
// serialize commands per room.
type Engine struct{}

// NewEngine returns a round engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result describes a resolved round, for history and display.
type Result struct {
	RoundNumber int    `json:"round_number"`
	WinnerID    string `json:"winner_id"`
	LoserID     string `json:"loser_id"`
	PotAwarded  int    `json:"pot_awarded"`
	WhiteCards  []Card `json:"white_cards"`
}

// AddPlayer seats a new player. A late joiner starts with an empty hand and
// is topped up at the next StartRound.
func (e *Engine) AddPlayer(s Snapshot, playerID, name string) (Snapshot, error) {
	if name == "" || playerID == "" {
		return s, fmt.Errorf("player id and name required: %w", ErrValidation)
	}
	if s.Status == StatusEnded {
		return s, fmt.Errorf("cannot join an ended game: %w", ErrWrongPhase)
	}
	if s.PlayerByID(playerID) != nil {
		return s, fmt.Errorf("player %s already seated: %w", playerID, ErrValidation)
	}
	next := s.Clone()
	next.Players = append(next.Players, Player{
		ID:       playerID,
		Name:     name,
		Lucas:    InitialLucas,
		IsDealer: len(next.Players) == 0, // creator judges round one
	})
	if len(next.Players) == 1 {
		next.DealerID = playerID
	}
	return next, nil
}

// StartRound begins the next round: rotates the dealer, reveals the prompt
// cards, tops up hands and clears the table. Valid from LOBBY or RESOLVING.
func (e *Engine) StartRound(s Snapshot) (Snapshot, error) {
	if s.Status != StatusLobby && s.Status != StatusResolving {
		return s, fmt.Errorf("round already in progress: %w", ErrWrongPhase)
	}
	if len(s.Players) == 0 {
		return s, fmt.Errorf("no players seated: %w", ErrValidation)
	}

	next := s.Clone()
	dealerIdx := next.CurrentRound % len(next.Players)
	dealer := &next.Players[dealerIdx]

	next.ActiveWhites, next.DeckWhite = next.DeckWhite.Draw(PromptsPerRound)

	for i := range next.Players {
		p := &next.Players[i]
		p.IsDealer = i == dealerIdx
		p.PlayedCard = nil
		p.IsWinner = false
		p.IsLoser = false

		// Deck exhaustion degrades to a short hand, never an error.
		var drawn []Card
		drawn, next.DeckBlack = next.DeckBlack.Draw(HandTarget - len(p.Hand))
		p.Hand = append(p.Hand, drawn...)
	}

	next.DealerID = dealer.ID
	next.Status = StatusPlaying
	next.CurrentRound++
	return next, nil
}

// PlayCard moves a response card from a player's hand onto the table. When
// the last eligible player has played, the room flips to REVEALING.
func (e *Engine) PlayCard(s Snapshot, playerID, cardID string) (Snapshot, error) {
	if s.Status != StatusPlaying {
		return s, fmt.Errorf("not accepting plays: %w", ErrWrongPhase)
	}
	actor := s.PlayerByID(playerID)
	if actor == nil {
		return s, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	if actor.IsDealer {
		return s, ErrDealerCannotPlay
	}
	if actor.HasPlayed() {
		return s, ErrAlreadyPlayed
	}
	if actor.handIndex(cardID) < 0 {
		return s, fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}

	next := s.Clone()
	p := next.PlayerByID(playerID)
	idx := p.handIndex(cardID)
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.PlayedCard = &card

	if next.AllPlayed() {
		next.Status = StatusRevealing
	}
	return next, nil
}

// ResolveRound settles the round: the dealer names a winner and a loser.
// The pot plus one implicit ante per seated player goes to the winner; the
// loser forfeits one luca, floored at zero. The forfeited luca is destroyed
// rather than moved, so total currency is not conserved across a loss.
func (e *Engine) ResolveRound(s Snapshot, dealerID, winnerID, loserID string) (Snapshot, Result, error) {
	if s.Status != StatusRevealing {
		return s, Result{}, fmt.Errorf("nothing to resolve: %w", ErrWrongPhase)
	}
	if dealerID != s.DealerID {
		return s, Result{}, ErrNotDealer
	}
	if winnerID == loserID {
		return s, Result{}, fmt.Errorf("winner and loser are the same player: %w", ErrInvalidTarget)
	}
	winner := s.PlayerByID(winnerID)
	loser := s.PlayerByID(loserID)
	if winner == nil || winner.IsDealer || !winner.HasPlayed() {
		return s, Result{}, fmt.Errorf("winner %s: %w", winnerID, ErrInvalidTarget)
	}
	if loser == nil || loser.IsDealer || !loser.HasPlayed() {
		return s, Result{}, fmt.Errorf("loser %s: %w", loserID, ErrInvalidTarget)
	}

	next := s.Clone()
	roundPot := next.Pot + len(next.Players)

	w := next.PlayerByID(winnerID)
	w.Lucas += roundPot
	w.IsWinner = true

	l := next.PlayerByID(loserID)
	if l.Lucas > 0 {
		l.Lucas--
	}
	l.IsLoser = true

	next.Pot = 0
	next.Status = StatusResolving

	res := Result{
		RoundNumber: next.CurrentRound,
		WinnerID:    winnerID,
		LoserID:     loserID,
		PotAwarded:  roundPot,
		WhiteCards:  next.ActiveWhites,
	}
	return next, res, nil
}

// Close is the manual terminator into ENDED. No rule transitions into ENDED
// on its own.
func (e *Engine) Close(s Snapshot) (Snapshot, error) {
	if s.Status == StatusEnded {
		return s, fmt.Errorf("room already ended: %w", ErrWrongPhase)
	}
	next := s.Clone()
	next.Status = StatusEnded
	return next, nil
}

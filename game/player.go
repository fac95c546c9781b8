package game

// Player is a participant in a room. Lucas and hand contents are mutated
// only through engine transitions.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Lucas      int    `json:"lucas"`
	Hand       []Card `json:"hand"`
	IsDealer   bool   `json:"is_dealer"`
	PlayedCard *Card  `json:"played_card,omitempty"`
	IsWinner   bool   `json:"is_winner,omitempty"`
	IsLoser    bool   `json:"is_loser,omitempty"`
}

// HasPlayed reports whether the player has a card on the table this round.
func (p *Player) HasPlayed() bool {
	return p.PlayedCard != nil
}

// handIndex returns the position of a card in the player's hand, or -1.
func (p *Player) handIndex(cardID string) int {
	for i, c := range p.Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (p *Player) clone() Player {
	out := *p
	out.Hand = make([]Card, len(p.Hand))
	copy(out.Hand, p.Hand)
	if p.PlayedCard != nil {
		played := *p.PlayedCard
		out.PlayedCard = &played
	}
	return out
}

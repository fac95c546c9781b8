package game

import "math/rand"

// CardType distinguishes the two halves of the deck: prompts are revealed on
// the table, responses are played from hands.
type CardType string

const (
	CardTypePrompt   CardType = "PROMPT"
	CardTypeResponse CardType = "RESPONSE"
)

// Card is an immutable card value. Cards are never mutated after a deck is
// built; all deck and hand operations copy slices instead.
type Card struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Type CardType `json:"type"`
}

// Deck is an ordered pile of cards consumed from the front.
type Deck []Card

// Shuffled returns a uniformly permuted copy of the deck using a
// Fisher-Yates pass. The input deck is left untouched.
func (d Deck) Shuffled(rng *rand.Rand) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Draw removes up to n cards from the front of the deck. When the deck is
// short it returns whatever remains; running dry is not an error.
func (d Deck) Draw(n int) (drawn []Card, rest Deck) {
	if n < 0 {
		n = 0
	}
	if n > len(d) {
		n = len(d)
	}
	drawn = make([]Card, n)
	copy(drawn, d[:n])
	rest = make(Deck, len(d)-n)
	copy(rest, d[n:])
	return drawn, rest
}

// Contains reports whether the deck holds a card with the given id.
func (d Deck) Contains(cardID string) bool {
	for _, c := range d {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

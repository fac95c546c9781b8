package game

// Mode selects the deck a room plays with. Modes are configuration only;
// the round rules are identical across all of them.
type Mode string

const (
	ModeNormal Mode = "NORMAL"
	ModeQuick  Mode = "QUICK"
	ModeCasino Mode = "CASINO"
	ModeAula   Mode = "AULA"
)

// ValidMode reports whether m is one of the playable modes.
func ValidMode(m Mode) bool {
	switch m {
	case ModeNormal, ModeQuick, ModeCasino, ModeAula:
		return true
	}
	return false
}

// DecksForMode returns the unshuffled prompt and response decks for a mode.
// AULA uses the classroom-themed deck, everything else shares the base deck.
func DecksForMode(m Mode) (prompts, responses Deck) {
	if m == ModeAula {
		return aulaPrompts, aulaResponses
	}
	return basePrompts, baseResponses
}

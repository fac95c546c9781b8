package game

import "errors"

// Error taxonomy. Every failure the engine or the command surface can
// produce maps onto one of these kinds at the boundary.
var (
	ErrValidation      = errors.New("missing or malformed input")
	ErrWrongPhase      = errors.New("command not valid in current phase")
	ErrRoomNotFound    = errors.New("room not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrCardNotFound    = errors.New("card not in hand")
	ErrNotDealer       = errors.New("only the dealer can resolve the round")
	ErrDealerCannotPlay = errors.New("the dealer does not play cards")
	ErrAlreadyPlayed   = errors.New("already played a card this round")
	ErrInvalidTarget   = errors.New("winner and loser must be distinct players that played this round")
	ErrUnavailable     = errors.New("persistence layer unavailable")
)

// Kind classifies an error for wire replies and retry policy.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"  // user must correct and retry
	KindWrongPhase  Kind = "WRONG_PHASE" // client should resync and retry
	KindNotFound    Kind = "NOT_FOUND"   // terminal for this request
	KindForbidden   Kind = "FORBIDDEN"   // actor lacks the required role
	KindConflict    Kind = "CONFLICT"    // duplicate action, no retry
	KindUnavailable Kind = "UNAVAILABLE" // safe to retry with backoff
	KindInternal    Kind = "INTERNAL"
)

// KindOf maps an error to its taxonomy kind.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrWrongPhase):
		return KindWrongPhase
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotFound), errors.Is(err, ErrCardNotFound):
		return KindNotFound
	case errors.Is(err, ErrNotDealer), errors.Is(err, ErrDealerCannotPlay):
		return KindForbidden
	case errors.Is(err, ErrAlreadyPlayed):
		return KindConflict
	case errors.Is(err, ErrInvalidTarget):
		return KindValidation
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	}
	return KindInternal
}

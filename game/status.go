package game

// Status is the room lifecycle phase.
type Status string

const (
	StatusLobby     Status = "LOBBY"
	StatusPlaying   Status = "PLAYING"
	StatusRevealing Status = "REVEALING"
	StatusResolving Status = "RESOLVING"
	StatusEnded     Status = "ENDED"
)

// transitions is the allowed phase graph. RESOLVING loops back into PLAYING
// through the next StartRound; ENDED is a manual terminator with no way out.
var transitions = map[Status][]Status{
	StatusLobby:     {StatusPlaying, StatusEnded},
	StatusPlaying:   {StatusRevealing, StatusEnded},
	StatusRevealing: {StatusResolving, StatusEnded},
	StatusResolving: {StatusPlaying, StatusEnded},
	StatusEnded:     {},
}

// CanTransition reports whether moving from one phase to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

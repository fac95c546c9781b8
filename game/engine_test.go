package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck(prefix string, typ CardType, n int) Deck {
	d := make(Deck, n)
	for i := 0; i < n; i++ {
		d[i] = Card{ID: fmt.Sprintf("%s%d", prefix, i), Text: fmt.Sprintf("card %d", i), Type: typ}
	}
	return d
}

// testSnapshot seats n players in a lobby with synthetic decks big enough
// for a few full rounds.
func testSnapshot(t *testing.T, n int) Snapshot {
	t.Helper()
	e := NewEngine()
	s := Snapshot{
		RoomID:    "TEST01",
		Status:    StatusLobby,
		Mode:      ModeNormal,
		DeckWhite: testDeck("p", CardTypePrompt, 20),
		DeckBlack: testDeck("r", CardTypeResponse, 100),
	}
	for i := 0; i < n; i++ {
		var err error
		s, err = e.AddPlayer(s, fmt.Sprintf("player-%d", i), fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
	}
	return s
}

func TestAddPlayer(t *testing.T) {
	e := NewEngine()

	t.Run("first player becomes dealer", func(t *testing.T) {
		s := testSnapshot(t, 1)
		assert.True(t, s.Players[0].IsDealer)
		assert.Equal(t, s.Players[0].ID, s.DealerID)
		assert.Equal(t, InitialLucas, s.Players[0].Lucas)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		s := testSnapshot(t, 1)
		_, err := e.AddPlayer(s, "p2", "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		s := testSnapshot(t, 2)
		_, err := e.AddPlayer(s, "player-0", "Imposter")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects join after close", func(t *testing.T) {
		s := testSnapshot(t, 2)
		s, err := e.Close(s)
		require.NoError(t, err)
		_, err = e.AddPlayer(s, "late", "Late")
		assert.ErrorIs(t, err, ErrWrongPhase)
	})
}

func TestStartRound(t *testing.T) {
	e := NewEngine()

	t.Run("deals prompts and tops up hands", func(t *testing.T) {
		s := testSnapshot(t, 3)
		next, err := e.StartRound(s)
		require.NoError(t, err)

		assert.Equal(t, StatusPlaying, next.Status)
		assert.Equal(t, 1, next.CurrentRound)
		assert.Len(t, next.ActiveWhites, PromptsPerRound)
		assert.Len(t, next.DeckWhite, 20-PromptsPerRound)
		assert.Len(t, next.DeckBlack, 100-3*HandTarget)
		for _, p := range next.Players {
			assert.Len(t, p.Hand, HandTarget)
			assert.Nil(t, p.PlayedCard)
		}
	})

	t.Run("exactly one dealer and dealer id matches", func(t *testing.T) {
		s := testSnapshot(t, 4)
		next, err := e.StartRound(s)
		require.NoError(t, err)

		dealers := 0
		for _, p := range next.Players {
			if p.IsDealer {
				dealers++
				assert.Equal(t, p.ID, next.DealerID)
			}
		}
		assert.Equal(t, 1, dealers)
	})

	t.Run("fails mid round", func(t *testing.T) {
		s := testSnapshot(t, 3)
		next, err := e.StartRound(s)
		require.NoError(t, err)

		_, err = e.StartRound(next)
		assert.ErrorIs(t, err, ErrWrongPhase)

		next.Status = StatusRevealing
		_, err = e.StartRound(next)
		assert.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("fails with no players", func(t *testing.T) {
		s := testSnapshot(t, 0)
		_, err := e.StartRound(s)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("short response deck deals what remains", func(t *testing.T) {
		s := testSnapshot(t, 1)
		s.Players[0].Hand = testDeck("h", CardTypeResponse, 3)
		s.DeckBlack = testDeck("r", CardTypeResponse, 3)

		next, err := e.StartRound(s)
		require.NoError(t, err)
		assert.Len(t, next.Players[0].Hand, 6)
		assert.Empty(t, next.DeckBlack)
	})

	t.Run("does not mutate the input snapshot", func(t *testing.T) {
		s := testSnapshot(t, 3)
		_, err := e.StartRound(s)
		require.NoError(t, err)

		assert.Equal(t, StatusLobby, s.Status)
		assert.Equal(t, 0, s.CurrentRound)
		assert.Len(t, s.DeckWhite, 20)
		for _, p := range s.Players {
			assert.Empty(t, p.Hand)
		}
	})
}

func TestDealerRotation(t *testing.T) {
	e := NewEngine()
	s := testSnapshot(t, 3)

	// Six rounds over three players must visit seats 0,1,2,0,1,2.
	for round := 0; round < 6; round++ {
		var err error
		s, err = e.StartRound(s)
		require.NoError(t, err)

		wantDealer := s.Players[round%3].ID
		assert.Equal(t, wantDealer, s.DealerID, "round %d", round+1)

		s = playAllNonDealers(t, e, s)
		nd := s.NonDealers()
		s, _, err = e.ResolveRound(s, s.DealerID, nd[0].ID, nd[1].ID)
		require.NoError(t, err)
	}
}

func playAllNonDealers(t *testing.T, e *Engine, s Snapshot) Snapshot {
	t.Helper()
	for _, p := range s.NonDealers() {
		var err error
		s, err = e.PlayCard(s, p.ID, s.PlayerByID(p.ID).Hand[0].ID)
		require.NoError(t, err)
	}
	require.Equal(t, StatusRevealing, s.Status)
	return s
}

func TestPlayCard(t *testing.T) {
	e := NewEngine()

	started := func(t *testing.T, n int) Snapshot {
		s, err := e.StartRound(testSnapshot(t, n))
		require.NoError(t, err)
		return s
	}

	t.Run("moves card from hand to table", func(t *testing.T) {
		s := started(t, 3)
		p := s.NonDealers()[0]
		card := p.Hand[0]

		next, err := e.PlayCard(s, p.ID, card.ID)
		require.NoError(t, err)

		played := next.PlayerByID(p.ID)
		assert.Len(t, played.Hand, HandTarget-1)
		require.NotNil(t, played.PlayedCard)
		assert.Equal(t, card.ID, played.PlayedCard.ID)
		assert.Equal(t, StatusPlaying, next.Status, "one play must not reveal")
	})

	t.Run("reveals exactly when every non-dealer has played", func(t *testing.T) {
		s := started(t, 4)
		nd := s.NonDealers()
		for i, p := range nd {
			var err error
			s, err = e.PlayCard(s, p.ID, s.PlayerByID(p.ID).Hand[0].ID)
			require.NoError(t, err)
			if i < len(nd)-1 {
				assert.Equal(t, StatusPlaying, s.Status)
			}
		}
		assert.Equal(t, StatusRevealing, s.Status)
	})

	t.Run("single eligible player completes the round", func(t *testing.T) {
		s := started(t, 2)
		p := s.NonDealers()[0]
		next, err := e.PlayCard(s, p.ID, s.PlayerByID(p.ID).Hand[0].ID)
		require.NoError(t, err)
		assert.Equal(t, StatusRevealing, next.Status)
	})

	t.Run("dealer cannot play", func(t *testing.T) {
		s := started(t, 3)
		d := s.Dealer()
		_, err := e.PlayCard(s, d.ID, d.Hand[0].ID)
		assert.ErrorIs(t, err, ErrDealerCannotPlay)
	})

	t.Run("double play conflicts", func(t *testing.T) {
		s := started(t, 3)
		p := s.NonDealers()[0]
		s, err := e.PlayCard(s, p.ID, s.PlayerByID(p.ID).Hand[0].ID)
		require.NoError(t, err)

		_, err = e.PlayCard(s, p.ID, s.PlayerByID(p.ID).Hand[0].ID)
		assert.ErrorIs(t, err, ErrAlreadyPlayed)
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("card must be in hand", func(t *testing.T) {
		s := started(t, 3)
		_, err := e.PlayCard(s, s.NonDealers()[0].ID, "no-such-card")
		assert.ErrorIs(t, err, ErrCardNotFound)
	})

	t.Run("wrong phase", func(t *testing.T) {
		s := testSnapshot(t, 3)
		_, err := e.PlayCard(s, "player-1", "r0")
		assert.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("unknown player", func(t *testing.T) {
		s := started(t, 3)
		_, err := e.PlayCard(s, "ghost", "r0")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestResolveRound(t *testing.T) {
	e := NewEngine()

	revealing := func(t *testing.T, n int) Snapshot {
		s, err := e.StartRound(testSnapshot(t, n))
		require.NoError(t, err)
		return playAllNonDealers(t, e, s)
	}

	t.Run("settles pot and penalty", func(t *testing.T) {
		// 3 players at 10 lucas, pot 0: winner ends at 13, loser at 9,
		// the dealer untouched at 10.
		s := revealing(t, 3)
		nd := s.NonDealers()
		winner, loser := nd[0].ID, nd[1].ID

		next, res, err := e.ResolveRound(s, s.DealerID, winner, loser)
		require.NoError(t, err)

		assert.Equal(t, StatusResolving, next.Status)
		assert.Equal(t, 0, next.Pot)
		assert.Equal(t, 13, next.PlayerByID(winner).Lucas)
		assert.Equal(t, 9, next.PlayerByID(loser).Lucas)
		assert.Equal(t, 10, next.PlayerByID(next.DealerID).Lucas)
		assert.True(t, next.PlayerByID(winner).IsWinner)
		assert.True(t, next.PlayerByID(loser).IsLoser)

		assert.Equal(t, 3, res.PotAwarded)
		assert.Equal(t, 1, res.RoundNumber)
		assert.Equal(t, winner, res.WinnerID)
		assert.Equal(t, loser, res.LoserID)
	})

	t.Run("accumulated pot pays out in full", func(t *testing.T) {
		s := revealing(t, 3)
		s.Pot = 5
		nd := s.NonDealers()

		next, res, err := e.ResolveRound(s, s.DealerID, nd[0].ID, nd[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 10+5+3, next.PlayerByID(nd[0].ID).Lucas)
		assert.Equal(t, 8, res.PotAwarded)
	})

	t.Run("loss clamps at zero", func(t *testing.T) {
		s := revealing(t, 3)
		nd := s.NonDealers()
		s.PlayerByID(nd[1].ID).Lucas = 0

		next, _, err := e.ResolveRound(s, s.DealerID, nd[0].ID, nd[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 0, next.PlayerByID(nd[1].ID).Lucas)
	})

	t.Run("non-dealer cannot resolve", func(t *testing.T) {
		s := revealing(t, 3)
		nd := s.NonDealers()
		_, _, err := e.ResolveRound(s, nd[0].ID, nd[0].ID, nd[1].ID)
		assert.ErrorIs(t, err, ErrNotDealer)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("winner must differ from loser", func(t *testing.T) {
		s := revealing(t, 3)
		nd := s.NonDealers()
		_, _, err := e.ResolveRound(s, s.DealerID, nd[0].ID, nd[0].ID)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("dealer is not a valid target", func(t *testing.T) {
		s := revealing(t, 3)
		nd := s.NonDealers()
		_, _, err := e.ResolveRound(s, s.DealerID, s.DealerID, nd[0].ID)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("targets must have played", func(t *testing.T) {
		s, err := e.StartRound(testSnapshot(t, 4))
		require.NoError(t, err)
		nd := s.NonDealers()
		// only two of three non-dealers play
		s, err = e.PlayCard(s, nd[0].ID, s.PlayerByID(nd[0].ID).Hand[0].ID)
		require.NoError(t, err)
		s, err = e.PlayCard(s, nd[1].ID, s.PlayerByID(nd[1].ID).Hand[0].ID)
		require.NoError(t, err)
		require.Equal(t, StatusPlaying, s.Status)
		s.Status = StatusRevealing

		_, _, err = e.ResolveRound(s, s.DealerID, nd[0].ID, nd[2].ID)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("wrong phase", func(t *testing.T) {
		s, err := e.StartRound(testSnapshot(t, 3))
		require.NoError(t, err)
		nd := s.NonDealers()
		_, _, err = e.ResolveRound(s, s.DealerID, nd[0].ID, nd[1].ID)
		assert.ErrorIs(t, err, ErrWrongPhase)
	})
}

// Every response card id must live in exactly one of: a hand, a played
// card, or the response deck.
func TestCardConservation(t *testing.T) {
	e := NewEngine()
	s := testSnapshot(t, 3)

	check := func(s Snapshot) {
		t.Helper()
		seen := map[string]int{}
		for _, c := range s.DeckBlack {
			seen[c.ID]++
		}
		for _, p := range s.Players {
			for _, c := range p.Hand {
				seen[c.ID]++
			}
			if p.PlayedCard != nil {
				seen[p.PlayedCard.ID]++
			}
		}
		for id, n := range seen {
			require.Equal(t, 1, n, "card %s appears %d times", id, n)
		}
	}

	for round := 0; round < 3; round++ {
		var err error
		s, err = e.StartRound(s)
		require.NoError(t, err)
		check(s)

		s = playAllNonDealers(t, e, s)
		check(s)

		nd := s.NonDealers()
		s, _, err = e.ResolveRound(s, s.DealerID, nd[0].ID, nd[1].ID)
		require.NoError(t, err)
		check(s)
	}
}

func TestClose(t *testing.T) {
	e := NewEngine()
	s := testSnapshot(t, 2)

	s, err := e.Close(s)
	require.NoError(t, err)
	assert.Equal(t, StatusEnded, s.Status)

	_, err = e.StartRound(s)
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = e.Close(s)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

// Package match sequences rounds of a Hearts game deterministically
// from a single 64-bit seed.
package match

import (
	"math/rand"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
	"github.com/0x4D44/mdhearts-sub001/internal/round"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
)

// Match owns the round sequence, the scoreboard, and the seed that
// makes both reproducible.
type Match struct {
	seed        int64
	roundNumber int // 1-indexed
	scoreboard  *scoreboard.Scoreboard
	current     *round.State
}

// New starts a match at round 1 from the given seed, with a fresh
// scoreboard.
func New(seed int64) *Match {
	return &Match{seed: seed, roundNumber: 1, scoreboard: scoreboard.New()}
}

// Restore reconstructs a match from a persisted (seed, round_number,
// scores) tuple. No round is dealt here: the next StartRound replays
// round_number-1 shuffles from the seed before dealing, so the deal is
// byte-identical to the original. Direction and starting seat are not
// parameters; both follow from the round number and the deal.
func Restore(seed int64, roundNumber int, scores [4]int) *Match {
	m := &Match{
		seed:        seed,
		roundNumber: roundNumber,
		scoreboard:  scoreboard.FromTotals(scores),
	}
	return m
}

// Seed returns the match's shuffle seed.
func (m *Match) Seed() int64 { return m.seed }

// RoundNumber returns the current 1-indexed round number.
func (m *Match) RoundNumber() int { return m.roundNumber }

// Scoreboard returns the match's cumulative scoreboard.
func (m *Match) Scoreboard() *scoreboard.Scoreboard { return m.scoreboard }

// Current returns the in-progress round, or nil before StartRound.
func (m *Match) Current() *round.State { return m.current }

// dealDeterministic reproduces the deck dealt for round n by
// replaying n-1 discarded shuffles from the seed, then shuffling and
// dealing the nth deck. This is what makes the match byte-identically
// reconstructable from (seed, round_number) alone.
func dealDeterministic(seed int64, n int) [4]*cards.Hand {
	rng := rand.New(rand.NewSource(seed))
	for i := 1; i < n; i++ {
		discard := cards.NewDeck()
		discard.Shuffle(rng)
	}
	deck := cards.NewDeck()
	deck.Shuffle(rng)
	return cards.DealFour(deck)
}

// StartRound deals and begins the current round number's round,
// using the direction implied by the round number's position in the
// Left/Right/Across/Hold cycle.
func (m *Match) StartRound() *round.State {
	hands := dealDeterministic(m.seed, m.roundNumber)
	dir := passing.DirectionForRound(m.roundNumber)
	m.current = round.New(hands, dir)
	return m.current
}

// FinishRound applies the completed current round's penalties to the
// scoreboard and advances to the next round number.
func (m *Match) FinishRound() {
	if m.current == nil || !m.current.IsComplete() {
		return
	}
	m.scoreboard.ApplyRound(m.current.PenaltyTotals())
	m.roundNumber++
	m.current = nil
}

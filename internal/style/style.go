// Package style determines the shared strategic posture — Cautious,
// HuntLeader, or AggressiveMoon — that both the pass and play
// planners layer their per-card scoring overrides on top of.
package style

import (
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
)

// Default HuntLeader score thresholds, per §4.8: harder difficulty
// triggers the hunt earlier since it can capitalize on it.
const (
	DefaultHuntThresholdAny  = 90.0
	DefaultHuntThresholdHard = 80.0
)

// Style is the shared strategic posture selected for a decision.
type Style int

const (
	Cautious Style = iota
	HuntLeader
	AggressiveMoon
)

func (s Style) String() string {
	switch s {
	case HuntLeader:
		return "HuntLeader"
	case AggressiveMoon:
		return "AggressiveMoon"
	default:
		return "Cautious"
	}
}

// Inputs bundles the facts style selection consults, kept separate
// from the planner context types so this package has no dependency
// on round/match/config.
type Inputs struct {
	MoonState        tracker.MoonState
	CardsPlayed      int // across the round so far
	MyScore          int
	MinScore         int
	HeartsInHand     int
	HighHeartsInHand int // hearts ranked Queen or above
	HighSpadesInHand int // spades ranked Queen or above, including Ace
	HasAceOfSpades   bool
	IsHighestScore   bool
	HardDifficulty   bool
	HuntThresholdAny float64 // default 90
	HuntThresholdHard float64 // default 80
}

// Select implements §4.8's ordered decision: Committed moon state or
// the shoot-heuristic forces AggressiveMoon; otherwise a seat not in
// the scoreboard lead that is far enough behind becomes HuntLeader;
// otherwise Cautious.
func Select(in Inputs) Style {
	if in.MoonState == tracker.Committed {
		return AggressiveMoon
	}
	if shootHeuristicMet(in) {
		return AggressiveMoon
	}
	if !in.IsHighestScore {
		threshold := in.HuntThresholdAny
		if in.HardDifficulty {
			threshold = in.HuntThresholdHard
		}
		if float64(in.MyScore) >= threshold {
			return HuntLeader
		}
	}
	return Cautious
}

// shootHeuristicMet implements the §4.5 shoot-threshold check used
// both to offer an early AggressiveMoon pass style and to gate the
// play planner's moon-style override.
func shootHeuristicMet(in Inputs) bool {
	if in.CardsPlayed > 12 {
		return false
	}
	if in.MyScore >= 70 {
		return false
	}
	if in.MyScore > in.MinScore+15 {
		return false
	}
	if in.HeartsInHand < 7 {
		return false
	}
	if in.HighHeartsInHand < 4 {
		return false
	}
	if in.HighSpadesInHand < 2 {
		return false
	}
	if !in.HasAceOfSpades {
		return false
	}
	return true
}

// InputsFromHand computes the hand-derived fields of Inputs from a
// concrete hand, leaving the game-state fields (scores, moon state,
// cards played) for the caller to fill in.
func InputsFromHand(hand *cards.Hand) (heartsInHand, highHearts, highSpades int, hasAceSpades bool) {
	hearts := hand.CardsOfSuit(cards.Hearts)
	heartsInHand = len(hearts)
	for _, c := range hearts {
		if c.Rank >= cards.Queen {
			highHearts++
		}
	}
	for _, c := range hand.CardsOfSuit(cards.Spades) {
		if c.Rank >= cards.Queen {
			highSpades++
		}
		if c.Rank == cards.Ace {
			hasAceSpades = true
		}
	}
	return
}

package hard

import (
	"testing"

	"github.com/0x4D44/mdhearts-sub001/internal/belief"
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/config"
	"github.com/0x4D44/mdhearts-sub001/internal/planner/normal"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

func baseCtx(hand *cards.Hand) Context {
	return Context{
		Seat:          0,
		Hand:          hand,
		Trick:         trick.New(0),
		Scoreboard:    scoreboard.New(),
		Style:         style.Cautious,
		MoonState:     tracker.Inactive,
		NormalWeights: normal.DefaultWeights(),
		Config:        config.Defaults(),
	}
}

func TestOutsideTopKCandidatesKeepTotalEqualBase(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Five, Suit: cards.Diamonds},
		cards.Card{Rank: cards.Nine, Suit: cards.Spades},
		cards.Card{Rank: cards.Four, Suit: cards.Clubs},
	)
	ctx := baseCtx(hand)
	ctx.Config.HardPhaseBTopK = 2

	legal := hand.Cards()
	result := Select(ctx, legal)

	probed := 0
	for i, cand := range result.Candidates {
		if cand.Probed {
			probed++
			continue
		}
		if cand.Total != cand.Base {
			t.Errorf("candidate %d (%v) outside top-K: Total=%v want %v (== Base)", i, cand.Card, cand.Total, cand.Base)
		}
	}
	if probed != ctx.Config.HardPhaseBTopK {
		t.Fatalf("probed %d candidates, want exactly HardPhaseBTopK=%d", probed, ctx.Config.HardPhaseBTopK)
	}
}

func TestProbedCandidateSatisfiesExplainInvariant(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Five, Suit: cards.Diamonds},
		cards.Card{Rank: cards.Nine, Suit: cards.Spades},
	)
	ctx := baseCtx(hand)
	result := Select(ctx, hand.Cards())

	for _, cand := range result.Candidates {
		if !cand.Probed {
			continue
		}
		want := cand.Base + cand.Parts.Sum()
		if !almostEqual(cand.Total, want) {
			t.Errorf("candidate %v: Total=%v, want Base+Sum(Parts)=%v", cand.Card, cand.Total, want)
		}
	}
}

func TestContinuationRespectsCap(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Ace, Suit: cards.Hearts},
		cards.Card{Rank: cards.King, Suit: cards.Hearts},
	)
	tr := trick.New(1)
	tr.Play(1, cards.Card{Rank: cards.Queen, Suit: cards.Hearts})
	tr.Play(2, cards.Card{Rank: cards.Jack, Suit: cards.Hearts})
	tr.Play(3, cards.Card{Rank: cards.Ten, Suit: cards.Hearts})

	ctx := baseCtx(hand)
	ctx.Trick = tr
	ctx.MoonState = tracker.Committed
	ctx.Config.HardContCap = 2.0

	result := Select(ctx, hand.Cards())
	for _, cand := range result.Candidates {
		if !cand.Probed {
			continue
		}
		if cand.Parts.Sum() > ctx.Config.HardContCap+1e-9 || cand.Parts.Sum() < -ctx.Config.HardContCap-1e-9 {
			t.Errorf("candidate %v: Sum(Parts)=%v exceeds cap %v", cand.Card, cand.Parts.Sum(), ctx.Config.HardContCap)
		}
	}
}

func TestSelectIsDeterministicUnderFixedInput(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Five, Suit: cards.Diamonds},
		cards.Card{Rank: cards.Nine, Suit: cards.Spades},
		cards.Card{Rank: cards.Jack, Suit: cards.Clubs},
	)
	ctx := baseCtx(hand)

	r1 := Select(ctx, hand.Cards())
	r2 := Select(ctx, hand.Cards())

	if r1.Chosen != r2.Chosen {
		t.Fatalf("two identical Select calls chose different cards: %v vs %v", r1.Chosen, r2.Chosen)
	}
	for i := range r1.Candidates {
		if r1.Candidates[i].Total != r2.Candidates[i].Total {
			t.Fatalf("candidate %d total differs between runs: %v vs %v", i, r1.Candidates[i].Total, r2.Candidates[i].Total)
		}
	}
}

func TestABPruningDoesNotChangeTopChoice(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Five, Suit: cards.Diamonds},
		cards.Card{Rank: cards.Nine, Suit: cards.Spades},
		cards.Card{Rank: cards.Jack, Suit: cards.Clubs},
		cards.Card{Rank: cards.Six, Suit: cards.Diamonds},
	)

	unpruned := baseCtx(hand)
	unpruned.Config.HardABMargin = 1000

	pruned := baseCtx(hand)
	pruned.Config.HardABMargin = 0

	r1 := Select(unpruned, hand.Cards())
	r2 := Select(pruned, hand.Cards())

	if r1.Chosen != r2.Chosen {
		t.Fatalf("pruning changed the top choice: unpruned=%v pruned=%v", r1.Chosen, r2.Chosen)
	}
}

func TestEndgameDPLeavesExplainSurfaceUnchanged(t *testing.T) {
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Five, Suit: cards.Diamonds},
	)
	without := baseCtx(hand)
	without.Config.HardEndgameDPEnable = false

	with := baseCtx(hand)
	with.Config.HardEndgameDPEnable = true
	with.Config.HardEndgameMaxCards = 2
	with.AllHands = [4]*cards.Hand{
		cards.NewHand(cards.Card{Rank: cards.Two, Suit: cards.Clubs}, cards.Card{Rank: cards.Five, Suit: cards.Diamonds}),
		cards.NewHand(cards.Card{Rank: cards.Three, Suit: cards.Clubs}, cards.Card{Rank: cards.Six, Suit: cards.Diamonds}),
		cards.NewHand(cards.Card{Rank: cards.Four, Suit: cards.Clubs}, cards.Card{Rank: cards.Seven, Suit: cards.Diamonds}),
		cards.NewHand(cards.Card{Rank: cards.King, Suit: cards.Clubs}, cards.Card{Rank: cards.Eight, Suit: cards.Diamonds}),
	}

	r1 := Select(without, hand.Cards())
	r2 := Select(with, hand.Cards())

	if len(r1.Candidates) != len(r2.Candidates) {
		t.Fatalf("candidate counts differ: %d vs %d", len(r1.Candidates), len(r2.Candidates))
	}
	for i := range r1.Candidates {
		if r1.Candidates[i].Card != r2.Candidates[i].Card || r1.Candidates[i].Total != r2.Candidates[i].Total {
			t.Errorf("explain surface changed with DP toggled at %d: %+v vs %+v", i, r1.Candidates[i], r2.Candidates[i])
		}
	}
}

func TestMoonReliefRewardsSelfCaptureWhenCommitted(t *testing.T) {
	tr := trick.New(1)
	tr.Play(1, cards.Card{Rank: cards.Two, Suit: cards.Hearts})
	tr.Play(2, cards.Card{Rank: cards.Three, Suit: cards.Hearts})
	tr.Play(3, cards.Card{Rank: cards.Four, Suit: cards.Hearts})
	hand := cards.NewHand(cards.Card{Rank: cards.Ace, Suit: cards.Hearts})

	inactive := baseCtx(hand)
	inactive.Trick = tr
	inactive.MoonState = tracker.Inactive

	committed := baseCtx(hand)
	committed.Trick = tr
	committed.MoonState = tracker.Committed

	ace := cards.Card{Rank: cards.Ace, Suit: cards.Hearts}
	r1 := Select(inactive, []cards.Card{ace})
	r2 := Select(committed, []cards.Card{ace})

	if r2.Candidates[0].Parts.MoonRelief <= r1.Candidates[0].Parts.MoonRelief {
		t.Fatalf("expected Committed to score higher moon_relief than Inactive: got %v vs %v",
			r2.Candidates[0].Parts.MoonRelief, r1.Candidates[0].Parts.MoonRelief)
	}
}

// TestBeliefUnlocksFeedEstimate exercises the estimator's belief path
// directly: with ctx.Belief == nil and no tracked voids,
// avgPenaltyPerCard/voidProbability fall back to 0 (see
// determinize.go), so the current trick's Feed is always 0 for a
// candidate that leaves the scoreboard leader winning it. A populated
// belief table should make that feed estimate positive, since seats 1
// and 2, still to play, are then estimated to have some chance of
// being void in clubs and of dumping penalty cards on the leader.
func TestBeliefUnlocksFeedEstimate(t *testing.T) {
	hand := cards.NewHand(cards.Card{Rank: cards.Two, Suit: cards.Clubs})
	led := cards.Card{Rank: cards.Ace, Suit: cards.Clubs}
	ourCard := cards.Card{Rank: cards.Two, Suit: cards.Clubs}

	newTrick := func() *trick.Trick {
		tr := trick.New(3)
		tr.Play(3, led)
		return tr
	}

	ctx := baseCtx(hand)
	ctx.Seat = 0
	ctx.Trick = newTrick()
	ctx.Scoreboard = scoreboard.FromTotals([4]int{0, 0, 0, 100})
	ctx.Tracker = tracker.New()

	without := ctx
	without.Belief = nil
	rWithout := Select(without, []cards.Card{ourCard})

	withBelief := ctx
	withBelief.Belief = belief.New(0, hand.Cards(), nil, [4]int{1, 1, 12, 12})
	rWith := Select(withBelief, []cards.Card{ourCard})

	if rWithout.Candidates[0].Parts.Feed != 0 {
		t.Fatalf("nil-Belief feed = %v, want exactly 0 (estimator must fall back without a belief table)", rWithout.Candidates[0].Parts.Feed)
	}
	if rWith.Candidates[0].Parts.Feed <= rWithout.Candidates[0].Parts.Feed {
		t.Fatalf("belief-backed feed = %v, want > nil-Belief baseline %v", rWith.Candidates[0].Parts.Feed, rWithout.Candidates[0].Parts.Feed)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

// Package pass selects the three-card pass a seat offers before
// play begins, scoring each card in hand against liability, void,
// direction-target, and style components before picking the top
// three under a deterministic tiebreak.
package pass

import (
	"sort"

	"github.com/0x4D44/mdhearts-sub001/internal/belief"
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/moon"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
)

// Weights are the pass planner's tunable per-component scalars.
type Weights struct {
	QueenLiabilityBonus    float64
	HighSpadeLiabilityBonus float64
	HeartLiabilityPerRank  float64

	VoidZeroBonus    float64
	VoidOneBonus     float64
	VoidTwoBonus     float64
	LongSuitPenalty  float64 // per card beyond the fourth in a retained suit

	DirectionHighBonusPerPoint   float64
	DirectionLowPenaltyPerPoint float64

	DesperationBonusPerPoint float64
	LateRoundPerCard         float64
	TwoClubsRetentionPenalty float64
	UnseenBonus              float64

	AggressiveLiabilityPenalty float64
	AggressiveVoidBonus        float64
	AggressiveControlPenalty   float64

	HuntPerPenaltyBonus  float64
	HuntTrailingAmplify  float64

	MoonSupportBase float64
}

// DefaultWeights mirrors the orientation values given alongside §4.5's
// component list. config.Config has no fields for these weights;
// callers change them by editing the returned struct.
func DefaultWeights() Weights {
	return Weights{
		QueenLiabilityBonus:     40,
		HighSpadeLiabilityBonus: 18,
		HeartLiabilityPerRank:   1.5,

		VoidZeroBonus:   33,
		VoidOneBonus:    22,
		VoidTwoBonus:    13,
		LongSuitPenalty: 4,

		DirectionHighBonusPerPoint:  2.5,
		DirectionLowPenaltyPerPoint: 2.0,

		DesperationBonusPerPoint: 1.2,
		LateRoundPerCard:         0.1,
		TwoClubsRetentionPenalty: 30,
		UnseenBonus:              1.0,

		AggressiveLiabilityPenalty: 50,
		AggressiveVoidBonus:        15,
		AggressiveControlPenalty:   8,

		HuntPerPenaltyBonus: 3.0,
		HuntTrailingAmplify: 1.6,

		MoonSupportBase: 12.0,
	}
}

// Context bundles everything the pass planner consults for one
// seat's decision.
type Context struct {
	Seat        int
	Hand        *cards.Hand
	Direction   passing.Direction
	Scoreboard  *scoreboard.Scoreboard
	Tracker     *tracker.UnseenTracker
	Belief      *belief.Belief // optional; nil when unavailable
	MoonEstimate moon.Estimate
	CardsPlayed int
	Style       style.Style
	Weights     Weights
}

// Select scores every card in hand and returns the top three under
// the deterministic (suit, rank) tiebreak, after applying the
// hard-guard rule against sending Q♠ outside an AggressiveMoon pass.
func Select(ctx Context) ([3]cards.Card, error) {
	hand := ctx.Hand.Cards()
	if len(hand) < 3 {
		return [3]cards.Card{}, &Error{Kind: ErrTooFewCards}
	}

	type scoredCard struct {
		card  cards.Card
		score float64
	}
	scored := make([]scoredCard, len(hand))
	for i, c := range hand {
		scored[i] = scoredCard{card: c, score: scoreCard(ctx, c)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].card.Less(scored[j].card)
	})

	qsAllowed := ctx.Style == style.AggressiveMoon
	var picked [3]cards.Card
	n := 0
	for _, sc := range scored {
		if n == 3 {
			break
		}
		if sc.card.IsQueenOfSpades() && !qsAllowed {
			continue
		}
		picked[n] = sc.card
		n++
	}
	return picked, nil
}

// scoreCard computes one card's total pass-candidate score, per the
// §4.5 component list.
func scoreCard(ctx Context, c cards.Card) float64 {
	w := ctx.Weights
	score := liabilityBonus(ctx, w, c)
	score += voidBonus(ctx, w, c)
	score += directionBonus(ctx, w, c)
	score += moonSupport(ctx, w, c)

	if ctx.Scoreboard.Total(ctx.Seat) >= 75 {
		score += float64(c.PenaltyValue()) * w.DesperationBonusPerPoint
	}
	score += float64(ctx.CardsPlayed) * w.LateRoundPerCard

	if c == (cards.Card{Rank: cards.Two, Suit: cards.Clubs}) {
		score -= w.TwoClubsRetentionPenalty
	}
	if ctx.Tracker != nil && ctx.Tracker.IsUnseen(c) {
		score += w.UnseenBonus
	}

	switch ctx.Style {
	case style.AggressiveMoon:
		score += aggressiveMoonAdjustment(ctx, w, c)
	case style.HuntLeader:
		score += huntLeaderAdjustment(ctx, w, c)
	}
	return score
}

// liabilityBonus scores the card's raw penalty liability, then — when
// a belief table is available — scales it by threatProbability, the
// way scoring.rs's compute_liability_reduction multiplies by the
// opponents' combined holding probability for that exact card: a card
// the belief table thinks is more likely already concentrated in a
// single threatening hand is worth offloading more eagerly than the
// base liability alone suggests.
func liabilityBonus(ctx Context, w Weights, c cards.Card) float64 {
	var score float64
	switch {
	case c.IsQueenOfSpades():
		score = w.QueenLiabilityBonus
	case c.Suit == cards.Spades && c.Rank >= cards.Jack:
		score = w.HighSpadeLiabilityBonus
	case c.IsHeart():
		score = float64(c.Rank) * w.HeartLiabilityPerRank
	default:
		return 0
	}
	if ctx.Belief != nil {
		score *= clampf(threatProbability(ctx.Belief, c), 0.8, 2.0)
	}
	return score
}

// voidBonus scores the void/near-void progress created by passing
// this card, then — when a belief table is available — scales it by
// voidProbabilityAfterPass, the share of the suit's mass the belief
// table has not attributed to the perspective seat: a suit the seat
// is still believed to hold heavily is discounted, and a suit already
// mostly attributed elsewhere keeps more of its bonus.
func voidBonus(ctx Context, w Weights, c cards.Card) float64 {
	suitCount := ctx.Hand.SuitCount(c.Suit)
	remaining := suitCount - 1
	var base float64
	switch remaining {
	case 0:
		base = w.VoidZeroBonus
	case 1:
		base = w.VoidOneBonus
	case 2:
		base = w.VoidTwoBonus
	default:
		if remaining >= 4 {
			return -w.LongSuitPenalty * float64(remaining-3)
		}
		return 0
	}
	if ctx.Belief != nil {
		base *= clampf(voidProbabilityAfterPass(ctx.Belief, ctx.Seat, c.Suit), 0.2, 1.5)
	}
	return base
}

// voidProbabilityAfterPass estimates how much of a suit's mass the
// belief table has NOT already attributed to seat: one minus the sum
// of seat's own weights across that suit's unseen cards.
func voidProbabilityAfterPass(b *belief.Belief, seat int, suit cards.Suit) float64 {
	mass := 0.0
	for _, w := range b.IterSuitProbs(seat, suit) {
		mass += w
	}
	prob := 1.0 - mass
	if prob < 0.05 {
		return 0.05
	}
	return prob
}

// threatProbability returns 1 plus the sum of every opponent's current
// weight for a specific card: higher means the belief table thinks that
// card is more concentrated in a single hand rather than spread thin.
func threatProbability(b *belief.Belief, c cards.Card) float64 {
	total := 0.0
	for seat := 0; seat < 4; seat++ {
		if seat == b.Perspective() {
			continue
		}
		total += b.ProbCard(seat, c)
	}
	return 1.0 + total
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// moonSupport discourages passing away a high-liability, high-control
// card (Q♠, a high heart) as this seat's own moon-shoot urgency rises:
// a hand that looks increasingly able to run the table wants to
// retain the cards that let it keep winning tricks, not give them to
// whichever opponent receives the pass. The discount sharpens past
// urgency 0.6 and further when the direction sends the pass to a seat
// positioned to exploit the ceded control.
func moonSupport(ctx Context, w Weights, c cards.Card) float64 {
	urgency := ctx.MoonEstimate.DefensiveUrgency()
	if urgency <= 0.01 {
		return 0
	}
	control := cardControlFactor(c)
	weight := w.MoonSupportBase
	if urgency >= 0.6 {
		highLiability := c.IsQueenOfSpades() || (c.IsHeart() && c.Rank >= cards.Queen)
		if highLiability {
			scale := clampf((urgency-0.6)/0.4, 0, 1)
			boost := 1.0 + 0.35*scale
			if ctx.Direction == passing.Left || ctx.Direction == passing.Across {
				boost += 0.2 * scale
			}
			weight *= boost
		}
	}
	return -urgency * control * weight
}

// cardControlFactor approximates how much trick-taking control a card
// represents, independent of its raw penalty value: Q♠ and the high
// spades command a trick outright, a heart's control scales with
// rank, anything else falls back to its penalty weight.
func cardControlFactor(c cards.Card) float64 {
	if c.IsQueenOfSpades() {
		return 1.6
	}
	if c.IsHeart() {
		return 0.9 + float64(c.Rank)/13.0
	}
	if c.Suit == cards.Spades && c.Rank >= cards.King {
		return 1.2
	}
	return float64(c.PenaltyValue()) * 0.18
}

func directionBonus(ctx Context, w Weights, c cards.Card) float64 {
	target := ctx.Direction.Target(ctx.Seat)
	penalty := float64(c.PenaltyValue())
	if penalty == 0 {
		return 0
	}
	switch target {
	case ctx.Scoreboard.HighestScoreSeat():
		return penalty * w.DirectionHighBonusPerPoint
	case ctx.Scoreboard.LowestScoreSeat():
		return -penalty * w.DirectionLowPenaltyPerPoint
	default:
		return 0
	}
}

func aggressiveMoonAdjustment(ctx Context, w Weights, c cards.Card) float64 {
	adj := 0.0
	if c.IsHeart() || c.IsQueenOfSpades() || (c.Suit == cards.Spades && c.Rank >= cards.Queen) {
		adj -= w.AggressiveLiabilityPenalty
	}
	remaining := ctx.Hand.SuitCount(c.Suit) - 1
	if remaining == 0 && c.Suit != cards.Hearts {
		adj += w.AggressiveVoidBonus
	}
	if c.Suit == cards.Spades && c.Rank == cards.Ace {
		adj -= w.AggressiveControlPenalty
	}
	return adj
}

func huntLeaderAdjustment(ctx Context, w Weights, c cards.Card) float64 {
	target := ctx.Direction.Target(ctx.Seat)
	if target != ctx.Scoreboard.HighestScoreSeat() {
		return 0
	}
	bonus := float64(c.PenaltyValue()) * w.HuntPerPenaltyBonus
	if ctx.Scoreboard.Total(ctx.Seat) <= ctx.Scoreboard.MinScore() {
		bonus *= w.HuntTrailingAmplify
	}
	return bonus
}

// Package normal implements the single-ply candidate scoring used to
// choose one play for the current trick, without lookahead.
package normal

import (
	"sort"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

// Weights are the Normal planner's tunable per-component scalars.
// The Hard planner's base_score reuses this same struct and scoring
// function, per §4.7's "Normal's base scoring" phrase.
type Weights struct {
	SelfCapturePerPenalty float64
	FeedPerPenalty        float64

	FollowHighRankPenalty float64
	FollowDumpBonus       float64

	LeadLowRankBonus      float64
	LeadVoidCreationBonus float64
	LeadHeartsPenalty     float64
	BreakHeartsPenalty    float64

	ProvisionalFeedPerCardOnTrick float64
	ProvisionalCapturePenalty     float64

	HuntLeaderLeadBonus      float64
	AggressiveMoonCaptureBonus float64

	DesperationScale float64 // multiplies the whole base score at my_score >= 90
}

// DefaultWeights mirrors §4.6's orientation values.
func DefaultWeights() Weights {
	return Weights{
		SelfCapturePerPenalty: -3.0,
		FeedPerPenalty:        2.0,

		FollowHighRankPenalty: -0.4,
		FollowDumpBonus:       2.5,

		LeadLowRankBonus:      0.3,
		LeadVoidCreationBonus: 4.0,
		LeadHeartsPenalty:     -2.0,
		BreakHeartsPenalty:    -0.5,

		ProvisionalFeedPerCardOnTrick: 1.2,
		ProvisionalCapturePenalty:     -1.5,

		HuntLeaderLeadBonus:        2.5,
		AggressiveMoonCaptureBonus: 3.0,

		DesperationScale: 1.6,
	}
}

// Context bundles everything the Normal planner consults for a
// single play decision. Seat and Scoreboard together determine who
// the "highest-score seat" (in trouble) and "lowest-score seat"
// (winning) are, the asymmetry the scoring rules key off of.
type Context struct {
	Seat          int
	Hand          *cards.Hand
	Trick         *trick.Trick
	HeartsBroken  bool
	Scoreboard    *scoreboard.Scoreboard
	Style         style.Style
	Weights       Weights
}

// BaseScore computes one legal card's situational score, per §4.6.
func BaseScore(ctx Context, c cards.Card) float64 {
	w := ctx.Weights
	score := 0.0

	willComplete := ctx.Trick.Size() == 3
	leading := ctx.Trick.IsEmpty()

	if willComplete {
		score += completionImpact(ctx, w, c)
	} else if !leading {
		score += followSuitImpact(ctx, w, c)
	} else {
		score += leadImpact(ctx, w, c)
	}

	if !leading {
		score += provisionalWinnerImpact(ctx, w, c)
	}

	switch ctx.Style {
	case style.HuntLeader:
		if leading && c.IsPenalty() {
			if ctx.Scoreboard.HighestScoreSeat() != ctx.Seat {
				score += w.HuntLeaderLeadBonus
			}
		}
	case style.AggressiveMoon:
		if willComplete && wouldWinTrick(ctx, c) {
			score += w.AggressiveMoonCaptureBonus
		}
	}

	if ctx.Scoreboard.Total(ctx.Seat) >= 90 {
		score *= w.DesperationScale
	}

	return score
}

// completionImpact simulates the penalty swing of a play that would
// complete the trick: negative for self if we win it, positive for
// feeding a non-self target.
func completionImpact(ctx Context, w Weights, c cards.Card) float64 {
	penalty := ctx.Trick.PenaltyTotal() + c.PenaltyValue()
	if wouldWinTrick(ctx, c) {
		return float64(penalty) * w.SelfCapturePerPenalty
	}
	return float64(penalty) * w.FeedPerPenalty * 0.25
}

// followSuitImpact penalizes high ranks (risking capture) and
// rewards dumping penalty cards when the seat cannot win the trick
// anyway.
func followSuitImpact(ctx Context, w Weights, c cards.Card) float64 {
	score := float64(c.Rank) * w.FollowHighRankPenalty
	if c.IsPenalty() && !wouldWinTrick(ctx, c) {
		score += w.FollowDumpBonus * float64(c.PenaltyValue())
	}
	return score
}

// leadImpact rewards low ranks and void creation, penalizes leading
// hearts before they are broken (already legal-move filtered, but
// still scored down to prefer alternatives when available), and adds
// a small penalty for breaking hearts prematurely.
func leadImpact(ctx Context, w Weights, c cards.Card) float64 {
	score := (float64(cards.Ace+1) - float64(c.Rank)) * w.LeadLowRankBonus
	remaining := ctx.Hand.SuitCount(c.Suit) - 1
	if remaining == 0 {
		score += w.LeadVoidCreationBonus
	}
	if c.IsHeart() {
		score += w.LeadHeartsPenalty
		if !ctx.HeartsBroken {
			score += w.BreakHeartsPenalty
		}
	}
	return score
}

// provisionalWinnerImpact adds a feed bonus scaled by how many cards
// are already on the trick when the seat currently winning is the
// scoreboard leader, or a capture-risk penalty when the seat
// currently winning is me.
func provisionalWinnerImpact(ctx Context, w Weights, c cards.Card) float64 {
	provisional := ctx.Trick.WinningSoFar()
	if provisional < 0 {
		return 0
	}
	cardsOnTrick := float64(ctx.Trick.Size())
	if provisional == ctx.Scoreboard.HighestScoreSeat() && provisional != ctx.Seat {
		return cardsOnTrick * w.ProvisionalFeedPerCardOnTrick
	}
	if provisional == ctx.Seat {
		onTable := ctx.Trick.PenaltyTotal()
		return float64(onTable) * w.ProvisionalCapturePenalty * 0.1
	}
	return 0
}

func wouldWinTrick(ctx Context, c cards.Card) bool {
	clone := ctx.Trick.Clone()
	clone.Play(ctx.Seat, c)
	return clone.WinningSoFar() == ctx.Seat
}

// Select scores every legal card and returns the one with the
// highest base score, ties broken by (suit, rank) ascending.
func Select(ctx Context, legal []cards.Card) cards.Card {
	type scoredCard struct {
		card  cards.Card
		score float64
	}
	scored := make([]scoredCard, len(legal))
	for i, c := range legal {
		scored[i] = scoredCard{card: c, score: BaseScore(ctx, c)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].card.Less(scored[j].card)
	})
	return scored[0].card
}

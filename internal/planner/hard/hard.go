// Package hard implements the bounded-lookahead play planner: Normal's
// single-ply base scoring extended, for a top-K window of candidates,
// with a continuation value decomposed into named, capped parts. An
// optional endgame perfect-play search and a leader-targeting nudge
// may additionally steer the choice without appearing on the explain
// surface, which always stays Normal-shaped.
package hard

import (
	"sort"

	"github.com/0x4D44/mdhearts-sub001/internal/belief"
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/config"
	"github.com/0x4D44/mdhearts-sub001/internal/planner/normal"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

// Context bundles everything the Hard planner consults for one play
// decision. Belief and AllHands are both optional: Belief unlocks
// belief-weighted continuation estimates and determinization sampling;
// AllHands (every seat's exact remaining hand) unlocks the endgame DP
// and is otherwise left nil, since real play never has full visibility
// into opponents' hands.
type Context struct {
	Seat          int
	Hand          *cards.Hand
	Trick         *trick.Trick
	HeartsBroken  bool
	Scoreboard    *scoreboard.Scoreboard
	Tracker       *tracker.UnseenTracker
	Belief        *belief.Belief
	Style         style.Style
	MoonState     tracker.MoonState
	NormalWeights normal.Weights
	Config        config.Config
	AllHands      [4]*cards.Hand
}

func (ctx Context) normalContext() normal.Context {
	return normal.Context{
		Seat:         ctx.Seat,
		Hand:         ctx.Hand,
		Trick:        ctx.Trick,
		HeartsBroken: ctx.HeartsBroken,
		Scoreboard:   ctx.Scoreboard,
		Style:        ctx.Style,
		Weights:      ctx.NormalWeights,
	}
}

// Parts is the additive decomposition of one candidate's continuation
// value, per §4.7. CappedDelta is the adjustment applied when the raw
// sum of the other parts exceeded the configured continuation cap, so
// that Sum() always equals the clamp of the raw sum.
type Parts struct {
	Feed        float64
	SelfCapture float64
	NextStart   float64
	NextProbe   float64
	QSRisk      float64
	CtrlHearts  float64
	CtrlHandoff float64
	MoonRelief  float64
	CappedDelta float64
}

// Sum returns the (already capped) total contribution of every part.
func (p Parts) Sum() float64 {
	return p.Feed + p.SelfCapture + p.NextStart + p.NextProbe + p.QSRisk +
		p.CtrlHearts + p.CtrlHandoff + p.MoonRelief + p.CappedDelta
}

// Candidate is one legal card's explain-surface entry: Base is
// Normal's single-ply score, Parts/Total are populated only for
// candidates inside the Phase B top-K window (Probed == true);
// candidates outside it keep Total == Base.
type Candidate struct {
	Card   cards.Card
	Base   float64
	Parts  Parts
	Total  float64
	Probed bool
}

// Result is the outcome of one Select call.
type Result struct {
	Chosen     cards.Card
	Candidates []Candidate
	NudgeFired bool
	Stats      Stats
}

// Stats is the optional last-search-statistics record (§5, §D.2):
// exposed alongside the chosen card for tooling to inspect, never
// consulted by the decision itself.
type Stats struct {
	StepsUsed   int
	StepsCap    int
	DPRan       bool
	DPCacheHits int
	NudgeFired  bool
}

// Select runs the Hard planner, per §4.7:
//
//	base[c]        = Normal.base_score(c) for every legal card
//	top K (by base) get a continuation value, capped and decomposed into Parts
//	the rest keep total == base
//	an optional endgame DP and planner nudge may additionally adjust the
//	internal choose-surface score without changing the reported Candidates
//
// The final pick is the argmax of the choose-surface score, deterministic
// (suit, rank) tiebreak.
func Select(ctx Context, legal []cards.Card) Result {
	base := make(map[cards.Card]float64, len(legal))
	nctx := ctx.normalContext()
	for _, c := range legal {
		base[c] = normal.BaseScore(nctx, c)
	}

	ordered := make([]cards.Card, len(legal))
	copy(ordered, legal)
	sort.SliceStable(ordered, func(i, j int) bool {
		if base[ordered[i]] != base[ordered[j]] {
			return base[ordered[i]] > base[ordered[j]]
		}
		return ordered[i].Less(ordered[j])
	})

	topK := ctx.Config.HardPhaseBTopK
	if topK > len(ordered) {
		topK = len(ordered)
	}

	est := newEstimator(ctx)
	budget := newStepBudget(ctx.Config.HardTestSteps)

	candidates := make([]Candidate, len(ordered))
	runningBest := negInf
	for i, c := range ordered {
		b := base[c]
		if i >= topK {
			candidates[i] = Candidate{Card: c, Base: b, Total: b}
			continue
		}
		// Alpha-beta-like pruning: once a candidate's base score trails
		// the running best (base + continuation so far) by more than
		// ab_margin, its probe contribution is treated as zero. Every
		// other part is still computed, so pruning only ever removes
		// next_probe's (bounded) share of the total.
		probeAllowed := b >= runningBest-ctx.Config.HardABMargin
		parts := computeContinuation(ctx, est, budget, c, probeAllowed)
		total := b + parts.Sum()
		candidates[i] = Candidate{Card: c, Base: b, Parts: parts, Total: total, Probed: true}
		if total > runningBest {
			runningBest = total
		}
	}

	decision := make(map[cards.Card]float64, len(candidates))
	for _, cand := range candidates {
		decision[cand.Card] = cand.Total
	}

	// Endgame DP: transparent to explain, opaque to choose (§4.7).
	stats := Stats{StepsUsed: budget.used, StepsCap: budget.cap}
	if dp, hits, ok := endgameDP(ctx); ok {
		stats.DPRan = true
		stats.DPCacheHits = hits
		for c, v := range dp {
			decision[c] = base[c] + v
		}
	}

	stats.NudgeFired = applyNudge(ctx, candidates, decision)

	return Result{Chosen: argmax(ordered, decision), Candidates: candidates, NudgeFired: stats.NudgeFired, Stats: stats}
}

const negInf = -1e18

func argmax(ordered []cards.Card, decision map[cards.Card]float64) cards.Card {
	best := ordered[0]
	bestScore := decision[best]
	for _, c := range ordered[1:] {
		s := decision[c]
		if s > bestScore || (s == bestScore && c.Less(best)) {
			best = c
			bestScore = s
		}
	}
	return best
}

// applyNudge implements §4.7's planner nudge: when the argmax is a
// near-tie and the scoreboard has a unique leader close enough to 100
// to be worth targeting, every candidate whose feed part already
// targets that leader receives a fixed bonus, and the choose-surface
// scores are updated in place. It reports whether the nudge fired at
// all, independent of whether it actually changed the winner.
func applyNudge(ctx Context, candidates []Candidate, decision map[cards.Card]float64) bool {
	if len(candidates) < 2 {
		return false
	}
	leaderSeat := ctx.Scoreboard.HighestScoreSeat()
	if leaderSeat == ctx.Seat || !uniqueHighest(ctx.Scoreboard) {
		return false
	}
	threshold := 100 * (1 - ctx.Config.HardPlannerNudgeNear100)
	if float64(ctx.Scoreboard.Total(leaderSeat)) < threshold {
		return false
	}

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := decision[ranked[i].Card], decision[ranked[j].Card]
		if si != sj {
			return si > sj
		}
		return ranked[i].Card.Less(ranked[j].Card)
	})
	gap := decision[ranked[0].Card] - decision[ranked[1].Card]
	if gap < ctx.Config.HardPlannerNudgeGapMin || gap > ctx.Config.HardPlannerMaxBaseForNudge {
		return false
	}

	fired := false
	for _, cand := range candidates {
		if cand.Probed && cand.Parts.Feed != 0 {
			decision[cand.Card] += ctx.Config.HardPlannerLeaderFeedNudge
			fired = true
		}
	}
	return fired
}

func uniqueHighest(sb *scoreboard.Scoreboard) bool {
	totals := sb.Totals()
	best := totals[0]
	for _, t := range totals[1:] {
		if t > best {
			best = t
		}
	}
	count := 0
	for _, t := range totals {
		if t == best {
			count++
		}
	}
	return count == 1
}

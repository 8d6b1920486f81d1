package hard

import (
	"math/rand"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
)

// estimator answers the belief-dependent questions the continuation
// value needs (does a seat hold a suit, how much penalty does it
// hold) from whichever source is configured: plain belief-weighted
// expectation by default, or an average over sampled determinized
// worlds when HardDetEnable is set. Both paths are pure functions of
// ctx (and, for sampling, the belief summary hash), so two calls with
// identical input always agree.
type estimator struct {
	ctx    Context
	worlds []world
}

type world [4]map[cards.Card]bool

func newEstimator(ctx Context) estimator {
	e := estimator{ctx: ctx}
	if ctx.Config.HardDetEnable && ctx.Belief != nil && ctx.Tracker != nil {
		e.worlds = sampleWorlds(ctx, ctx.Config.HardDetSampleK)
	}
	return e
}

func (e estimator) voidProbability(seat int, suit cards.Suit) float64 {
	if e.ctx.Tracker != nil && e.ctx.Tracker.IsVoid(seat, suit) {
		return 1
	}
	if len(e.worlds) > 0 {
		voidCount := 0
		for _, w := range e.worlds {
			has := false
			for c := range w[seat] {
				if c.Suit == suit {
					has = true
					break
				}
			}
			if !has {
				voidCount++
			}
		}
		return float64(voidCount) / float64(len(e.worlds))
	}
	if e.ctx.Belief == nil {
		return 0
	}
	expected := 0.0
	for _, w := range e.ctx.Belief.IterSuitProbs(seat, suit) {
		expected += w
	}
	if expected >= 1 {
		return 0
	}
	return 1 - expected
}

// expectedPenaltyHeld returns the expected total penalty points a
// seat holds across its remaining hand.
func (e estimator) expectedPenaltyHeld(seat int) float64 {
	if len(e.worlds) > 0 {
		total := 0.0
		for _, w := range e.worlds {
			for c := range w[seat] {
				total += float64(c.PenaltyValue())
			}
		}
		return total / float64(len(e.worlds))
	}
	if e.ctx.Belief == nil || e.ctx.Tracker == nil {
		return 0
	}
	total := 0.0
	for _, c := range e.ctx.Tracker.Unseen() {
		total += e.ctx.Belief.ProbCard(seat, c) * float64(c.PenaltyValue())
	}
	return total
}

// avgPenaltyPerCard returns the expected penalty value of one
// arbitrary card drawn from seat's remaining hand, used to value a
// single off-suit dump.
func (e estimator) avgPenaltyPerCard(seat int) float64 {
	if e.ctx.Belief == nil {
		return 0
	}
	handSize := e.ctx.Belief.RemainingHandSize(seat)
	if handSize <= 0 {
		return 0
	}
	return e.expectedPenaltyHeld(seat) / handSize
}

// sampleWorlds draws K plausible full assignments of every unseen
// card to an opponent seat, weighted by the belief table, using a
// generator seeded from the belief's summary hash so that a fixed
// belief state always reproduces the same K worlds.
func sampleWorlds(ctx Context, k int) []world {
	if k <= 0 {
		return nil
	}
	unseen := ctx.Tracker.Unseen()
	rng := rand.New(rand.NewSource(int64(ctx.Belief.SummaryHash())))

	worlds := make([]world, k)
	for i := range worlds {
		worlds[i] = sampleOneWorld(ctx, unseen, rng)
	}
	return worlds
}

func sampleOneWorld(ctx Context, unseen []cards.Card, rng *rand.Rand) world {
	var w world
	for s := range w {
		w[s] = make(map[cards.Card]bool)
	}
	remaining := [4]float64{}
	for s := 0; s < 4; s++ {
		if s != ctx.Belief.Perspective() {
			remaining[s] = ctx.Belief.RemainingHandSize(s)
		}
	}

	for _, c := range unseen {
		var weights [4]float64
		total := 0.0
		for s := 0; s < 4; s++ {
			if s == ctx.Belief.Perspective() || remaining[s] <= 0 {
				continue
			}
			weights[s] = ctx.Belief.ProbCard(s, c)
			total += weights[s]
		}
		if total <= 0 {
			continue
		}
		r := rng.Float64() * total
		cum := 0.0
		chosen := -1
		for s := 0; s < 4; s++ {
			if weights[s] <= 0 {
				continue
			}
			cum += weights[s]
			if r <= cum {
				chosen = s
				break
			}
		}
		if chosen == -1 {
			continue
		}
		w[chosen][c] = true
		remaining[chosen]--
	}
	return w
}

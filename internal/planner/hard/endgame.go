package hard

import (
	"sort"
	"strconv"
	"strings"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

// endgameDP implements §4.7's optional endgame perfect-play search: it
// is only applicable when AllHands gives every seat's exact remaining
// cards and no hand exceeds HardEndgameMaxCards, matching how a real
// double-dummy solve only stays tractable for a handful of cards per
// hand. Its per-card contribution is meant to replace the continuation
// value on the *choose* surface only; callers keep showing the
// Normal-style explain surface regardless of whether the DP ran.
func endgameDP(ctx Context) (map[cards.Card]float64, int, bool) {
	if !ctx.Config.HardEndgameDPEnable {
		return nil, 0, false
	}
	for _, h := range ctx.AllHands {
		if h == nil || h.Size() > ctx.Config.HardEndgameMaxCards {
			return nil, 0, false
		}
	}

	hands := [4][]cards.Card{}
	for s := 0; s < 4; s++ {
		hands[s] = ctx.AllHands[s].Cards()
	}

	dp := &dpSolver{memo: make(map[string][4]int)}
	leaderSeat := ctx.Scoreboard.HighestScoreSeat()
	values := make(map[cards.Card]float64, len(hands[ctx.Seat]))

	for _, c := range hands[ctx.Seat] {
		h2 := cloneHands(hands)
		h2[ctx.Seat] = removeCard(h2[ctx.Seat], c)
		t2 := ctx.Trick.Clone()
		t2.Play(ctx.Seat, c)

		outcome := dp.resolveTrick(h2, t2)

		opponentBurden := 0
		for s := 0; s < 4; s++ {
			if s != ctx.Seat {
				opponentBurden += outcome[s]
			}
		}
		raw := float64(opponentBurden)/3 - float64(outcome[ctx.Seat])
		if leaderSeat != ctx.Seat {
			raw += float64(outcome[leaderSeat]) * 0.1
		}
		values[c] = clampf(raw, ctx.Config.HardContCap)
	}
	return values, dp.cacheHits, true
}

// dpSolver holds the memo table and cache-hit counter for one
// endgameDP invocation, reported back as part of Stats.
type dpSolver struct {
	memo      map[string][4]int
	cacheHits int
}

// resolveTrick plays out a (possibly already-started) trick and every
// subsequent one to exhaustion, each seat minimizing its own eventual
// penalty total, memoized by the reduced (hands, trick-so-far) state.
func (dp *dpSolver) resolveTrick(hands [4][]cards.Card, tr *trick.Trick) [4]int {
	if tr.IsComplete() {
		winner := tr.Winner()
		penalty := tr.PenaltyTotal()
		if allEmpty(hands) {
			var out [4]int
			out[winner] = penalty
			return out
		}
		rest := dp.resolveTrick(hands, trick.New(winner))
		rest[winner] += penalty
		return rest
	}

	key := encodeState(hands, tr)
	if cached, ok := dp.memo[key]; ok {
		dp.cacheHits++
		return cached
	}

	seat := tr.NextSeat()
	legal := legalPlaysFor(hands[seat], tr)
	var best [4]int
	bestSet := false
	for _, c := range legal {
		h2 := cloneHands(hands)
		h2[seat] = removeCard(h2[seat], c)
		t2 := tr.Clone()
		t2.Play(seat, c)
		outcome := dp.resolveTrick(h2, t2)
		if !bestSet || outcome[seat] < best[seat] {
			best = outcome
			bestSet = true
		}
	}
	dp.memo[key] = best
	return best
}

func legalPlaysFor(hand []cards.Card, tr *trick.Trick) []cards.Card {
	sorted := append([]cards.Card{}, hand...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	if tr.IsEmpty() {
		return sorted
	}
	lead := tr.LeadSuit()
	var followers []cards.Card
	for _, c := range sorted {
		if c.Suit == lead {
			followers = append(followers, c)
		}
	}
	if len(followers) > 0 {
		return followers
	}
	return sorted
}

func encodeState(hands [4][]cards.Card, tr *trick.Trick) string {
	var sb strings.Builder
	for s := 0; s < 4; s++ {
		sorted := append([]cards.Card{}, hands[s]...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
		for _, c := range sorted {
			sb.WriteString(strconv.Itoa(int(c.Suit)))
			sb.WriteString(strconv.Itoa(int(c.Rank)))
		}
		sb.WriteByte('|')
	}
	for _, p := range tr.Plays() {
		sb.WriteString(strconv.Itoa(p.Seat))
		sb.WriteString(strconv.Itoa(int(p.Card.Suit)))
		sb.WriteString(strconv.Itoa(int(p.Card.Rank)))
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(tr.Leader()))
	return sb.String()
}

func cloneHands(hands [4][]cards.Card) [4][]cards.Card {
	var out [4][]cards.Card
	for s := range hands {
		out[s] = append([]cards.Card{}, hands[s]...)
	}
	return out
}

func removeCard(hand []cards.Card, c cards.Card) []cards.Card {
	out := make([]cards.Card, 0, len(hand))
	removed := false
	for _, hc := range hand {
		if !removed && hc == c {
			removed = true
			continue
		}
		out = append(out, hc)
	}
	return out
}

func allEmpty(hands [4][]cards.Card) bool {
	for _, h := range hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

// Package belief maintains, from one seat's perspective, a
// probability table over which opponent holds each unseen card, and
// applies both deterministic (reveal, void-inference) and soft
// (behavioral) updates to it.
package belief

import (
	"hash/fnv"
	"math"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
)

const defaultMinFactor = 0.1

// Belief is a 4x52 non-negative weight table: row[seat][card] is the
// (unnormalized-to-1 at the deck level, but per-card-normalized
// across opponent rows) approximate probability that seat holds card.
// The perspective seat's own row is always exact.
type Belief struct {
	perspective  int
	weights      [4]map[cards.Card]float64
	queenFactor  float64
	sloughFactor float64
	minFactor    float64
}

// New builds a belief table for the perspective seat, given that
// seat's own hand and the set of cards already publicly revealed
// (and therefore weight 0 everywhere). Every unseen card not in the
// perspective's hand starts uniform (1/3) across the three opponent
// rows, then each opponent row is renormalized to that seat's
// remaining hand size.
func New(perspective int, ownHand []cards.Card, revealed []cards.Card, handSizes [4]int) *Belief {
	b := &Belief{perspective: perspective, queenFactor: 0.65, sloughFactor: 1.15, minFactor: defaultMinFactor}
	for seat := range b.weights {
		b.weights[seat] = make(map[cards.Card]float64, 52)
	}

	own := make(map[cards.Card]bool, len(ownHand))
	for _, c := range ownHand {
		own[c] = true
	}
	gone := make(map[cards.Card]bool, len(revealed))
	for _, c := range revealed {
		gone[c] = true
	}

	opponents := opponentSeats(perspective)
	for _, c := range cards.AllCards() {
		switch {
		case own[c]:
			b.weights[perspective][c] = 1
		case gone[c]:
			// weight 0 everywhere; leave maps unset (default 0).
		default:
			for _, seat := range opponents {
				b.weights[seat][c] = 1.0 / 3.0
			}
		}
	}
	for _, seat := range opponents {
		b.renormalizeRow(seat, float64(handSizes[seat]))
	}
	return b
}

// SetSoftFactors overrides the default queen-avoidance (0.65),
// penalty-slough (1.15), and minimum-weight (0.1) multipliers, as
// configured.
func (b *Belief) SetSoftFactors(queenFactor, sloughFactor, minFactor float64) {
	b.queenFactor = queenFactor
	b.sloughFactor = sloughFactor
	b.minFactor = minFactor
}

func opponentSeats(perspective int) []int {
	out := make([]int, 0, 3)
	for s := 0; s < 4; s++ {
		if s != perspective {
			out = append(out, s)
		}
	}
	return out
}

// Perspective returns the seat this belief table reasons from.
func (b *Belief) Perspective() int { return b.perspective }

// ProbCard returns the current weight of seat holding card.
func (b *Belief) ProbCard(seat int, c cards.Card) float64 { return b.weights[seat][c] }

// IterSuitProbs returns seat's current weight for every card of suit
// that has an entry in seat's row, in canonical rank order. Only the
// weights are returned, not the cards.
func (b *Belief) IterSuitProbs(seat int, suit cards.Suit) []float64 {
	out := make([]float64, 0, 13)
	for _, r := range cards.AllRanks {
		c := cards.Card{Rank: r, Suit: suit}
		if w, ok := b.weights[seat][c]; ok {
			out = append(out, w)
		}
	}
	return out
}

// Reveal sets row(S)[C] = 1 and row(T)[C] = 0 for every T != S, then
// renormalizes every opponent row to its seat's remaining hand size.
func (b *Belief) Reveal(seat int, c cards.Card, handSizes [4]int) {
	for s := 0; s < 4; s++ {
		if s == seat {
			b.weights[s][c] = 1
		} else {
			delete(b.weights[s], c)
		}
	}
	for _, s := range opponentSeats(b.perspective) {
		b.renormalizeRow(s, float64(handSizes[s]))
	}
}

// NoteVoid records that seat failed to follow suit, zeroing its
// weight for every card of that suit and redistributing the
// displaced mass onto the other opponent rows proportionally to
// their existing weight for those same cards (conservation of total
// mass per card).
func (b *Belief) NoteVoid(seat int, suit cards.Suit) {
	others := make([]int, 0, 2)
	for _, s := range opponentSeats(b.perspective) {
		if s != seat {
			others = append(others, s)
		}
	}
	for _, r := range cards.AllRanks {
		c := cards.Card{Rank: r, Suit: suit}
		removed, had := b.weights[seat][c]
		if !had || removed == 0 {
			delete(b.weights[seat], c)
			continue
		}
		delete(b.weights[seat], c)
		total := 0.0
		for _, o := range others {
			total += b.weights[o][c]
		}
		if total == 0 {
			if len(others) > 0 {
				share := removed / float64(len(others))
				for _, o := range others {
					b.weights[o][c] += share
				}
			}
			continue
		}
		for _, o := range others {
			b.weights[o][c] += removed * (b.weights[o][c] / total)
		}
	}
}

// ApplyQueenAvoidance applies the queen-avoidance soft update: when
// the lead suit is spades and seat plays a spade ranked below queen,
// Q♠'s weight at seat is scaled down by the configured factor
// (default 0.65), floored at the configured minimum weight before
// being applied, then the row is renormalized to handSize.
func (b *Belief) ApplyQueenAvoidance(seat int, leadSuit cards.Suit, played cards.Card, handSize int) {
	if seat == b.perspective {
		return
	}
	if leadSuit != cards.Spades || played.Suit != cards.Spades || played.Rank >= cards.Queen {
		return
	}
	b.scale(seat, cards.QueenOfSpades, math.Max(b.queenFactor, b.minFactor), handSize)
}

// ApplyPenaltySlough applies the penalty-slough soft update: when
// seat plays an off-suit penalty card while void in the lead suit,
// every heart-row entry for seat is scaled up by the configured
// factor (default 1.15), floored at the configured minimum weight
// before being applied, then the row is renormalized to handSize.
func (b *Belief) ApplyPenaltySlough(seat int, playedOffSuit bool, played cards.Card, handSize int) {
	if seat == b.perspective {
		return
	}
	if !playedOffSuit || !played.IsPenalty() {
		return
	}
	factor := math.Max(b.sloughFactor, b.minFactor)
	for _, r := range cards.AllRanks {
		c := cards.Card{Rank: r, Suit: cards.Hearts}
		b.scaleNoRenorm(seat, c, factor)
	}
	b.renormalizeRow(seat, float64(handSize))
}

func (b *Belief) scale(seat int, c cards.Card, factor float64, handSize int) {
	b.scaleNoRenorm(seat, c, factor)
	b.renormalizeRow(seat, float64(handSize))
}

func (b *Belief) scaleNoRenorm(seat int, c cards.Card, factor float64) {
	w, ok := b.weights[seat][c]
	if !ok {
		return
	}
	b.weights[seat][c] = w * factor
}

// renormalizeRow scales every non-zero entry in an opponent row
// proportionally so the row sums to target (the seat's remaining
// hand size).
func (b *Belief) renormalizeRow(seat int, target float64) {
	sum := 0.0
	for _, w := range b.weights[seat] {
		sum += w
	}
	if sum == 0 {
		return
	}
	scale := target / sum
	for c, w := range b.weights[seat] {
		b.weights[seat][c] = w * scale
	}
}

// SummaryHash returns a stable, coarse hash of the belief table, used
// to seed determinization sampling: it hashes the perspective seat and
// each seat's rounded-to-hundredths weight for every one of the 52
// cards (zero weights included), in deterministic card order.
func (b *Belief) SummaryHash() uint64 {
	h := fnv.New64a()
	write := func(bs []byte) { h.Write(bs) }
	write([]byte{byte(b.perspective)})
	for _, c := range cards.AllCards() {
		for seat := 0; seat < 4; seat++ {
			w := b.weights[seat][c]
			bucket := int(w*100 + 0.5)
			write([]byte{byte(seat), byte(bucket >> 8), byte(bucket)})
		}
	}
	return h.Sum64()
}

// RemainingHandSize returns the row sum for a seat, which must equal
// that seat's actual remaining card count under the invariant.
func (b *Belief) RemainingHandSize(seat int) float64 {
	sum := 0.0
	for _, w := range b.weights[seat] {
		sum += w
	}
	return sum
}

package cards

import "math/rand"

// Deck is the full 52-card Hearts deck.
type Deck struct {
	cards []Card
}

// NewDeck builds the 52 distinct cards, in canonical (suit, rank) order.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, s := range AllSuits {
		for _, r := range AllRanks {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// Shuffle randomizes the deck order using the given deterministic RNG.
// Shuffling from a seeded *rand.Rand (rather than an ambient global
// source) is what makes a Match reconstructible byte-identically from
// a seed.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Cards returns a copy of the deck's current card order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// DealFour deals all 52 cards evenly to four hands, 13 apiece, in
// round-robin order starting at seat 0.
func DealFour(d *Deck) [4]*Hand {
	var hands [4]*Hand
	for i := range hands {
		hands[i] = NewHand()
	}
	for i, c := range d.cards {
		hands[i%4].Add(c)
	}
	return hands
}

// FindTwoOfClubs locates which of the four hands holds 2♣, the
// mandatory opening lead.
func FindTwoOfClubs(hands [4]*Hand) int {
	target := Card{Rank: Two, Suit: Clubs}
	for seat, h := range hands {
		if h.Contains(target) {
			return seat
		}
	}
	return -1
}

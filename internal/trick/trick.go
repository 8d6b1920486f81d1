// Package trick models a single trick: the leader, the plays made so
// far in rotation, the lead suit, the winner, and the penalty total.
package trick

import "github.com/0x4D44/mdhearts-sub001/internal/cards"

// Play is one card played by one seat during a trick.
type Play struct {
	Seat int
	Card cards.Card
}

// Trick holds up to four plays in rotation starting at Leader.
type Trick struct {
	leader int
	plays  []Play
}

// New starts a new, empty trick led by the given seat.
func New(leader int) *Trick {
	return &Trick{leader: leader, plays: make([]Play, 0, 4)}
}

// Leader returns the seat that led this trick.
func (t *Trick) Leader() int { return t.leader }

// Size returns the number of cards played so far.
func (t *Trick) Size() int { return len(t.plays) }

// IsEmpty reports whether no card has been played yet.
func (t *Trick) IsEmpty() bool { return len(t.plays) == 0 }

// IsComplete reports whether all four seats have played.
func (t *Trick) IsComplete() bool { return len(t.plays) == 4 }

// Plays returns a copy of the plays made so far, in rotation order.
func (t *Trick) Plays() []Play {
	out := make([]Play, len(t.plays))
	copy(out, t.plays)
	return out
}

// NextSeat returns the seat whose turn it is to play next. Valid only
// while the trick is incomplete.
func (t *Trick) NextSeat() int {
	return (t.leader + len(t.plays)) % 4
}

// LeadSuit returns the suit of the first card played. Only
// meaningful once the trick is non-empty.
func (t *Trick) LeadSuit() cards.Suit {
	if len(t.plays) == 0 {
		return cards.Clubs
	}
	return t.plays[0].Card.Suit
}

// HasSeatPlayed reports whether the given seat has already played in
// this trick.
func (t *Trick) HasSeatPlayed(seat int) bool {
	for _, p := range t.plays {
		if p.Seat == seat {
			return true
		}
	}
	return false
}

// Play records a card played by a seat. It does not itself validate
// legality, ordering, or turn order beyond the contiguous-rotation
// invariant expressed by NextSeat; callers (round.State) enforce
// the full legal-move rule before calling this.
func (t *Trick) Play(seat int, c cards.Card) {
	t.plays = append(t.plays, Play{Seat: seat, Card: c})
}

// Winner returns the seat holding the highest-rank card of the lead
// suit. Only defined once the trick is complete; returns -1 otherwise.
func (t *Trick) Winner() int {
	if !t.IsComplete() {
		return -1
	}
	lead := t.LeadSuit()
	winner := t.plays[0]
	for _, p := range t.plays[1:] {
		if p.Card.Suit == lead && (winner.Card.Suit != lead || p.Card.Rank > winner.Card.Rank) {
			winner = p
		}
	}
	return winner.Seat
}

// WinningSoFar returns the seat currently winning an in-progress or
// complete trick (the provisional winner used by the play planners).
func (t *Trick) WinningSoFar() int {
	if len(t.plays) == 0 {
		return -1
	}
	lead := t.LeadSuit()
	winner := t.plays[0]
	for _, p := range t.plays[1:] {
		if p.Card.Suit == lead && (winner.Card.Suit != lead || p.Card.Rank > winner.Card.Rank) {
			winner = p
		}
	}
	return winner.Seat
}

// PenaltyTotal sums the penalty value of every card played to this
// trick.
func (t *Trick) PenaltyTotal() int {
	total := 0
	for _, p := range t.plays {
		total += p.Card.PenaltyValue()
	}
	return total
}

// ContainsPenaltyCard reports whether any heart or Q♠ has been played
// to this trick.
func (t *Trick) ContainsPenaltyCard() bool {
	for _, p := range t.plays {
		if p.Card.IsPenalty() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the trick.
func (t *Trick) Clone() *Trick {
	c := &Trick{leader: t.leader, plays: make([]Play, len(t.plays))}
	copy(c.plays, t.plays)
	return c
}

// Package tracker maintains the per-round public-information state
// shared by every planner: which cards remain unseen, which seats are
// known void in which suits, and each seat's declared moon intent.
package tracker

import (
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/round"
)

// MoonState is a seat's self-declared shoot-the-moon intent. It is
// never inferred from another seat's play; only a planner acting for
// that seat sets it.
type MoonState int

const (
	Inactive MoonState = iota
	Considering
	Committed
)

func (s MoonState) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Considering:
		return "Considering"
	case Committed:
		return "Committed"
	default:
		return "Unknown"
	}
}

// UnseenTracker holds the deck complement (cards not yet known to any
// specific seat by publication), a 4x4 void matrix, and per-seat moon
// state. All operations are total: there is no error taxonomy here.
type UnseenTracker struct {
	unseen map[cards.Card]bool
	voids  [4][4]bool // voids[seat][suit]
	moon   [4]MoonState
}

// New builds a tracker with every card unseen and no voids recorded.
func New() *UnseenTracker {
	t := &UnseenTracker{unseen: make(map[cards.Card]bool, 52)}
	for _, c := range cards.AllCards() {
		t.unseen[c] = true
	}
	return t
}

// ResetForRound rebuilds the unseen set from a round's revealed
// cards: everything not yet played in this round is unseen, and
// per-seat voids/moon state reset to the round's start.
func (t *UnseenTracker) ResetForRound(r *round.State) {
	t.unseen = make(map[cards.Card]bool, 52)
	for _, c := range cards.AllCards() {
		t.unseen[c] = true
	}
	for _, c := range r.CardsRevealed() {
		delete(t.unseen, c)
	}
	t.voids = [4][4]bool{}
	t.moon = [4]MoonState{}
}

// IsUnseen reports whether a card has not yet been revealed.
func (t *UnseenTracker) IsUnseen(c cards.Card) bool { return t.unseen[c] }

// Unseen returns a stable-ordered slice of every unseen card.
func (t *UnseenTracker) Unseen() []cards.Card {
	out := make([]cards.Card, 0, len(t.unseen))
	for _, c := range cards.AllCards() {
		if t.unseen[c] {
			out = append(out, c)
		}
	}
	return out
}

// NoteCardPlayed removes a card from the unseen set and, when the
// seat failed to follow the trick's lead suit despite having been
// obligated to, marks that seat void in the lead suit. hadLeadSuit
// reports that follow obligation: pass false when the seat led the
// trick or there is nothing to check, and leadSuit is then ignored.
func (t *UnseenTracker) NoteCardPlayed(seat int, c cards.Card, leadSuit cards.Suit, hadLeadSuit bool) {
	delete(t.unseen, c)
	if hadLeadSuit && c.Suit != leadSuit {
		t.voids[seat][leadSuit] = true
	}
}

// NotePassSelection records the perspective seat's own outgoing pass.
// Opponents' passes are not observed here; they surface only once
// play reveals the cards.
func (t *UnseenTracker) NotePassSelection(seat int, selection []cards.Card) {
	for _, c := range selection {
		delete(t.unseen, c)
	}
}

// IsVoid reports whether seat has been observed failing to follow
// suit. Voids are monotonic: once set, never cleared.
func (t *UnseenTracker) IsVoid(seat int, suit cards.Suit) bool { return t.voids[seat][suit] }

// MoonState returns a seat's current declared moon intent.
func (t *UnseenTracker) MoonState(seat int) MoonState { return t.moon[seat] }

// SetMoonState updates a seat's declared moon intent.
func (t *UnseenTracker) SetMoonState(seat int, s MoonState) { t.moon[seat] = s }

// Restore rebuilds a tracker from an explicit unseen set, void matrix,
// and per-seat moon state, as read back from an endgame snapshot
// fixture rather than accumulated via live play.
func Restore(unseen []cards.Card, voids [4][4]bool, moon [4]MoonState) *UnseenTracker {
	t := &UnseenTracker{unseen: make(map[cards.Card]bool, len(unseen)), voids: voids, moon: moon}
	for _, c := range unseen {
		t.unseen[c] = true
	}
	return t
}

// ParseMoonState converts a moon-state token, as found in a persisted
// snapshot, back into a MoonState. Unknown tokens are signaled by
// ok=false; callers report the typed snapshot-parse error.
func ParseMoonState(s string) (MoonState, bool) {
	switch s {
	case "Inactive":
		return Inactive, true
	case "Considering":
		return Considering, true
	case "Committed":
		return Committed, true
	default:
		return 0, false
	}
}

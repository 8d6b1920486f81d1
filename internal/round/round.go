// Package round implements the 13-trick round lifecycle: dealing,
// passing, the legal-move rule, and hearts-broken tracking.
package round

import (
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

// Phase is the round's top-level lifecycle stage.
type Phase int

const (
	PhasePassing Phase = iota
	PhasePlaying
	PhaseRoundEnd
)

func (p Phase) String() string {
	switch p {
	case PhasePassing:
		return "Passing"
	case PhasePlaying:
		return "Playing"
	case PhaseRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// CompletedTrick is a finished trick kept in round history.
type CompletedTrick struct {
	Leader  int
	Plays   []trick.Play
	Winner  int
	Penalty int
}

// State is one round's full playable state: four hands, the passing
// exchange, the trick in progress, and the hearts-broken flag.
type State struct {
	hands        [4]*cards.Hand
	passState    *passing.State
	phase        Phase
	startingSeat int // holder of 2♣; set once passing resolves
	currentTrick *trick.Trick
	history      []CompletedTrick
	heartsBroken bool
}

// New deals the given hands into a new round, beginning in the
// Passing phase under the given direction (or straight into Playing
// for Hold).
func New(hands [4]*cards.Hand, direction passing.Direction) *State {
	s := &State{
		hands:     hands,
		passState: passing.NewState(direction),
		phase:     PhasePassing,
	}
	if direction == passing.Hold {
		s.beginPlay()
	}
	return s
}

// Phase returns the round's current lifecycle stage.
func (s *State) Phase() Phase { return s.phase }

// Hand returns the live hand for a seat. Callers must not mutate the
// returned pointer's backing cards directly except through State's
// own methods.
func (s *State) Hand(seat int) *cards.Hand { return s.hands[seat] }

// PassState exposes the passing exchange for submission and
// inspection.
func (s *State) PassState() *passing.State { return s.passState }

// HeartsBroken reports whether a heart has been played this round.
func (s *State) HeartsBroken() bool { return s.heartsBroken }

// IsFirstTrick reports whether the round's first trick is still in
// progress (or about to begin).
func (s *State) IsFirstTrick() bool { return len(s.history) == 0 }

// CurrentTrick returns the in-progress trick, or nil before play has
// begun.
func (s *State) CurrentTrick() *trick.Trick { return s.currentTrick }

// History returns the completed tricks so far, in order.
func (s *State) History() []CompletedTrick {
	out := make([]CompletedTrick, len(s.history))
	copy(out, s.history)
	return out
}

// ResolvePassing applies the pass exchange (a no-op for Hold) and
// transitions the round into the Playing phase with the holder of
// 2♣ leading the first trick.
func (s *State) ResolvePassing() error {
	if s.phase != PhasePassing {
		return newErr(ErrWrongPhase)
	}
	if err := s.passState.Resolve(s.hands); err != nil {
		return err
	}
	s.beginPlay()
	return nil
}

func (s *State) beginPlay() {
	two := cards.Card{Rank: cards.Two, Suit: cards.Clubs}
	leader := 0
	for seat, h := range s.hands {
		if h.Contains(two) {
			leader = seat
			break
		}
	}
	s.startingSeat = leader
	s.phase = PhasePlaying
	s.currentTrick = trick.New(leader)
}

// StartingSeat returns the seat that held 2♣ and led the first trick.
func (s *State) StartingSeat() int { return s.startingSeat }

// CurrentPlayer returns whose turn it is to play, or -1 if the round
// is not in the Playing phase.
func (s *State) CurrentPlayer() int {
	if s.phase != PhasePlaying || s.currentTrick == nil {
		return -1
	}
	return s.currentTrick.NextSeat()
}

// LegalMoves returns the subset of seat's hand that may legally be
// played right now.
func (s *State) LegalMoves(seat int) []cards.Card {
	if s.phase != PhasePlaying || s.CurrentPlayer() != seat {
		return nil
	}
	return LegalMovesFor(s.hands[seat], s.currentTrick, s.IsFirstTrick(), s.heartsBroken)
}

// LegalMovesFor implements the legal-move rule as a pure
// function of a hand and the trick state, so tooling outside a live
// round.State (a CLI reading a snapshot fixture, for instance) can
// compute the same legal set without replaying a full round.
func LegalMovesFor(hand *cards.Hand, t *trick.Trick, firstTrick, heartsBroken bool) []cards.Card {
	if firstTrick && t.IsEmpty() {
		two := cards.Card{Rank: cards.Two, Suit: cards.Clubs}
		if hand.Contains(two) {
			return []cards.Card{two}
		}
		return nil
	}

	if !t.IsEmpty() {
		lead := t.LeadSuit()
		if suited := hand.CardsOfSuit(lead); len(suited) > 0 {
			return suited
		}
		if firstTrick {
			var nonPenalty []cards.Card
			for _, c := range hand.Cards() {
				if !c.IsPenalty() {
					nonPenalty = append(nonPenalty, c)
				}
			}
			if len(nonPenalty) > 0 {
				return nonPenalty
			}
			return hand.Cards() // only penalty cards held
		}
		return hand.Cards()
	}

	// Leading a new trick, not the first trick.
	var nonHearts []cards.Card
	for _, c := range hand.Cards() {
		if !c.IsHeart() {
			nonHearts = append(nonHearts, c)
		}
	}
	if heartsBroken || len(nonHearts) == 0 {
		return hand.Cards()
	}
	return nonHearts
}

// ValidatePlay reports, with a specific taxonomy kind, whether seat
// may play card c right now.
func (s *State) ValidatePlay(seat int, c cards.Card) error {
	if s.phase != PhasePlaying {
		return newErr(ErrWrongPhase)
	}
	if s.CurrentPlayer() != seat {
		return newErr(ErrWrongTurn)
	}
	hand := s.hands[seat]
	if !hand.Contains(c) {
		return newErr(ErrNotInHand)
	}

	t := s.currentTrick
	firstTrick := s.IsFirstTrick()

	if firstTrick && t.IsEmpty() {
		if c != (cards.Card{Rank: cards.Two, Suit: cards.Clubs}) {
			return newErr(ErrFirstTrickMustPlayTwoClubs)
		}
		return nil
	}

	if !t.IsEmpty() {
		lead := t.LeadSuit()
		if hand.HasSuit(lead) {
			if c.Suit != lead {
				return newErr(ErrMustFollowSuit)
			}
			return nil
		}
		if firstTrick && c.IsPenalty() && !hand.HasOnlyPenaltyCards() {
			return newErr(ErrCannotPlayPenaltyOnFirstTrick)
		}
		return nil
	}

	if c.IsHeart() && !s.heartsBroken && !hand.HasOnlyHearts() {
		return newErr(ErrCannotLeadBeforeHeartsBroken)
	}
	return nil
}

// PlayCard validates and records a play. When the trick completes,
// it is scored, pushed into history, and a new trick begins led by
// the winner; when the 13th trick completes, the round moves to
// RoundEnd.
func (s *State) PlayCard(seat int, c cards.Card) error {
	if err := s.ValidatePlay(seat, c); err != nil {
		return err
	}
	s.hands[seat].Remove(c)
	s.currentTrick.Play(seat, c)
	if c.IsHeart() {
		s.heartsBroken = true
	}
	if s.currentTrick.IsComplete() {
		s.completeTrick()
	}
	return nil
}

func (s *State) completeTrick() {
	t := s.currentTrick
	winner := t.Winner()
	s.history = append(s.history, CompletedTrick{
		Leader:  t.Leader(),
		Plays:   t.Plays(),
		Winner:  winner,
		Penalty: t.PenaltyTotal(),
	})
	if len(s.history) >= 13 {
		s.phase = PhaseRoundEnd
		s.currentTrick = nil
		return
	}
	s.currentTrick = trick.New(winner)
}

// IsComplete reports whether every hand is empty and the round is
// over.
func (s *State) IsComplete() bool { return s.phase == PhaseRoundEnd }

// PenaltyTotals sums each seat's penalty points won via completed
// tricks this round. Only meaningful once IsComplete(); during play
// it reflects penalties captured so far.
func (s *State) PenaltyTotals() [4]int {
	var totals [4]int
	for _, ct := range s.history {
		totals[ct.Winner] += ct.Penalty
	}
	return totals
}

// CardsRevealed returns every card that has appeared in a completed
// trick or the current trick, used to seed tracker.UnseenTracker.
func (s *State) CardsRevealed() []cards.Card {
	var out []cards.Card
	for _, ct := range s.history {
		for _, p := range ct.Plays {
			out = append(out, p.Card)
		}
	}
	if s.currentTrick != nil {
		for _, p := range s.currentTrick.Plays() {
			out = append(out, p.Card)
		}
	}
	return out
}

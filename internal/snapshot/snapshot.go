// Package snapshot serializes and reconstructs match state (§2, §7,
// §8 property 11 of the decision core's contract). The core itself
// never serializes anything; this package is the one place a CLI, a
// test fixture, or a regression harness reaches for a JSON
// representation of a match or an in-progress round.
package snapshot

import (
	"encoding/json"
	"strconv"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/match"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

func validSeat(seat int) bool { return seat >= 0 && seat <= 3 }

// MatchSnapshot is the persisted live-play state: the seed and round
// number needed to byte-identically replay the deal, plus the
// denormalized direction/scores/starting-seat fields a reader can use
// without replaying anything. Field names are stable; unknown fields
// are ignored on load and missing ones take the documented defaults
// (scores zero, direction Left).
type MatchSnapshot struct {
	Seed         int64     `json:"seed"`
	RoundNumber  int       `json:"round_number"`
	Direction    string    `json:"direction"`
	Scores       [4]uint32 `json:"scores"`
	StartingSeat int       `json:"starting_seat"`
}

// DefaultMatchSnapshot returns the documented defaults for a snapshot
// with every field omitted: round 1, Left, all-zero scores, seat 0.
func DefaultMatchSnapshot() MatchSnapshot {
	return MatchSnapshot{RoundNumber: 1, Direction: passing.Left.String()}
}

// Capture records the given match's reconstructable state.
func Capture(m *match.Match) MatchSnapshot {
	dir := passing.DirectionForRound(m.RoundNumber())
	startingSeat := 0
	if r := m.Current(); r != nil {
		startingSeat = r.StartingSeat()
	}
	totals := m.Scoreboard().Totals()
	var scores [4]uint32
	for i, t := range totals {
		scores[i] = uint32(t)
	}
	return MatchSnapshot{
		Seed:         m.Seed(),
		RoundNumber:  m.RoundNumber(),
		Direction:    dir.String(),
		Scores:       scores,
		StartingSeat: startingSeat,
	}
}

// Restore reconstructs a match from a MatchSnapshot. The deck is
// replayed from (seed, round_number) exactly as match.Restore
// documents; direction and starting_seat are carried only as
// denormalized confirmation of what that replay already determines,
// since the parse-error taxonomy names no mismatch kind for them — a
// corrupt pairing is a caller bug, not a parse error this package
// reports.
func Restore(s MatchSnapshot) (*match.Match, error) {
	if _, ok := passing.ParseDirection(s.Direction); !ok {
		return nil, newErr(ErrUnknownDirection, "direction")
	}
	if !validSeat(s.StartingSeat) {
		return nil, newErr(ErrUnknownSeat, "starting_seat")
	}
	var scores [4]int
	for i, v := range s.Scores {
		scores[i] = int(v)
	}
	roundNumber := s.RoundNumber
	if roundNumber < 1 {
		roundNumber = 1
	}
	return match.Restore(s.Seed, roundNumber, scores), nil
}

// UnmarshalJSON fills in the documented defaults for any field the
// JSON payload omits, then overlays whatever the payload does supply.
// Unknown fields are silently ignored by encoding/json itself.
func (s *MatchSnapshot) UnmarshalJSON(data []byte) error {
	type alias MatchSnapshot
	def := alias(DefaultMatchSnapshot())
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	*s = MatchSnapshot(def)
	return nil
}

// cardToken is the wire representation of one card: a rank string
// ("2".."10","J","Q","K","A") and a suit string ("Clubs".."Hearts"),
// matching cards.Rank.String()/cards.Suit.String() exactly so a
// snapshot round-trips without a separate encode table.
type cardToken struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func encodeCard(c cards.Card) cardToken {
	return cardToken{Rank: c.Rank.String(), Suit: c.Suit.String()}
}

func decodeCard(t cardToken) (cards.Card, error) {
	r, ok := cards.ParseRank(t.Rank)
	if !ok {
		return cards.Card{}, newErr(ErrUnknownRank, t.Rank)
	}
	su, ok := cards.ParseSuit(t.Suit)
	if !ok {
		return cards.Card{}, newErr(ErrUnknownSuit, t.Suit)
	}
	return cards.Card{Rank: r, Suit: su}, nil
}

func encodeCards(cc []cards.Card) []cardToken {
	out := make([]cardToken, len(cc))
	for i, c := range cc {
		out[i] = encodeCard(c)
	}
	return out
}

func decodeCards(tt []cardToken) ([]cards.Card, error) {
	out := make([]cards.Card, len(tt))
	for i, t := range tt {
		c, err := decodeCard(t)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// trickPlayToken is one play recorded in an EndgameSnapshot's
// in-progress trick.
type trickPlayToken struct {
	Seat int       `json:"seat"`
	Card cardToken `json:"card"`
}

// EndgameSnapshot is the richer, full-knowledge fixture format used
// for testing and regression, not live play: every seat's exact
// remaining hand, the trick in progress, how many tricks have already
// completed, whether hearts are broken, the per-seat void suits, and
// each seat's declared moon state.
type EndgameSnapshot struct {
	Hands           *[4][]cardToken  `json:"hands"`
	TrickLeader     int              `json:"trick_leader"`
	Trick           []trickPlayToken `json:"trick"`
	CompletedTricks int              `json:"completed_tricks"`
	HeartsBroken    bool             `json:"hearts_broken"`
	VoidSuits       [4][]string      `json:"void_suits"`
	MoonStates      [4]string        `json:"moon_states"`
}

// CaptureEndgame records the exact remaining-play state needed to
// reproduce a mid-round decision in a test fixture.
func CaptureEndgame(hands [4]*cards.Hand, tr *trick.Trick, completedTricks int, heartsBroken bool, trk *tracker.UnseenTracker) EndgameSnapshot {
	var handTokens [4][]cardToken
	for s, h := range hands {
		handTokens[s] = encodeCards(h.Cards())
	}

	var plays []trickPlayToken
	leader := 0
	if tr != nil {
		leader = tr.Leader()
		for _, p := range tr.Plays() {
			plays = append(plays, trickPlayToken{Seat: p.Seat, Card: encodeCard(p.Card)})
		}
	}

	var voidSuits [4][]string
	var moonStates [4]string
	for seat := 0; seat < 4; seat++ {
		for _, su := range cards.AllSuits {
			if trk != nil && trk.IsVoid(seat, su) {
				voidSuits[seat] = append(voidSuits[seat], su.String())
			}
		}
		state := tracker.Inactive
		if trk != nil {
			state = trk.MoonState(seat)
		}
		moonStates[seat] = state.String()
	}

	return EndgameSnapshot{
		Hands:           &handTokens,
		TrickLeader:     leader,
		Trick:           plays,
		CompletedTricks: completedTricks,
		HeartsBroken:    heartsBroken,
		VoidSuits:       voidSuits,
		MoonStates:      moonStates,
	}
}

// RestoreEndgame reconstructs the four hands, the in-progress trick,
// and a tracker from an EndgameSnapshot. The tracker's unseen set is
// derived as every card still held in some hand; cards in the trick
// in progress, and every card in no hand (played to an earlier trick,
// which the snapshot records only as a count), count as revealed.
func RestoreEndgame(s EndgameSnapshot) ([4]*cards.Hand, *trick.Trick, *tracker.UnseenTracker, error) {
	if s.Hands == nil {
		return [4]*cards.Hand{}, nil, nil, newErr(ErrMissingHands, "hands")
	}
	if !validSeat(s.TrickLeader) {
		return [4]*cards.Hand{}, nil, nil, newErr(ErrUnknownSeat, "trick_leader")
	}

	var hands [4]*cards.Hand
	known := make(map[cards.Card]bool, 52)
	for seat, tokens := range s.Hands {
		cc, err := decodeCards(tokens)
		if err != nil {
			return [4]*cards.Hand{}, nil, nil, err
		}
		hands[seat] = cards.NewHand(cc...)
		for _, c := range cc {
			known[c] = true
		}
	}

	tr := trick.New(s.TrickLeader)
	for i, pt := range s.Trick {
		if !validSeat(pt.Seat) {
			return [4]*cards.Hand{}, nil, nil, newErr(ErrUnknownSeat, fieldIndex("trick", i)+".seat")
		}
		c, err := decodeCard(pt.Card)
		if err != nil {
			return [4]*cards.Hand{}, nil, nil, err
		}
		if pt.Seat != tr.NextSeat() {
			return [4]*cards.Hand{}, nil, nil, newErr(ErrTrickOutOfOrder, fieldIndex("trick", i))
		}
		tr.Play(pt.Seat, c)
	}

	var voids [4][4]bool
	for seat, tokens := range s.VoidSuits {
		for _, token := range tokens {
			su, ok := cards.ParseSuit(token)
			if !ok {
				return [4]*cards.Hand{}, nil, nil, newErr(ErrUnknownSuit, token)
			}
			voids[seat][su] = true
		}
	}

	var moon [4]tracker.MoonState
	for seat, token := range s.MoonStates {
		if token == "" {
			continue
		}
		ms, ok := tracker.ParseMoonState(token)
		if !ok {
			return [4]*cards.Hand{}, nil, nil, newErr(ErrUnknownMoonState, token)
		}
		moon[seat] = ms
	}

	var unseen []cards.Card
	for _, c := range cards.AllCards() {
		if known[c] {
			unseen = append(unseen, c)
		}
	}

	return hands, tr, tracker.Restore(unseen, voids, moon), nil
}

func fieldIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/match"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

func TestMatchSnapshotRoundTrip(t *testing.T) {
	m := match.New(42)
	m.StartRound()

	snap := Capture(m)
	restored, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if restored.Seed() != m.Seed() {
		t.Errorf("seed: got %d, want %d", restored.Seed(), m.Seed())
	}
	if restored.RoundNumber() != m.RoundNumber() {
		t.Errorf("round_number: got %d, want %d", restored.RoundNumber(), m.RoundNumber())
	}
	if restored.Scoreboard().Totals() != m.Scoreboard().Totals() {
		t.Errorf("scores: got %v, want %v", restored.Scoreboard().Totals(), m.Scoreboard().Totals())
	}

	restored.StartRound()
	if restored.Current().StartingSeat() != m.Current().StartingSeat() {
		t.Errorf("starting_seat: got %d, want %d", restored.Current().StartingSeat(), m.Current().StartingSeat())
	}
}

func TestMatchSnapshotMissingFieldsTakeDocumentedDefaults(t *testing.T) {
	var s MatchSnapshot
	if err := json.Unmarshal([]byte(`{}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.RoundNumber != 1 {
		t.Errorf("round_number default: got %d, want 1", s.RoundNumber)
	}
	if s.Direction != "Left" {
		t.Errorf("direction default: got %q, want Left", s.Direction)
	}
	if s.Scores != ([4]uint32{}) {
		t.Errorf("scores default: got %v, want all zero", s.Scores)
	}
}

func TestMatchSnapshotUnknownFieldsIgnored(t *testing.T) {
	var s MatchSnapshot
	raw := `{"seed": 7, "round_number": 3, "direction": "Right", "scores": [1,2,3,4], "starting_seat": 2, "future_field": "whatever"}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Seed != 7 || s.RoundNumber != 3 || s.Direction != "Right" || s.StartingSeat != 2 {
		t.Fatalf("unexpected decode: %+v", s)
	}
}

func TestRestoreRejectsUnknownDirectionToken(t *testing.T) {
	s := MatchSnapshot{RoundNumber: 1, Direction: "Sideways"}
	if _, err := Restore(s); err == nil {
		t.Fatal("expected an error for an unknown direction token")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrUnknownDirection {
		t.Fatalf("got %v, want ErrUnknownDirection", err)
	}
}

func TestRestoreRejectsUnknownStartingSeat(t *testing.T) {
	s := MatchSnapshot{RoundNumber: 1, Direction: "Left", StartingSeat: 9}
	if _, err := Restore(s); err == nil {
		t.Fatal("expected an error for an out-of-range starting seat")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrUnknownSeat {
		t.Fatalf("got %v, want ErrUnknownSeat", err)
	}
}

func buildFixtureHands() [4]*cards.Hand {
	return [4]*cards.Hand{
		cards.NewHand(cards.Card{Rank: cards.Ace, Suit: cards.Spades}, cards.Card{Rank: cards.Two, Suit: cards.Clubs}),
		cards.NewHand(cards.Card{Rank: cards.King, Suit: cards.Hearts}),
		cards.NewHand(cards.Card{Rank: cards.Queen, Suit: cards.Spades}),
		cards.NewHand(cards.Card{Rank: cards.Jack, Suit: cards.Diamonds}),
	}
}

func TestEndgameSnapshotRoundTrip(t *testing.T) {
	hands := buildFixtureHands()
	tr := trick.New(1)
	tr.Play(1, cards.Card{Rank: cards.Three, Suit: cards.Hearts})

	trk := tracker.New()
	trk.SetMoonState(2, tracker.Considering)

	snap := CaptureEndgame(hands, tr, 5, true, trk)

	restoredHands, restoredTrick, restoredTracker, err := RestoreEndgame(snap)
	if err != nil {
		t.Fatalf("RestoreEndgame: %v", err)
	}
	for seat := range hands {
		if restoredHands[seat].Size() != hands[seat].Size() {
			t.Errorf("seat %d hand size: got %d, want %d", seat, restoredHands[seat].Size(), hands[seat].Size())
		}
		for _, c := range hands[seat].Cards() {
			if !restoredHands[seat].Contains(c) {
				t.Errorf("seat %d missing card %v after restore", seat, c)
			}
		}
	}
	if restoredTrick.Leader() != tr.Leader() || restoredTrick.Size() != tr.Size() {
		t.Errorf("trick mismatch: got leader=%d size=%d, want leader=%d size=%d",
			restoredTrick.Leader(), restoredTrick.Size(), tr.Leader(), tr.Size())
	}
	if restoredTracker.MoonState(2) != tracker.Considering {
		t.Errorf("moon state: got %v, want Considering", restoredTracker.MoonState(2))
	}
}

func TestRestoreEndgameRequiresHands(t *testing.T) {
	s := EndgameSnapshot{}
	if _, _, _, err := RestoreEndgame(s); err == nil {
		t.Fatal("expected an error for missing hands")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrMissingHands {
		t.Fatalf("got %v, want ErrMissingHands", err)
	}
}

func TestRestoreEndgameRejectsOutOfOrderTrick(t *testing.T) {
	hands := [4][]cardToken{{}, {}, {}, {}}
	s := EndgameSnapshot{
		Hands:       &hands,
		TrickLeader: 0,
		Trick: []trickPlayToken{
			{Seat: 2, Card: cardToken{Rank: "2", Suit: "Clubs"}},
		},
	}
	if _, _, _, err := RestoreEndgame(s); err == nil {
		t.Fatal("expected an error for a trick played out of rotation order")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrTrickOutOfOrder {
		t.Fatalf("got %v, want ErrTrickOutOfOrder", err)
	}
}

func TestRestoreEndgameRejectsUnknownRankToken(t *testing.T) {
	hands := [4][]cardToken{{{Rank: "Zero", Suit: "Clubs"}}, {}, {}, {}}
	s := EndgameSnapshot{Hands: &hands}
	if _, _, _, err := RestoreEndgame(s); err == nil {
		t.Fatal("expected an error for an unknown rank token")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrUnknownRank {
		t.Fatalf("got %v, want ErrUnknownRank", err)
	}
}

func TestRestoreEndgameRejectsUnknownMoonStateToken(t *testing.T) {
	hands := [4][]cardToken{{}, {}, {}, {}}
	s := EndgameSnapshot{Hands: &hands, MoonStates: [4]string{"Inactive", "Rampaging", "Inactive", "Inactive"}}
	if _, _, _, err := RestoreEndgame(s); err == nil {
		t.Fatal("expected an error for an unknown moon-state token")
	} else if perr, ok := err.(*Error); !ok || perr.Kind != ErrUnknownMoonState {
		t.Fatalf("got %v, want ErrUnknownMoonState", err)
	}
}

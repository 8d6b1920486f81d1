package passing

import (
	"testing"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
)

func TestDirectionCycleIsIdentityAfterFour(t *testing.T) {
	d := Left
	for i := 0; i < 4; i++ {
		d = d.Next()
	}
	if d != Left {
		t.Errorf("direction after 4 Next() calls = %s, want Left", d)
	}
}

func TestTargetMapping(t *testing.T) {
	tests := []struct {
		dir      Direction
		seat     int
		expected int
	}{
		{Left, 0, 1},
		{Right, 0, 3},
		{Across, 0, 2},
		{Hold, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.dir.Target(tt.seat); got != tt.expected {
			t.Errorf("%s.Target(%d) = %d, want %d", tt.dir, tt.seat, got, tt.expected)
		}
	}
}

func TestHoldStartsResolved(t *testing.T) {
	s := NewState(Hold)
	if !s.IsResolved() {
		t.Error("expected Hold direction to start resolved")
	}
}

func TestSubmitRejectsCardNotInHand(t *testing.T) {
	s := NewState(Left)
	hand := cards.NewHand(cards.Card{Rank: cards.Two, Suit: cards.Clubs})
	err := s.Submit(0, hand, []cards.Card{
		{Rank: cards.Two, Suit: cards.Clubs},
		{Rank: cards.Three, Suit: cards.Clubs},
		{Rank: cards.Four, Suit: cards.Clubs},
	})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrCardNotInHand {
		t.Errorf("Submit() err = %v, want ErrCardNotInHand", err)
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	s := NewState(Left)
	hand := cards.NewHand(
		cards.Card{Rank: cards.Two, Suit: cards.Clubs},
		cards.Card{Rank: cards.Three, Suit: cards.Clubs},
	)
	err := s.Submit(0, hand, []cards.Card{
		{Rank: cards.Two, Suit: cards.Clubs},
		{Rank: cards.Two, Suit: cards.Clubs},
		{Rank: cards.Three, Suit: cards.Clubs},
	})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrDuplicateCard {
		t.Errorf("Submit() err = %v, want ErrDuplicateCard", err)
	}
}

func TestResolvePreservesThirteenPerSeat(t *testing.T) {
	deck := cards.NewDeck()
	hands := cards.DealFour(deck)
	s := NewState(Left)
	for seat := 0; seat < 4; seat++ {
		cc := hands[seat].Cards()[:3]
		if err := s.Submit(seat, hands[seat], cc); err != nil {
			t.Fatalf("seat %d Submit() error: %v", seat, err)
		}
	}
	var handPtrs [4]*cards.Hand
	for i := range hands {
		handPtrs[i] = hands[i]
	}
	if err := s.Resolve(handPtrs); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	for seat, h := range handPtrs {
		if h.Size() != 13 {
			t.Errorf("seat %d has %d cards after resolve, want 13", seat, h.Size())
		}
	}
}

func TestResolveFailsWhenIncomplete(t *testing.T) {
	deck := cards.NewDeck()
	hands := cards.DealFour(deck)
	s := NewState(Left)
	cc := hands[0].Cards()[:3]
	if err := s.Submit(0, hands[0], cc); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	err := s.Resolve(hands)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrIncompleteAtResolve {
		t.Errorf("Resolve() err = %v, want ErrIncompleteAtResolve", err)
	}
}

func TestDirectionForRoundCycles(t *testing.T) {
	tests := []struct {
		round    int
		expected Direction
	}{
		{1, Left}, {2, Right}, {3, Across}, {4, Hold}, {5, Left},
	}
	for _, tt := range tests {
		if got := DirectionForRound(tt.round); got != tt.expected {
			t.Errorf("DirectionForRound(%d) = %s, want %s", tt.round, got, tt.expected)
		}
	}
}

package cards

import "testing"

func TestHandAddRemoveContains(t *testing.T) {
	h := NewHand()
	c := Card{Queen, Spades}
	h.Add(c)
	if !h.Contains(c) {
		t.Fatal("expected hand to contain added card")
	}
	if !h.Remove(c) {
		t.Fatal("expected Remove to report success")
	}
	if h.Contains(c) {
		t.Fatal("expected hand to no longer contain removed card")
	}
}

func TestHandStaysSorted(t *testing.T) {
	h := NewHand(Card{King, Hearts}, Card{Two, Clubs}, Card{Ace, Diamonds})
	cc := h.Cards()
	for i := 1; i < len(cc); i++ {
		if cc[i].Less(cc[i-1]) {
			t.Fatalf("hand not sorted: %v", cc)
		}
	}
}

func TestHasOnlyPenaltyCards(t *testing.T) {
	h := NewHand(Card{Queen, Spades}, Card{Two, Hearts})
	if !h.HasOnlyPenaltyCards() {
		t.Error("expected hand of Q♠ and a heart to be all-penalty")
	}
	h.Add(Card{Ace, Clubs})
	if h.HasOnlyPenaltyCards() {
		t.Error("expected hand with a non-penalty card to not be all-penalty")
	}
}

func TestHasOnlyHearts(t *testing.T) {
	h := NewHand(Card{Two, Hearts}, Card{King, Hearts})
	if !h.HasOnlyHearts() {
		t.Error("expected all-hearts hand to report true")
	}
	h.Add(Card{Queen, Spades})
	if h.HasOnlyHearts() {
		t.Error("expected mixed hand to report false")
	}
}

func TestDealFourGivesThirteenEach(t *testing.T) {
	d := NewDeck()
	hands := DealFour(d)
	for seat, h := range hands {
		if h.Size() != 13 {
			t.Errorf("seat %d has %d cards, want 13", seat, h.Size())
		}
	}
}

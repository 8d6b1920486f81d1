package normal

import (
	"testing"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

// TestQueenOfSpadesFeedsScoreboardLeader is scenario E2: East leads
// A♣, North follows with a club, South is void in clubs and holds
// Q♠/5♦. East is the scoreboard leader in trouble (95), not South
// (50), so dumping the Q♠ outscores dumping the 5♦.
func TestQueenOfSpadesFeedsScoreboardLeader(t *testing.T) {
	const (
		west  = 0
		east  = 1
		north = 2
		south = 3
	)
	tr := trick.New(east)
	tr.Play(east, cards.Card{Rank: cards.Ace, Suit: cards.Clubs})
	tr.Play(north, cards.Card{Rank: cards.Five, Suit: cards.Clubs})

	ctx := Context{
		Seat:         south,
		Hand:         cards.NewHand(cards.Card{Rank: cards.Queen, Suit: cards.Spades}, cards.Card{Rank: cards.Five, Suit: cards.Diamonds}),
		Trick:        tr,
		HeartsBroken: true,
		Scoreboard:   scoreboard.FromTotals([4]int{west: 40, east: 95, north: 45, south: 50}),
		Style:        style.Cautious,
		Weights:      DefaultWeights(),
	}

	queenSpades := cards.Card{Rank: cards.Queen, Suit: cards.Spades}
	fiveDiamonds := cards.Card{Rank: cards.Five, Suit: cards.Diamonds}

	scoreQS := BaseScore(ctx, queenSpades)
	scoreFiveD := BaseScore(ctx, fiveDiamonds)
	if scoreQS <= scoreFiveD {
		t.Fatalf("score(Q♠)=%.2f, want > score(5♦)=%.2f", scoreQS, scoreFiveD)
	}

	chosen := Select(ctx, []cards.Card{queenSpades, fiveDiamonds})
	if chosen != queenSpades {
		t.Fatalf("Select = %v, want Q♠", chosen)
	}
}

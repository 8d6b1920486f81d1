// Package scoreboard tracks cumulative per-seat penalty totals across
// a match and applies the shoot-the-moon redistribution rule.
package scoreboard

// Scoreboard holds four seats' cumulative penalty totals.
type Scoreboard struct {
	totals [4]int
}

// New returns a scoreboard with every seat at zero.
func New() *Scoreboard {
	return &Scoreboard{}
}

// FromTotals builds a scoreboard from existing per-seat totals, as
// read back from a persisted snapshot.
func FromTotals(totals [4]int) *Scoreboard {
	return &Scoreboard{totals: totals}
}

// Total returns a seat's cumulative score.
func (sb *Scoreboard) Total(seat int) int { return sb.totals[seat] }

// Totals returns a copy of all four cumulative scores.
func (sb *Scoreboard) Totals() [4]int { return sb.totals }

// ApplyRound adds a completed round's per-seat penalty totals to the
// scoreboard. If one seat captured all 26 points, every other seat
// instead receives 26 (shoot-the-moon); otherwise each seat's own
// round total is added.
func (sb *Scoreboard) ApplyRound(roundPenalties [4]int) {
	for seat, p := range roundPenalties {
		if p == 26 {
			for other := 0; other < 4; other++ {
				if other != seat {
					sb.totals[other] += 26
				}
			}
			return
		}
	}
	for seat, p := range roundPenalties {
		sb.totals[seat] += p
	}
}

// HighestScoreSeat returns the seat with the greatest cumulative
// score — the "scoreboard leader", in trouble. Ties break toward the
// lowest seat index.
func (sb *Scoreboard) HighestScoreSeat() int {
	best := 0
	for seat := 1; seat < 4; seat++ {
		if sb.totals[seat] > sb.totals[best] {
			best = seat
		}
	}
	return best
}

// LowestScoreSeat returns the seat with the smallest cumulative score
// — the "scoreboard winner". Ties break toward the lowest seat index.
func (sb *Scoreboard) LowestScoreSeat() int {
	best := 0
	for seat := 1; seat < 4; seat++ {
		if sb.totals[seat] < sb.totals[best] {
			best = seat
		}
	}
	return best
}

// MinScore returns the lowest cumulative score among all seats.
func (sb *Scoreboard) MinScore() int {
	return sb.totals[sb.LowestScoreSeat()]
}

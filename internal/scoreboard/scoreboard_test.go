package scoreboard

import "testing"

func TestApplyRoundShootTheMoon(t *testing.T) {
	sb := New()
	sb.ApplyRound([4]int{26, 0, 0, 0})
	want := [4]int{0, 26, 26, 26}
	if got := sb.Totals(); got != want {
		t.Errorf("Totals() = %v, want %v", got, want)
	}
}

func TestApplyRoundNormalAccumulation(t *testing.T) {
	sb := New()
	sb.ApplyRound([4]int{10, 6, 5, 5})
	want := [4]int{10, 6, 5, 5}
	if got := sb.Totals(); got != want {
		t.Errorf("Totals() = %v, want %v", got, want)
	}
	sb.ApplyRound([4]int{1, 10, 10, 5})
	want = [4]int{11, 16, 15, 10}
	if got := sb.Totals(); got != want {
		t.Errorf("Totals() after second round = %v, want %v", got, want)
	}
}

func TestHighestAndLowestScoreSeat(t *testing.T) {
	sb := FromTotals([4]int{40, 95, 45, 50})
	if got := sb.HighestScoreSeat(); got != 1 {
		t.Errorf("HighestScoreSeat() = %d, want 1", got)
	}
	if got := sb.LowestScoreSeat(); got != 0 {
		t.Errorf("LowestScoreSeat() = %d, want 0", got)
	}
}

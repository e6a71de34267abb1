package activity

import "testing"

func TestFullyCompletedDaysEmptyHistory(t *testing.T) {
	if got := FullyCompletedDays(nil); got != 0 {
		t.Fatalf("nil history: got %d, want 0", got)
	}
	if got := FullyCompletedDays(map[string]map[string]bool{}); got != 0 {
		t.Fatalf("empty history: got %d, want 0", got)
	}
}

func TestFullyCompletedDaysSkipsEmptyDates(t *testing.T) {
	history := map[string]map[string]bool{
		"2024-03-10": {},
	}
	if got := FullyCompletedDays(history); got != 0 {
		t.Fatalf("empty date counted: got %d, want 0", got)
	}
}

func TestFullyCompletedDaysCounts(t *testing.T) {
	history := map[string]map[string]bool{
		"2024-03-10": {"0": true, "1": true},
		"2024-03-11": {"0": true, "1": false},
		"2024-03-12": {"0": true},
		"2024-03-13": {},
	}
	if got := FullyCompletedDays(history); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

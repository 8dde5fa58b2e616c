package progression

import "testing"

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected int
	}{
		{name: "zero", score: 0, expected: 1},
		{name: "below first threshold", score: 99, expected: 1},
		{name: "level 2 boundary", score: 100, expected: 2},
		{name: "between thresholds", score: 399, expected: 2},
		{name: "level 3 boundary", score: 400, expected: 3},
		{name: "level 4 boundary", score: 900, expected: 4},
		{name: "level 5 boundary", score: 1600, expected: 5},
		{name: "negative clamps to zero", score: -50, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.score); got != tt.expected {
				t.Errorf("Level(%d) = %d, want %d", tt.score, got, tt.expected)
			}
		})
	}
}

func TestLevelNonDecreasing(t *testing.T) {
	prev := Level(0)
	if prev < 1 {
		t.Fatalf("Level(0) = %d, want >= 1", prev)
	}
	for s := 1; s <= 5000; s++ {
		l := Level(s)
		if l < prev {
			t.Fatalf("Level(%d) = %d decreased from %d", s, l, prev)
		}
		prev = l
	}
}

package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 5); got != 0 {
		t.Errorf("Clamp(-3, 0, 5) = %d, expected 0", got)
	}
	if got := Clamp(9, 0, 5); got != 5 {
		t.Errorf("Clamp(9, 0, 5) = %d, expected 5", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Errorf("Clamp(3, 0, 5) = %d, expected 3", got)
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 50
	if got := cfg.TickDuration(); got.Milliseconds() != 20 {
		t.Errorf("TickDuration() at 50 fps = %v, expected 20ms", got)
	}

	cfg.TickRate = 0
	if got := cfg.TickDuration(); got <= 0 {
		t.Errorf("TickDuration() with zero tick rate should fall back to a positive value, got %v", got)
	}
}

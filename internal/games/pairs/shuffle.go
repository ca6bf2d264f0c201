// Package pairs implements a memory-matching card game: the player flips
// two cards per move, matching pairs stay face up and mismatches flip back
// after a delay. Level mode adds move budgets and persisted level unlocks;
// classic mode plays a single board with unlimited moves.
//
// The round logic (Controller) is independent of any UI. Game adapts it to
// the registry.Game interface used by the terminal platform.
package pairs

// Source supplies uniform random integers in [0, n).
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Shuffle permutes s in place using Fisher-Yates.
// Empty and single-element slices are left untouched.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

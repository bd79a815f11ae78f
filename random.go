package hsm

import "math/rand"

// RandomFunc returns an integer in [0, max). It backs Choice pseudo-state
// selection when more than one branch is enabled, and is replaceable for
// deterministic tests (see WithRandom).
type RandomFunc func(max int) int

func defaultRandom(max int) int {
	return rand.Intn(max)
}

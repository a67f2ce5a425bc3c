package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every shuffle, first-player draw and bot name pick in a tournament flows
// from this generator, so one seed replays a whole tournament.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// SeedFromClock derives a seed from the clock when the user did not pick one.
func SeedFromClock(clock quartz.Clock) int64 {
	return int64(mix(uint64(clock.Now().UnixNano())) >> 1)
}

// Child returns an independent seed for a sub-run (one simulated
// tournament) drawn from a parent generator.
func Child(parent *rand.Rand) int64 {
	return parent.Int64()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

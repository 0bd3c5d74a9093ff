package dungeon

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue folds a root seed string and a subsystem label into
// a stable int64 seed. The same root seed always reproduces the same dungeon
// and the same combat rolls.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG returns a subsystem RNG derived from the root seed.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

// RollBetween samples uniformly from [min, max] inclusive, degrading to min
// when the range is empty.
func RollBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

package dice

import "math/rand/v2"

// NewRoller returns a [Roller] drawing from r. A nil r uses the global
// source.
func NewRoller(r *rand.Rand) Roller {
	if r == nil {
		return func(sides int) int { return rand.IntN(sides) + 1 }
	}

	return func(sides int) int { return r.IntN(sides) + 1 }
}

// Seeded returns a deterministic [Roller] for seed.
func Seeded(seed uint64) Roller {
	return NewRoller(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Highest always rolls the top face.
func Highest(sides int) int { return sides }

// Lowest always rolls 1.
func Lowest(int) int { return 1 }

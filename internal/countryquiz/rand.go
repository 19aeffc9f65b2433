package countryquiz

import (
	"math/rand/v2"
	"sync"
)

// Rand is the only source of randomness the engine uses. IntN returns a
// value in [0, n).
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// LockedRand makes a Rand safe to share between sessions.
type LockedRand struct {
	mu sync.Mutex
	r  Rand
}

func NewLockedRand(r Rand) *LockedRand {
	return &LockedRand{r: r}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

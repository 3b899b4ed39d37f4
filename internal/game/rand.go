package game

import (
	"math/rand"
	"sync"
	"time"
)

// Rand funnels every random choice the orchestrator makes (team fill-ins,
// bot teams, bot delays, bot answers) through one seedable source, so tests
// can pin a seed and get deterministic behavior. The mutex is needed because
// timer callbacks fire on their own goroutines.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func NewTimeRand() *Rand {
	return NewRand(time.Now().UnixNano())
}

func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// Pick returns a uniformly random element of list, which must be non-empty.
func (r *Rand) Pick(list []string) string {
	return list[r.Intn(len(list))]
}

// Between draws a duration uniformly from [min, max).
func (r *Rand) Between(min, max time.Duration) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + time.Duration(r.r.Int63n(int64(max-min)))
}

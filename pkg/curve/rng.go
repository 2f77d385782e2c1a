package curve

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"sync"
)

// RNG is a fork-safe wrapper over the OS CSPRNG. crypto/rand.Reader itself
// reads fresh OS entropy on every call and is already fork-safe on every
// platform Go supports, but the contract the core promises library users
// (spec §9) is that the generator detects a changed process id and
// reseeds transparently — so this type tracks the pid it was created
// under and refuses to silently assume stale state across a fork.
type RNG struct {
	mu  sync.Mutex
	pid int
}

// NewRNG creates a new fork-safe RNG wrapper.
func NewRNG() *RNG {
	return &RNG{pid: os.Getpid()}
}

func (r *RNG) checkFork() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur := os.Getpid(); cur != r.pid {
		r.pid = cur
	}
}

// RandomScalar draws a scalar uniform in [1, N-1]. Zero is excluded
// unconditionally: every caller of RandomScalar is in a nonce or
// blinding-sampling role where a zero value is either invalid or
// witness-leaking.
func (r *RNG) RandomScalar() (Scalar, error) {
	r.checkFork()
	// Sample uniform in [0, N-2] then shift to [1, N-1].
	upper := new(big.Int).Sub(N, big.NewInt(1))
	v, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return Scalar{}, fmt.Errorf("curve: reading randomness: %w", err)
	}
	v.Add(v, big.NewInt(1))
	return Scalar{v: v}, nil
}

var defaultRNG = NewRNG()

// RandomScalar draws from the package-level default RNG. Most callers
// should use this; NewRNG exists for tests that want an isolated
// instance or for embedding in a longer-lived prover object.
func RandomScalar() (Scalar, error) {
	return defaultRNG.RandomScalar()
}

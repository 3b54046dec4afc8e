// Package dice provides injectable randomness for hero generation and combat.
// Production code draws from a crypto/rand-backed Source; tests substitute a
// deterministic source to pin down rolls.
package dice

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// Source produces uniform random integers. It is the only randomness
// primitive the game packages depend on; floats and shuffles are derived.
type Source interface {
	// Intn returns a uniform random int in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values are uniformly distributed in [0, n) for any n > 0
// and independent across calls. There is no shared seed to leak between
// generation requests.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SequenceSource is a deterministic Source for tests. It replays a fixed list
// of values, reducing each modulo the requested bound, and wraps around when
// exhausted. Safe for concurrent use.
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource returns a SequenceSource replaying values in order.
//
// Precondition: values must be non-empty.
func NewSequenceSource(values ...int) *SequenceSource {
	if len(values) == 0 {
		panic("dice: NewSequenceSource called with no values")
	}
	return &SequenceSource{values: values}
}

// Intn returns the next scripted value reduced modulo n.
//
// Precondition: n > 0.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

// Package idgen generates entity identifiers.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// Prefixed generates IDs of the form prefix_timestamp_random. The random
// suffix keeps IDs unique even when two are generated in the same
// nanosecond.
type Prefixed struct {
	prefix string
}

// NewPrefixed returns a generator that prepends prefix to every ID.
func NewPrefixed(prefix string) *Prefixed {
	return &Prefixed{prefix: prefix}
}

func (g *Prefixed) Generate() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("idgen: crypto/rand failure: %v", err))
	}
	return fmt.Sprintf("%s_%d_%s", g.prefix, time.Now().UnixNano(), hex.EncodeToString(buf))
}

// UUID generates uuid-based IDs with an optional prefix.
type UUID struct {
	prefix string
}

// NewUUID returns a generator producing prefix_uuid identifiers, or bare
// uuids when prefix is empty.
func NewUUID(prefix string) *UUID {
	return &UUID{prefix: prefix}
}

func (g *UUID) Generate() string {
	id := uuid.New().String()
	if g.prefix == "" {
		return id
	}
	return g.prefix + "_" + id
}

// Sequential generates deterministic counting IDs. Tests use it to pin
// identifiers in assertions.
type Sequential struct {
	prefix  string
	counter uint64
}

// NewSequential returns a generator counting up from 1.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (g *Sequential) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s_%d", g.prefix, n)
}

// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUIDs with an optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// SequentialGenerator generates sequential IDs. With a width it produces
// zero-padded suffixes like "titan_helmet_003".
type SequentialGenerator struct {
	prefix  string
	width   int
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// NewSequentialPadded creates a sequential generator whose numeric suffix
// is zero-padded to width digits
func NewSequentialPadded(prefix string, width int) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix, width: width}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	num := fmt.Sprintf("%d", n)
	if g.width > 0 {
		num = fmt.Sprintf("%0*d", g.width, n)
	}
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, num)
	}
	return num
}

// SetAtLeast advances the counter so the next Generate returns a number
// greater than n. Used to restore counters from persisted IDs.
func (g *SequentialGenerator) SetAtLeast(n uint64) {
	for {
		cur := atomic.LoadUint64(&g.counter)
		if cur >= n {
			return
		}
		if atomic.CompareAndSwapUint64(&g.counter, cur, n) {
			return
		}
	}
}

package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
)

// Generator produces identifiers for registries and containers. Implementations
// must return a distinct value on every call within a single process.
type Generator interface {
	NewID() string
}

// Random returns a Generator backed by crypto/rand. This is the default used
// by registries and containers when no generator is injected.
func Random() Generator {
	return randomGenerator{}
}

type randomGenerator struct{}

func (randomGenerator) NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the
		// interface error-free rather than threading an error through
		// every constructor.
		panic(fmt.Sprintf("ident: read random source: %v", err))
	}
	return hex.EncodeToString(buf)
}

// Sequential returns a deterministic Generator that yields prefix-0, prefix-1,
// and so on. Intended for tests that assert on identifiers.
func Sequential(prefix string) Generator {
	return &sequentialGenerator{prefix: prefix}
}

type sequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func (g *sequentialGenerator) NewID() string {
	n := g.next.Add(1) - 1
	return fmt.Sprintf("%s-%d", g.prefix, n)
}

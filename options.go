package bplustree

import (
	"cmp"

	"github.com/go-logr/logr"
)

// Option configures a Tree at construction time. The engine has no file,
// environment, or wire-level configuration surface, so options are the only
// construction-time knobs.
type Option[K cmp.Ordered, V any] func(*Tree[K, V])

// WithLogger injects a structured logger used for diagnostic events: a
// record each time CheckInvariants passes, and node-pool hit/miss/release
// accounting. Every such record is logged at V(1). A Tree built without this
// option routes them to a default stdr backend writing to os.Stderr, which
// drops V(1) records unless stdr's global verbosity is raised to 1 or more
// (stdr.SetVerbosity).
func WithLogger[K cmp.Ordered, V any](l logr.Logger) Option[K, V] {
	return func(t *Tree[K, V]) {
		t.logger = l
	}
}

// WithNodePool enables a bounded free list of detached nodes (freed by merge
// or root collapse) to reduce allocator pressure, keeping at most maxSize
// nodes of each kind. Purely a performance knob; omitting it changes nothing
// observable.
func WithNodePool[K cmp.Ordered, V any](maxSize int) Option[K, V] {
	return func(t *Tree[K, V]) {
		t.pool = newNodePool[K, V](maxSize)
	}
}

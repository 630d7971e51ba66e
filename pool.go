package bplustree

import (
	"cmp"

	"github.com/go-logr/logr"
)

// nodePool is a bounded, process-private free list of detached nodes (freed
// by merge or root collapse), keyed implicitly by the tree's single
// capacity. It is an allocator strategy only: its presence or absence never
// changes observable behavior, only allocation pressure. It carries no
// locking, consistent with the tree's single-threaded, non-reentrant
// contract (see package doc).
//
// Hit/miss/release accounting is reported through logger at V(1). New sets
// logger to the owning Tree's resolved logger (stdr by default, or whatever
// WithLogger supplied) once construction options have been applied, so pool
// diagnostics always share the tree's logging destination.
type nodePool[K cmp.Ordered, V any] struct {
	maxSize  int
	leaves   []*leafNode[K, V]
	branches []*branchNode[K, V]
	logger   logr.Logger
}

func newNodePool[K cmp.Ordered, V any](maxSize int) *nodePool[K, V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &nodePool[K, V]{maxSize: maxSize, logger: logr.Discard()}
}

// getLeaf returns a pooled leaf reset to empty state, or a fresh one if the
// pool is absent or empty. Safe to call on a nil *nodePool.
func (p *nodePool[K, V]) getLeaf(capacity int) *leafNode[K, V] {
	if p == nil || len(p.leaves) == 0 {
		if p != nil {
			p.logger.V(1).Info("pool miss", "kind", "leaf")
		}
		return newLeaf[K, V](capacity)
	}
	n := p.leaves[len(p.leaves)-1]
	p.leaves = p.leaves[:len(p.leaves)-1]
	n.reset()
	p.logger.V(1).Info("pool hit", "kind", "leaf", "free", len(p.leaves))
	return n
}

// putLeaf returns a detached leaf to the pool, subject to maxSize. Safe to
// call on a nil *nodePool (no-op).
func (p *nodePool[K, V]) putLeaf(n *leafNode[K, V]) {
	if p == nil || len(p.leaves) >= p.maxSize {
		return
	}
	p.leaves = append(p.leaves, n)
	p.logger.V(1).Info("pool release", "kind", "leaf", "free", len(p.leaves))
}

func (p *nodePool[K, V]) getBranch(capacity int) *branchNode[K, V] {
	if p == nil || len(p.branches) == 0 {
		if p != nil {
			p.logger.V(1).Info("pool miss", "kind", "branch")
		}
		return &branchNode[K, V]{
			keys:     make([]K, 0, capacity+1),
			children: make([]node[K, V], 0, capacity+2),
		}
	}
	n := p.branches[len(p.branches)-1]
	p.branches = p.branches[:len(p.branches)-1]
	n.reset()
	p.logger.V(1).Info("pool hit", "kind", "branch", "free", len(p.branches))
	return n
}

func (p *nodePool[K, V]) putBranch(n *branchNode[K, V]) {
	if p == nil || len(p.branches) >= p.maxSize {
		return
	}
	p.branches = append(p.branches, n)
	p.logger.V(1).Info("pool release", "kind", "branch", "free", len(p.branches))
}

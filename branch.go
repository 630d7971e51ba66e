package bplustree

import (
	"cmp"
	"sort"

	"bplustree/internal/assert"
)

// branchNode routes searches by comparing against separator keys; it holds
// exactly n+1 children for n keys (I4). It never holds values directly.
type branchNode[K cmp.Ordered, V any] struct {
	keys     []K
	children []node[K, V]
}

func (b *branchNode[K, V]) isLeaf() bool { return false }

// route returns the index of the child to descend into for key: the
// smallest i such that key < keys[i], or len(keys) if key is >= every key.
func (b *branchNode[K, V]) route(key K) int {
	return sort.Search(len(b.keys), func(i int) bool { return key < b.keys[i] })
}

// insertChildAfter places separator at keys[at] and newChild at
// children[at+1], shifting tails right, splitting this node via pool if it
// now exceeds capacity.
func (b *branchNode[K, V]) insertChildAfter(at int, separator K, newChild node[K, V], capacity int, pool *nodePool[K, V]) *overflow[K, V] {
	b.keys = insertAt(b.keys, at, separator)
	b.children = insertAt(b.children, at+1, newChild)

	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch has %d children but %d keys", len(b.children), len(b.keys))

	if len(b.keys) > capacity {
		return b.split(capacity, pool)
	}
	return nil
}

// split picks the middle key as the promoted separator (it is not stored in
// either side, since branches route via separators rather than storing
// them). The left node keeps keys[0..mid)/children[0..mid+1), the right node
// takes the rest.
func (b *branchNode[K, V]) split(capacity int, pool *nodePool[K, V]) *overflow[K, V] {
	mid := len(b.keys) / 2
	promoted := b.keys[mid]

	right := pool.getBranch(capacity)
	right.keys = append(right.keys[:0], b.keys[mid+1:]...)
	right.children = append(right.children[:0], b.children[mid+1:]...)

	b.keys = b.keys[:mid]
	b.children = b.children[:mid+1]

	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch split left half: %d children but %d keys", len(b.children), len(b.keys))
	assert.Assert(len(right.children) == len(right.keys)+1,
		"branch split right half: %d children but %d keys", len(right.children), len(right.keys))

	return &overflow[K, V]{sibling: right, separator: promoted}
}

func (b *branchNode[K, V]) isUnderfull(minKeys int) bool { return len(b.keys) < minKeys }
func (b *branchNode[K, V]) canDonate(minKeys int) bool   { return len(b.keys) > minKeys }

// borrowFromLeft moves the parent separator down as this branch's new
// leftmost key, promotes left's rightmost key to the parent, and moves
// left's rightmost child across. Returns the new parent separator.
func (b *branchNode[K, V]) borrowFromLeft(left *branchNode[K, V], parentSeparator K) K {
	nk := len(left.keys)
	nc := len(left.children)
	borrowedChild := left.children[nc-1]
	promoted := left.keys[nk-1]

	left.keys = left.keys[:nk-1]
	left.children = left.children[:nc-1]

	b.keys = insertAt(b.keys, 0, parentSeparator)
	b.children = insertAt(b.children, 0, borrowedChild)
	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch has %d children but %d keys", len(b.children), len(b.keys))
	return promoted
}

// borrowFromRight is the mirror of borrowFromLeft.
func (b *branchNode[K, V]) borrowFromRight(right *branchNode[K, V], parentSeparator K) K {
	borrowedChild := right.children[0]
	promoted := right.keys[0]

	right.keys = removeAt(right.keys, 0)
	right.children = removeAt(right.children, 0)

	b.keys = append(b.keys, parentSeparator)
	b.children = append(b.children, borrowedChild)
	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch has %d children but %d keys", len(b.children), len(b.keys))
	return promoted
}

// mergeWithRight concatenates [b.keys, parentSeparator, right.keys] and
// [b.children, right.children]. right is left to the caller to detach from
// the parent and return to the pool.
func (b *branchNode[K, V]) mergeWithRight(right *branchNode[K, V], parentSeparator K) {
	b.keys = append(b.keys, parentSeparator)
	b.keys = append(b.keys, right.keys...)
	b.children = append(b.children, right.children...)
	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch has %d children but %d keys", len(b.children), len(b.keys))
}

// dropChildAt removes children[childIdx] along with the separator that
// routed to it (keys[childIdx-1]), used after a sibling at childIdx has been
// drained into its neighbor.
func (b *branchNode[K, V]) dropChildAt(childIdx int) {
	b.keys = removeAt(b.keys, childIdx-1)
	b.children = removeAt(b.children, childIdx)
	assert.Assert(len(b.children) == len(b.keys)+1,
		"branch has %d children but %d keys", len(b.children), len(b.keys))
}

func (b *branchNode[K, V]) reset() {
	b.keys = b.keys[:0]
	b.children = b.children[:0]
}

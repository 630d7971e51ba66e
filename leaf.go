package bplustree

import (
	"cmp"
	"sort"

	"bplustree/internal/assert"
)

// leafNode stores up to capacity ordered key/value pairs and links forward
// to the next leaf in ascending key order (the leaf chain, I6).
type leafNode[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
	next   *leafNode[K, V]
}

func newLeaf[K cmp.Ordered, V any](capacity int) *leafNode[K, V] {
	return &leafNode[K, V]{
		keys:   make([]K, 0, capacity+1),
		values: make([]V, 0, capacity+1),
	}
}

func (l *leafNode[K, V]) isLeaf() bool { return true }

// locate returns the insertion index for key (bisect_left) and whether the
// key is already present at that index.
func (l *leafNode[K, V]) locate(key K) (int, bool) {
	i := sort.Search(len(l.keys), func(i int) bool { return !(l.keys[i] < key) })
	return i, i < len(l.keys) && l.keys[i] == key
}

func (l *leafNode[K, V]) get(key K) (V, bool) {
	i, found := l.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	return l.values[i], true
}

// insertOrReplace inserts key/value, or overwrites the value if key is
// already present. It returns the previous value (if any) and, if the
// insertion pushed the leaf past capacity, the overflow describing the new
// right sibling. Splitting allocates through pool so freed nodes can be
// reused.
func (l *leafNode[K, V]) insertOrReplace(key K, value V, capacity int, pool *nodePool[K, V]) (prev V, hadPrev bool, ovf *overflow[K, V]) {
	i, found := l.locate(key)
	if found {
		prev = l.values[i]
		l.values[i] = value
		return prev, true, nil
	}

	l.keys = insertAt(l.keys, i, key)
	l.values = insertAt(l.values, i, value)
	assert.Assert(len(l.keys) == len(l.values),
		"leaf has %d keys but %d values", len(l.keys), len(l.values))

	var zero V
	if len(l.keys) > capacity {
		ovf = l.split(capacity, pool)
	}
	return zero, false, ovf
}

// split produces the new right sibling per the spec's split policy: the
// first mid = capacity/2 entries stay, the rest move to the new leaf, whose
// first key is promoted as the separator. The new leaf is spliced into the
// leaf chain immediately after this one.
func (l *leafNode[K, V]) split(capacity int, pool *nodePool[K, V]) *overflow[K, V] {
	mid := capacity / 2

	right := pool.getLeaf(capacity)
	right.keys = append(right.keys[:0], l.keys[mid:]...)
	right.values = append(right.values[:0], l.values[mid:]...)
	right.next = l.next

	l.keys = l.keys[:mid]
	l.values = l.values[:mid]
	l.next = right

	assert.Assert(len(l.keys) == len(l.values),
		"leaf split left half: %d keys but %d values", len(l.keys), len(l.values))
	assert.Assert(len(right.keys) == len(right.values),
		"leaf split right half: %d keys but %d values", len(right.keys), len(right.values))

	return &overflow[K, V]{sibling: right, separator: right.keys[0]}
}

func (l *leafNode[K, V]) remove(key K) (V, bool) {
	i, found := l.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	v := l.values[i]
	l.keys = removeAt(l.keys, i)
	l.values = removeAt(l.values, i)
	assert.Assert(len(l.keys) == len(l.values),
		"leaf has %d keys but %d values", len(l.keys), len(l.values))
	return v, true
}

func (l *leafNode[K, V]) isUnderfull(minKeys int) bool { return len(l.keys) < minKeys }
func (l *leafNode[K, V]) canDonate(minKeys int) bool   { return len(l.keys) > minKeys }

// borrowFromLeft moves left's last entry to become this leaf's new first
// entry, and returns the key the parent separator must be updated to.
func (l *leafNode[K, V]) borrowFromLeft(left *leafNode[K, V]) K {
	n := len(left.keys)
	k, v := left.keys[n-1], left.values[n-1]
	left.keys = left.keys[:n-1]
	left.values = left.values[:n-1]

	l.keys = insertAt(l.keys, 0, k)
	l.values = insertAt(l.values, 0, v)
	assert.Assert(len(l.keys) == len(l.values),
		"leaf has %d keys but %d values", len(l.keys), len(l.values))
	return l.keys[0]
}

// borrowFromRight moves right's first entry to become this leaf's new last
// entry, and returns the key the parent separator must be updated to.
func (l *leafNode[K, V]) borrowFromRight(right *leafNode[K, V]) K {
	k, v := right.keys[0], right.values[0]
	right.keys = removeAt(right.keys, 0)
	right.values = removeAt(right.values, 0)

	l.keys = append(l.keys, k)
	l.values = append(l.values, v)
	assert.Assert(len(l.keys) == len(l.values),
		"leaf has %d keys but %d values", len(l.keys), len(l.values))
	return right.keys[0]
}

// mergeWithRight drains right into l and adopts its forward link. right is
// left to the caller to detach from the parent and return to the pool.
func (l *leafNode[K, V]) mergeWithRight(right *leafNode[K, V]) {
	l.keys = append(l.keys, right.keys...)
	l.values = append(l.values, right.values...)
	l.next = right.next
	assert.Assert(len(l.keys) == len(l.values),
		"leaf has %d keys but %d values", len(l.keys), len(l.values))
}

func (l *leafNode[K, V]) reset() {
	l.keys = l.keys[:0]
	l.values = l.values[:0]
	l.next = nil
}

package bplustree

import "cmp"

// Iterator is a lazy, forward-only cursor over a Tree's entries in
// ascending key order. It is not restartable — once exhausted, a new
// iterator must be created — and it is not safe across mutation: if the
// tree is mutated after the iterator is created, the next call to Next
// returns false and Err reports ErrConcurrentModification.
//
// Usage follows the bufio.Scanner / sql.Rows convention:
//
//	it := t.Entries(nil, nil)
//	for it.Next() {
//	    k, v := it.Key(), it.Value()
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[K cmp.Ordered, V any] struct {
	node     *leafNode[K, V]
	idx      int
	end      *K
	tree     *Tree[K, V]
	modCount uint64
	started  bool
	err      error
}

// Keys returns an iterator over [start, end). A nil bound is open on that
// side. start >= end yields an empty iterator.
func (t *Tree[K, V]) Keys(start, end *K) *Iterator[K, V] { return t.newIterator(start, end) }

// Values returns an iterator over [start, end); see Keys.
func (t *Tree[K, V]) Values(start, end *K) *Iterator[K, V] { return t.newIterator(start, end) }

// Entries returns an iterator over [start, end); see Keys.
func (t *Tree[K, V]) Entries(start, end *K) *Iterator[K, V] { return t.newIterator(start, end) }

// Range is an alias for Entries(&start, &end).
func (t *Tree[K, V]) Range(start, end K) *Iterator[K, V] { return t.newIterator(&start, &end) }

func (t *Tree[K, V]) newIterator(start, end *K) *Iterator[K, V] {
	node, idx := t.seek(start)
	return &Iterator[K, V]{
		tree:     t,
		node:     node,
		idx:      idx,
		end:      end,
		modCount: t.modCount,
	}
}

// seek locates the leaf and index of the first entry with key >= *start, or
// the very first entry if start is nil.
func (t *Tree[K, V]) seek(start *K) (*leafNode[K, V], int) {
	if start == nil {
		return t.leaves, 0
	}
	leaf := t.descendToLeaf(*start)
	i, _ := leaf.locate(*start)
	return leaf, i
}

// Next advances the iterator and reports whether an entry is available.
// Call Key/Value/Entry only after Next returns true.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.tree.modCount != it.modCount {
		it.err = ErrConcurrentModification
		it.node = nil
		return false
	}

	if it.started {
		it.idx++
	}
	it.started = true

	for it.node != nil && it.idx >= len(it.node.keys) {
		it.node = it.node.next
		it.idx = 0
	}
	if it.node == nil {
		return false
	}
	if it.end != nil && !(it.node.keys[it.idx] < *it.end) {
		it.node = nil
		return false
	}
	return true
}

// Key returns the current entry's key. Valid only after Next returns true.
func (it *Iterator[K, V]) Key() K { return it.node.keys[it.idx] }

// Value returns the current entry's value. Valid only after Next returns true.
func (it *Iterator[K, V]) Value() V { return it.node.values[it.idx] }

// Entry returns the current key/value pair. Valid only after Next returns true.
func (it *Iterator[K, V]) Entry() Entry[K, V] {
	return Entry[K, V]{Key: it.node.keys[it.idx], Value: it.node.values[it.idx]}
}

// Err returns ErrConcurrentModification once Next has found that the tree
// was mutated after this iterator was created, else nil.
func (it *Iterator[K, V]) Err() error { return it.err }

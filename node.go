package bplustree

import "cmp"

// node is the small interface the tree layer needs from either node variant:
// whether it is a leaf, and nothing else. Splitting, routing, and rebalancing
// all happen through type switches onto the two concrete node kinds, since
// the two variants share almost no behavior (a Branch routes, a Leaf stores
// and chains).
type node[K cmp.Ordered, V any] interface {
	isLeaf() bool
}

// overflow is the result of an insertion that grew a node past capacity: the
// newly created sibling and the key that must be inserted into the parent to
// route between the original node and the sibling. A nil *overflow means the
// insertion fit without splitting.
type overflow[K cmp.Ordered, V any] struct {
	sibling   node[K, V]
	separator K
}

// insertAt inserts v at index i of s, shifting the tail right by one.
func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// removeAt deletes the element at index i of s, shifting the tail left.
func removeAt[T any](s []T, i int) []T {
	return append(s[:i], s[i+1:]...)
}

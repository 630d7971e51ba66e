package bplustree

import (
	"cmp"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"bplustree/internal/assert"
)

// Entry is a single key/value pair, as yielded by iteration.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Tree is an in-memory ordered map backed by a B+ tree. The zero value is
// not usable; construct one with New or BulkLoad.
//
// Tree is not safe for concurrent use. All operations run synchronously on
// the caller's goroutine; there is no internal locking. A caller that wants
// shared access must wrap the tree in an external mutex and treat iteration
// as a read section.
type Tree[K cmp.Ordered, V any] struct {
	root     node[K, V]
	leaves   *leafNode[K, V] // head of the leaf chain
	capacity int
	minKeys  int
	size     int
	modCount uint64
	logger   logr.Logger
	pool     *nodePool[K, V]
}

// New returns an empty tree with the given capacity (maximum keys per node).
// capacity must be at least 4.
func New[K cmp.Ordered, V any](capacity int, opts ...Option[K, V]) (*Tree[K, V], error) {
	if capacity < 4 {
		return nil, fmt.Errorf("%w: capacity must be >= 4, got %d", ErrInvalidCapacity, capacity)
	}

	t := &Tree[K, V]{
		capacity: capacity,
		minKeys:  capacity / 2,
		logger:   stdr.New(log.New(os.Stderr, "", log.LstdFlags)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.pool != nil {
		t.pool.logger = t.logger
	}

	root := t.pool.getLeaf(capacity)
	t.root = root
	t.leaves = root
	return t, nil
}

// BulkLoad builds a tree from pairs, which the caller guarantees are sorted
// ascending by key (not verified). It uses a right-edge append with a
// cached rightmost leaf: each pair is appended in place when it fits past
// the current rightmost leaf's last key, falling back to the normal Put
// path (which splits and rebalances as needed) otherwise. The resulting
// tree is indistinguishable from one built by repeated Put in the same
// order and satisfies every structural invariant. If pairs is not actually
// sorted, the result is unspecified but never corrupts memory; it may fail
// CheckInvariants.
func BulkLoad[K cmp.Ordered, V any](pairs []Entry[K, V], capacity int, opts ...Option[K, V]) (*Tree[K, V], error) {
	t, err := New[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}

	rightmost := t.leaves
	for _, p := range pairs {
		if n := len(rightmost.keys); n > 0 && rightmost.keys[n-1] < p.Key && n < capacity {
			rightmost.keys = append(rightmost.keys, p.Key)
			rightmost.values = append(rightmost.values, p.Value)
			t.size++
			t.modCount++
			continue
		}
		t.Put(p.Key, p.Value)
		rightmost = t.lastLeaf()
	}
	return t, nil
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.descendToLeaf(key).get(key)
	return ok
}

// Get returns the value for key, or a *KeyError wrapping ErrNotFound.
func (t *Tree[K, V]) Get(key K) (V, error) {
	v, ok := t.descendToLeaf(key).get(key)
	if !ok {
		var zero V
		return zero, &KeyError[K]{Key: key, Err: ErrNotFound}
	}
	return v, nil
}

// GetOr returns the value for key, or def if key is absent.
func (t *Tree[K, V]) GetOr(key K, def V) V {
	if v, ok := t.descendToLeaf(key).get(key); ok {
		return v
	}
	return def
}

// Put inserts or updates key with value, returning the previous value (if
// any existed).
func (t *Tree[K, V]) Put(key K, value V) (V, bool) {
	prev, hadPrev, ovf := t.insertInto(t.root, key, value)
	if ovf != nil {
		newRoot := t.pool.getBranch(t.capacity)
		newRoot.keys = append(newRoot.keys, ovf.separator)
		newRoot.children = append(newRoot.children, t.root, ovf.sibling)
		t.root = newRoot
	}
	if !hadPrev {
		t.size++
	}
	t.modCount++
	return prev, hadPrev
}

// SetDefault returns the existing value for key if present; otherwise it
// inserts value and returns it.
func (t *Tree[K, V]) SetDefault(key K, value V) V {
	if v, ok := t.descendToLeaf(key).get(key); ok {
		return v
	}
	t.Put(key, value)
	return value
}

// Merge inserts every pair produced by other, in iteration order, via Put
// semantics (later values win on duplicate keys).
func (t *Tree[K, V]) Merge(other func(yield func(K, V) bool)) {
	other(func(k K, v V) bool {
		t.Put(k, v)
		return true
	})
}

// Remove deletes key, returning its value, or a *KeyError wrapping
// ErrNotFound if key was absent.
func (t *Tree[K, V]) Remove(key K) (V, error) {
	v, found, _ := t.removeFromNode(t.root, key)
	if !found {
		var zero V
		return zero, &KeyError[K]{Key: key, Err: ErrNotFound}
	}
	t.size--
	t.modCount++

	// I8: collapse a root Branch left with a single child.
	for {
		br, ok := t.root.(*branchNode[K, V])
		if !ok || len(br.keys) != 0 {
			break
		}
		old := br
		t.root = br.children[0]
		t.pool.putBranch(old)
	}
	return v, nil
}

// PopFirst removes and returns the entry with the smallest key, or ErrEmpty
// if the tree has no entries.
func (t *Tree[K, V]) PopFirst() (K, V, error) {
	if t.size == 0 {
		var zk K
		var zv V
		return zk, zv, ErrEmpty
	}
	k := t.leaves.keys[0]
	v, err := t.Remove(k)
	if err != nil {
		var zk K
		var zv V
		return zk, zv, err
	}
	return k, v, nil
}

// Clear empties the tree. If a node pool was configured, every detached
// node is released to it.
func (t *Tree[K, V]) Clear() {
	if t.pool != nil {
		t.releaseAll(t.root)
	}
	root := t.pool.getLeaf(t.capacity)
	t.root = root
	t.leaves = root
	t.size = 0
	t.modCount++
}

// Copy returns an independent tree with the same entries, same capacity,
// and same logger. It is built via BulkLoad over this tree's ascending
// iteration, so it is as well-formed as any bulk-loaded tree.
func (t *Tree[K, V]) Copy() *Tree[K, V] {
	pairs := make([]Entry[K, V], 0, t.size)
	it := t.Entries(nil, nil)
	for it.Next() {
		pairs = append(pairs, Entry[K, V]{Key: it.Key(), Value: it.Value()})
	}
	nt, _ := BulkLoad[K, V](pairs, t.capacity)
	nt.logger = t.logger
	return nt
}

// All returns an iter.Seq2-compatible sequence over every entry in
// ascending key order, for use with range-over-func and with Merge.
func (t *Tree[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		it := t.Entries(nil, nil)
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// descendToLeaf walks from the root to the leaf that would contain key.
func (t *Tree[K, V]) descendToLeaf(key K) *leafNode[K, V] {
	n := t.root
	for {
		br, ok := n.(*branchNode[K, V])
		if !ok {
			return n.(*leafNode[K, V])
		}
		assert.Assert(len(br.children) == len(br.keys)+1,
			"branch has %d children but %d keys", len(br.children), len(br.keys))
		n = br.children[br.route(key)]
	}
}

// lastLeaf walks from the root to the rightmost leaf.
func (t *Tree[K, V]) lastLeaf() *leafNode[K, V] {
	n := t.root
	for {
		br, ok := n.(*branchNode[K, V])
		if !ok {
			return n.(*leafNode[K, V])
		}
		n = br.children[len(br.children)-1]
	}
}

// insertInto recursively descends to the target leaf, absorbing overflow on
// the way back up. It returns the previous value (if key existed) and any
// overflow the parent must absorb.
func (t *Tree[K, V]) insertInto(n node[K, V], key K, value V) (V, bool, *overflow[K, V]) {
	if leaf, ok := n.(*leafNode[K, V]); ok {
		return leaf.insertOrReplace(key, value, t.capacity, t.pool)
	}

	br := n.(*branchNode[K, V])
	idx := br.route(key)
	prev, hadPrev, childOvf := t.insertInto(br.children[idx], key, value)
	if childOvf == nil {
		return prev, hadPrev, nil
	}
	return prev, hadPrev, br.insertChildAfter(idx, childOvf.separator, childOvf.sibling, t.capacity, t.pool)
}

// removeFromNode recursively descends to key's leaf, removes it, and
// resolves any underflow on the way back up. It returns the removed value,
// whether it was found, and whether n itself is now underfull (for the
// caller — n's parent — to resolve against n's siblings).
func (t *Tree[K, V]) removeFromNode(n node[K, V], key K) (V, bool, bool) {
	if leaf, ok := n.(*leafNode[K, V]); ok {
		v, found := leaf.remove(key)
		if !found {
			var zero V
			return zero, false, false
		}
		return v, true, leaf.isUnderfull(t.minKeys)
	}

	br := n.(*branchNode[K, V])
	idx := br.route(key)
	v, found, childUnderfull := t.removeFromNode(br.children[idx], key)
	if !found {
		return v, false, false
	}
	if childUnderfull {
		t.resolveUnderflow(br, idx)
	}
	return v, true, br.isUnderfull(t.minKeys)
}

// resolveUnderflow fixes an underfull child of parent at index idx: prefer
// redistribution from the left sibling, then the right; otherwise merge,
// preferring the left sibling when one exists. If neither sibling can
// donate and merging either would exceed capacity, the child is left
// underfull rather than violate the max-size invariant.
func (t *Tree[K, V]) resolveUnderflow(parent *branchNode[K, V], idx int) {
	var left, right node[K, V]
	if idx > 0 {
		left = parent.children[idx-1]
	}
	if idx < len(parent.children)-1 {
		right = parent.children[idx+1]
	}

	switch child := parent.children[idx].(type) {
	case *leafNode[K, V]:
		if lf, ok := left.(*leafNode[K, V]); ok && lf.canDonate(t.minKeys) {
			parent.keys[idx-1] = child.borrowFromLeft(lf)
			return
		}
		if rf, ok := right.(*leafNode[K, V]); ok && rf.canDonate(t.minKeys) {
			parent.keys[idx] = child.borrowFromRight(rf)
			return
		}
		if lf, ok := left.(*leafNode[K, V]); ok && len(lf.keys)+len(child.keys) <= t.capacity {
			lf.mergeWithRight(child)
			parent.dropChildAt(idx)
			t.pool.putLeaf(child)
			return
		}
		if rf, ok := right.(*leafNode[K, V]); ok && len(child.keys)+len(rf.keys) <= t.capacity {
			child.mergeWithRight(rf)
			parent.dropChildAt(idx + 1)
			t.pool.putLeaf(rf)
			return
		}
		// Neither donation nor merge is possible without violating I5;
		// leave the node underfull (allowed at pathological capacities).

	case *branchNode[K, V]:
		if lb, ok := left.(*branchNode[K, V]); ok && lb.canDonate(t.minKeys) {
			parent.keys[idx-1] = child.borrowFromLeft(lb, parent.keys[idx-1])
			return
		}
		if rb, ok := right.(*branchNode[K, V]); ok && rb.canDonate(t.minKeys) {
			parent.keys[idx] = child.borrowFromRight(rb, parent.keys[idx])
			return
		}
		if lb, ok := left.(*branchNode[K, V]); ok && len(lb.keys)+1+len(child.keys) <= t.capacity {
			lb.mergeWithRight(child, parent.keys[idx-1])
			parent.dropChildAt(idx)
			t.pool.putBranch(child)
			return
		}
		if rb, ok := right.(*branchNode[K, V]); ok && len(child.keys)+1+len(rb.keys) <= t.capacity {
			child.mergeWithRight(rb, parent.keys[idx])
			parent.dropChildAt(idx + 1)
			t.pool.putBranch(rb)
			return
		}
	}
}

// releaseAll walks the subtree rooted at n, releasing every node to the
// pool post-order (children before their parent).
func (t *Tree[K, V]) releaseAll(n node[K, V]) {
	switch v := n.(type) {
	case *leafNode[K, V]:
		t.pool.putLeaf(v)
	case *branchNode[K, V]:
		for _, c := range v.children {
			t.releaseAll(c)
		}
		t.pool.putBranch(v)
	}
}

package bplustree

import (
	"cmp"
	"fmt"
)

// CheckInvariants validates I1-I8 against the tree's current root and leaf
// chain. It is a diagnostic component for tests: O(n), and it never
// mutates the tree. It returns nil if every invariant holds, or an
// *InvariantError naming the first one it finds violated.
//
// I7 (global key uniqueness) is not checked directly: it follows from I1
// (ascending, hence duplicate-free, keys within each leaf) together with I6
// (ascending order across the leaf chain), both of which are checked.
func (t *Tree[K, V]) CheckInvariants() error {
	if br, ok := t.root.(*branchNode[K, V]); ok && len(br.keys) == 0 {
		return &InvariantError{Invariant: "I8", Detail: "root branch has a single child and was not collapsed"}
	}

	if _, err := t.checkNode(t.root, true); err != nil {
		return err
	}
	if err := t.checkLeafChain(); err != nil {
		return err
	}

	if t.logger.Enabled() {
		t.logger.V(1).Info("invariants checked", "size", t.size, "capacity", t.capacity)
	}
	return nil
}

// checkNode validates I1, I2, I4, I5 for the subtree rooted at n, returning
// the depth (in leaves) of that subtree so the caller can check I3.
func (t *Tree[K, V]) checkNode(n node[K, V], isRoot bool) (int, error) {
	switch v := n.(type) {
	case *leafNode[K, V]:
		if err := checkAscending(v.keys); err != nil {
			return 0, &InvariantError{Invariant: "I1", Detail: err.Error()}
		}
		if len(v.keys) != len(v.values) {
			return 0, &InvariantError{Invariant: "I1", Detail: "leaf key/value length mismatch"}
		}
		if !isRoot && v.isUnderfull(t.minKeys) {
			return 0, &InvariantError{Invariant: "I4", Detail: fmt.Sprintf("leaf has %d keys, minimum is %d", len(v.keys), t.minKeys)}
		}
		if len(v.keys) > t.capacity {
			return 0, &InvariantError{Invariant: "I5", Detail: fmt.Sprintf("leaf has %d keys, capacity is %d", len(v.keys), t.capacity)}
		}
		return 1, nil

	case *branchNode[K, V]:
		if err := checkAscending(v.keys); err != nil {
			return 0, &InvariantError{Invariant: "I1", Detail: err.Error()}
		}
		if len(v.children) != len(v.keys)+1 {
			return 0, &InvariantError{Invariant: "I4", Detail: fmt.Sprintf("branch has %d keys but %d children", len(v.keys), len(v.children))}
		}
		if !isRoot && v.isUnderfull(t.minKeys) {
			return 0, &InvariantError{Invariant: "I4", Detail: fmt.Sprintf("branch has %d keys, minimum is %d", len(v.keys), t.minKeys)}
		}
		if len(v.keys) > t.capacity {
			return 0, &InvariantError{Invariant: "I5", Detail: fmt.Sprintf("branch has %d keys, capacity is %d", len(v.keys), t.capacity)}
		}

		depth := -1
		for i, child := range v.children {
			if err := checkBounds(child, i, v.keys); err != nil {
				return 0, err
			}
			d, err := t.checkNode(child, false)
			if err != nil {
				return 0, err
			}
			if depth == -1 {
				depth = d
			} else if depth != d {
				return 0, &InvariantError{Invariant: "I3", Detail: "leaves are not all at the same depth"}
			}
		}
		return depth + 1, nil
	}
	return 0, nil
}

func checkAscending[K cmp.Ordered](keys []K) error {
	for i := 1; i < len(keys); i++ {
		if !(keys[i-1] < keys[i]) {
			return fmt.Errorf("keys not strictly ascending at index %d (%v, %v)", i, keys[i-1], keys[i])
		}
	}
	return nil
}

// checkBounds validates I2 for child, the subtree at index i among a
// branch's children: every key in child must be < keys[i] (if i is not the
// last child) and >= keys[i-1] (if i is not the first).
func checkBounds[K cmp.Ordered, V any](child node[K, V], i int, keys []K) error {
	if i < len(keys) {
		if max, ok := subtreeMax(child); ok && !(max < keys[i]) {
			return &InvariantError{Invariant: "I2", Detail: fmt.Sprintf("child %d max key %v is not < separator %v", i, max, keys[i])}
		}
	}
	if i > 0 {
		if min, ok := subtreeMin(child); ok && min < keys[i-1] {
			return &InvariantError{Invariant: "I2", Detail: fmt.Sprintf("child %d min key %v is < separator %v", i, min, keys[i-1])}
		}
	}
	return nil
}

func subtreeMin[K cmp.Ordered, V any](n node[K, V]) (K, bool) {
	for {
		br, ok := n.(*branchNode[K, V])
		if !ok {
			break
		}
		n = br.children[0]
	}
	leaf := n.(*leafNode[K, V])
	if len(leaf.keys) == 0 {
		var zero K
		return zero, false
	}
	return leaf.keys[0], true
}

func subtreeMax[K cmp.Ordered, V any](n node[K, V]) (K, bool) {
	for {
		br, ok := n.(*branchNode[K, V])
		if !ok {
			break
		}
		n = br.children[len(br.children)-1]
	}
	leaf := n.(*leafNode[K, V])
	if len(leaf.keys) == 0 {
		var zero K
		return zero, false
	}
	return leaf.keys[len(leaf.keys)-1], true
}

// checkLeafChain validates I6: starting from the tree's leaf-chain head,
// following next visits every leaf exactly once in ascending key order.
func (t *Tree[K, V]) checkLeafChain() error {
	seen := make(map[*leafNode[K, V]]bool)
	leaf := t.leaves
	var prevLast K
	havePrev := false

	for leaf != nil {
		if seen[leaf] {
			return &InvariantError{Invariant: "I6", Detail: "leaf chain revisits a node (cycle)"}
		}
		seen[leaf] = true

		if len(leaf.keys) > 0 {
			if havePrev && !(prevLast < leaf.keys[0]) {
				return &InvariantError{Invariant: "I6", Detail: fmt.Sprintf("leaf chain out of order: %v then %v", prevLast, leaf.keys[0])}
			}
			prevLast = leaf.keys[len(leaf.keys)-1]
			havePrev = true
		}
		leaf = leaf.next
	}

	var countLeaves func(n node[K, V]) int
	countLeaves = func(n node[K, V]) int {
		br, ok := n.(*branchNode[K, V])
		if !ok {
			return 1
		}
		total := 0
		for _, c := range br.children {
			total += countLeaves(c)
		}
		return total
	}
	if want := countLeaves(t.root); len(seen) != want {
		return &InvariantError{Invariant: "I6", Detail: fmt.Sprintf("leaf chain visits %d leaves, tree has %d", len(seen), want)}
	}
	return nil
}

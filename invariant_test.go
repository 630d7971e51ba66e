package bplustree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInvariants_EmptyTree(t *testing.T) {
	tr, _ := New[int, string](4)
	assert.NoError(t, tr.CheckInvariants())
}

func TestCheckInvariants_AfterManyOps(t *testing.T) {
	tr, _ := New[int, string](4)
	for i := 0; i < 200; i++ {
		tr.Put(i, "v")
	}
	for i := 0; i < 200; i += 3 {
		tr.Remove(i)
	}
	require.NoError(t, tr.CheckInvariants())
}

func TestCheckInvariants_DetectsKeysOutOfOrder(t *testing.T) {
	tr, _ := New[int, string](4)
	tr.Put(1, "a")
	tr.Put(2, "b")

	leaf := tr.root.(*leafNode[int, string])
	leaf.keys[0], leaf.keys[1] = leaf.keys[1], leaf.keys[0]

	err := tr.CheckInvariants()
	require.Error(t, err)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "I1", invErr.Invariant)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestCheckInvariants_DetectsLeafChainBreak(t *testing.T) {
	tr, _ := New[int, string](4)
	for i := 0; i < 20; i++ {
		tr.Put(i, "v")
	}
	require.NoError(t, tr.CheckInvariants())

	// Snap the chain head's forward link to break I6.
	tr.leaves.next = nil

	err := tr.CheckInvariants()
	require.Error(t, err)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "I6", invErr.Invariant)
}

func TestCheckInvariants_DetectsUncollapsedRoot(t *testing.T) {
	tr, _ := New[int, string](4)
	leaf := tr.root.(*leafNode[int, string])
	fake := &branchNode[int, string]{children: []node[int, string]{leaf}}
	tr.root = fake

	err := tr.CheckInvariants()
	require.Error(t, err)
	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "I8", invErr.Invariant)
}

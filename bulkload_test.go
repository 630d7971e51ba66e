package bplustree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// P5: bulk-load equivalence with repeated Put, for sorted input.
func TestBulkLoad_MatchesInsertion(t *testing.T) {
	const n = 1000
	pairs := make([]Entry[int, int], n)
	for i := 0; i < n; i++ {
		pairs[i] = Entry[int, int]{Key: i, Value: i}
	}

	t1, err := BulkLoad[int, int](pairs, 4)
	require.NoError(t, err)

	t2, err := New[int, int](4)
	require.NoError(t, err)
	for _, p := range pairs {
		t2.Put(p.Key, p.Value)
	}

	require.NoError(t, t1.CheckInvariants())
	require.NoError(t, t2.CheckInvariants())
	assert.Equal(t, t1.Len(), t2.Len())

	it1, it2 := t1.Entries(nil, nil), t2.Entries(nil, nil)
	for it1.Next() {
		require.True(t, it2.Next())
		assert.Equal(t, it1.Entry(), it2.Entry())
	}
	assert.False(t, it2.Next())
}

func TestBulkLoad_Empty(t *testing.T) {
	tr, err := BulkLoad[int, int](nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())
	require.NoError(t, tr.CheckInvariants())
}

func TestBulkLoad_InvalidCapacity(t *testing.T) {
	_, err := BulkLoad[int, int](nil, 2)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestBulkLoad_VariousCapacities(t *testing.T) {
	for _, capacity := range []int{4, 5, 8, 16} {
		const n = 500
		pairs := make([]Entry[int, string], n)
		for i := 0; i < n; i++ {
			pairs[i] = Entry[int, string]{Key: i, Value: "v"}
		}
		tr, err := BulkLoad[int, string](pairs, capacity)
		require.NoError(t, err)
		require.NoError(t, tr.CheckInvariants())
		assert.Equal(t, n, tr.Len())
	}
}

package bplustree

import (
	"sort"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFuzzOperations drives randomized put/remove sequences generated by
// gofuzz against a reference map, checking both round-trip correctness (P3)
// and full structural soundness (P1) after every batch.
func TestFuzzOperations(t *testing.T) {
	f := fuzz.NewWithSeed(1).NilChance(0).NumElements(1, 1)

	tr, err := New[int32, int32](4)
	require.NoError(t, err)
	ref := make(map[int32]int32)

	const batches = 300
	for i := 0; i < batches; i++ {
		var key int32
		var value int32
		var doRemove bool
		f.Fuzz(&key)
		f.Fuzz(&value)
		f.Fuzz(&doRemove)

		// Keep the key space small enough that splits, redistributes, and
		// merges all get exercised within a few hundred operations.
		key %= 64
		if key < 0 {
			key = -key
		}

		if doRemove {
			_, existed := ref[key]
			_, err := tr.Remove(key)
			if existed {
				assert.NoError(t, err)
				delete(ref, key)
			} else {
				assert.ErrorIs(t, err, ErrNotFound)
			}
		} else {
			tr.Put(key, value)
			ref[key] = value
		}

		require.NoError(t, tr.CheckInvariants(), "invariants must hold after operation %d", i)
	}

	assert.Equal(t, len(ref), tr.Len())

	var wantKeys []int32
	for k := range ref {
		wantKeys = append(wantKeys, k)
	}
	sort.Slice(wantKeys, func(i, j int) bool { return wantKeys[i] < wantKeys[j] })

	var gotKeys []int32
	it := tr.Keys(nil, nil)
	for it.Next() {
		gotKeys = append(gotKeys, it.Key())
	}
	assert.Equal(t, wantKeys, gotKeys)
}

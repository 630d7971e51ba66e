package bplustree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaf_LocateAndGet(t *testing.T) {
	l := newLeaf[int, string](4)
	l.keys = []int{1, 3, 5}
	l.values = []string{"a", "c", "e"}

	i, found := l.locate(3)
	assert.True(t, found)
	assert.Equal(t, 1, i)

	i, found = l.locate(4)
	assert.False(t, found)
	assert.Equal(t, 2, i)

	v, ok := l.get(5)
	assert.True(t, ok)
	assert.Equal(t, "e", v)

	_, ok = l.get(99)
	assert.False(t, ok)
}

func TestLeaf_InsertOrReplace_Split(t *testing.T) {
	l := newLeaf[int, string](4)
	for _, k := range []int{1, 2, 3, 4} {
		_, _, ovf := l.insertOrReplace(k, "x", 4, nil)
		assert.Nil(t, ovf)
	}

	_, _, ovf := l.insertOrReplace(5, "x", 4, nil)
	if assert.NotNil(t, ovf) {
		right := ovf.sibling.(*leafNode[int, string])
		assert.Equal(t, []int{1, 2}, l.keys)
		assert.Equal(t, []int{3, 4, 5}, right.keys)
		assert.Equal(t, 3, ovf.separator)
		assert.Same(t, right, l.next)
	}
}

func TestLeaf_BorrowAndMerge(t *testing.T) {
	left := newLeaf[int, string](4)
	left.keys, left.values = []int{1, 2, 3}, []string{"a", "b", "c"}
	right := newLeaf[int, string](4)
	right.keys, right.values = []int{4, 5}, []string{"d", "e"}
	left.next = right

	newSep := right.borrowFromLeft(left)
	assert.Equal(t, []int{1, 2}, left.keys)
	assert.Equal(t, []int{3, 4, 5}, right.keys)
	assert.Equal(t, 3, newSep)

	newSep = left.borrowFromRight(right)
	assert.Equal(t, []int{1, 2, 3}, left.keys)
	assert.Equal(t, []int{4, 5}, right.keys)
	assert.Equal(t, 4, newSep)

	left.mergeWithRight(right)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, left.keys)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, left.values)
	assert.Nil(t, left.next)
}

func TestBranch_Route(t *testing.T) {
	b := &branchNode[int, string]{keys: []int{10, 20, 30}}
	assert.Equal(t, 0, b.route(5))
	assert.Equal(t, 1, b.route(10))
	assert.Equal(t, 1, b.route(15))
	assert.Equal(t, 3, b.route(30))
	assert.Equal(t, 3, b.route(100))
}

func TestBranch_Split(t *testing.T) {
	leaves := make([]node[int, string], 6)
	for i := range leaves {
		leaves[i] = newLeaf[int, string](4)
	}
	b := &branchNode[int, string]{
		keys:     []int{10, 20, 30, 40, 50},
		children: leaves,
	}

	ovf := b.split(4, nil)
	right := ovf.sibling.(*branchNode[int, string])

	assert.Equal(t, []int{10, 20}, b.keys)
	assert.Equal(t, 30, ovf.separator)
	assert.Equal(t, []int{40, 50}, right.keys)
	assert.Len(t, b.children, 3)
	assert.Len(t, right.children, 3)
}

package tree

import (
	"golang.org/x/exp/constraints"
)

// Tree is an AVL interval tree keyed by interval start. Each node caches the
// largest end in its subtree, which lets point queries skip subtrees that end
// before the point.
//
// A Tree is not safe for concurrent use. Reads may run in parallel once all
// inserts are done.
type Tree[T constraints.Integer] struct {
	root *treeNode[T]
	size int
}

// New returns an empty tree.
func New[T constraints.Integer]() *Tree[T] {
	return &Tree[T]{}
}

// Clone returns a deep copy of the tree.
func (r *Tree[T]) Clone() *Tree[T] {
	return &Tree[T]{root: cloneNode(r.root), size: r.size}
}

func cloneNode[T constraints.Integer](n *treeNode[T]) *treeNode[T] {
	if n == nil {
		return nil
	}
	c := *n
	c.Left = cloneNode(n.Left)
	c.Right = cloneNode(n.Right)
	return &c
}

// Insert adds [start, end] to the tree. Reversed bounds are swapped.
func (r *Tree[T]) Insert(start, end T) {
	r.InsertInterval(NewInterval(start, end))
}

// InsertInterval adds iv to the tree. Reversed bounds are swapped.
func (r *Tree[T]) InsertInterval(iv Interval[T]) {
	r.root = insert(r.root, NewInterval(iv.Start, iv.End))
	r.size++
}

// Contains reports whether x lies in at least one stored interval.
// includeStart and includeEnd decide whether x == start and x == end count
// as inside.
func (r *Tree[T]) Contains(x T, includeStart, includeEnd bool) bool {
	if r.root == nil {
		return false
	}
	return r.root.contains(x, includeStart, includeEnd)
}

// ContainsIncludingBorders is Contains with both borders included.
func (r *Tree[T]) ContainsIncludingBorders(x T) bool {
	return r.Contains(x, true, true)
}

// Merge returns the stored intervals collapsed into a sorted list of disjoint
// intervals. Intervals that overlap or touch (no integer between them) are
// joined, so [1,5] and [6,9] become [1,9].
func (r *Tree[T]) Merge() []Interval[T] {
	list := []Interval[T]{}
	if r.root == nil {
		return list
	}
	return r.root.merge(list)
}

// Covered returns how many distinct integers the stored intervals cover.
func (r *Tree[T]) Covered() uint64 {
	return Covered(r.Merge())
}

// Len returns the number of stored intervals.
func (r *Tree[T]) Len() int {
	return r.size
}

// Height returns the height of the tree; 0 when empty.
func (r *Tree[T]) Height() int {
	return height(r.root)
}

// IsEmpty reports whether the tree holds no interval.
func (r *Tree[T]) IsEmpty() bool {
	return r.root == nil
}

// Intervals returns all stored intervals in start order.
func (r *Tree[T]) Intervals() []Interval[T] {
	out := make([]Interval[T], 0, r.size)
	iter := r.Iterate()
	for iter.Next() {
		out = append(out, iter.Interval())
	}
	return out
}

// Iterator walks a tree in order, yielding intervals by ascending start.
type Iterator[T constraints.Integer] struct {
	node        *treeNode[T]
	nodeHistory []*treeNode[T]
}

// Iterate returns an in-order iterator. The tree must not be modified while
// the iterator is in use.
func (r *Tree[T]) Iterate() *Iterator[T] {
	iter := &Iterator[T]{}
	iter.pushLeft(r.root)
	return iter
}

func (iter *Iterator[T]) pushLeft(n *treeNode[T]) {
	for ; n != nil; n = n.Left {
		iter.nodeHistory = append(iter.nodeHistory, n)
	}
}

// Next moves to the next interval. It returns false when there is none.
func (iter *Iterator[T]) Next() bool {
	l := len(iter.nodeHistory)
	if l == 0 {
		iter.node = nil
		return false
	}
	iter.node = iter.nodeHistory[l-1]
	iter.nodeHistory = iter.nodeHistory[:l-1]
	iter.pushLeft(iter.node.Right)
	return true
}

// Interval returns the current interval.
func (iter *Iterator[T]) Interval() Interval[T] {
	return iter.node.Interval
}

package tree

import "golang.org/x/exp/constraints"

// treeNode holds one interval plus the aggregates cached over its subtree.
// A node owns its children; there are no parent links. Every restructuring
// function takes a subtree root and returns the root that replaces it.
type treeNode[T constraints.Integer] struct {
	Interval[T]
	MaxEnd T // largest End in this subtree
	Height int
	Left   *treeNode[T]
	Right  *treeNode[T]
}

func newLeaf[T constraints.Integer](r Interval[T]) *treeNode[T] {
	return &treeNode[T]{Interval: r, MaxEnd: r.End, Height: 1}
}

func height[T constraints.Integer](n *treeNode[T]) int {
	if n == nil {
		return 0
	}
	return n.Height
}

// balance returns height(left) - height(right).
func (n *treeNode[T]) balance() int {
	return height(n.Left) - height(n.Right)
}

// update recomputes Height and MaxEnd from the node's own interval and its
// children. Children must already be up to date.
func (n *treeNode[T]) update() {
	n.Height = 1 + max(height(n.Left), height(n.Right))
	n.MaxEnd = n.End
	if n.Left != nil && n.Left.MaxEnd > n.MaxEnd {
		n.MaxEnd = n.Left.MaxEnd
	}
	if n.Right != nil && n.Right.MaxEnd > n.MaxEnd {
		n.MaxEnd = n.Right.MaxEnd
	}
}

// rotateRight lifts the left child of n into n's place.
//
//	    n            l
//	   / \          / \
//	  l   c   =>   a   n
//	 / \              / \
//	a   b            b   c
func rotateRight[T constraints.Integer](n *treeNode[T]) *treeNode[T] {
	l := n.Left
	if l == nil {
		panic("rotateRight on a node without left child")
	}
	n.Left = l.Right
	l.Right = n
	// n is now below l, so it goes first
	n.update()
	l.update()
	return l
}

// rotateLeft lifts the right child of n into n's place.
//
//	  n                r
//	 / \              / \
//	a   r     =>     n   c
//	   / \          / \
//	  b   c        a   b
func rotateLeft[T constraints.Integer](n *treeNode[T]) *treeNode[T] {
	r := n.Right
	if r == nil {
		panic("rotateLeft on a node without right child")
	}
	n.Right = r.Left
	r.Left = n
	n.update()
	r.update()
	return r
}

// insert places iv below n and returns the rebalanced subtree root.
func insert[T constraints.Integer](n *treeNode[T], iv Interval[T]) *treeNode[T] {
	if n == nil {
		return newLeaf(iv)
	}
	if iv.Start < n.Start {
		n.Left = insert(n.Left, iv)
	} else {
		n.Right = insert(n.Right, iv)
	}
	n.update()

	switch b := n.balance(); {
	case b > 1:
		if iv.Start < n.Left.Start {
			// left-left
			return rotateRight(n)
		}
		// left-right
		n.Left = rotateLeft(n.Left)
		return rotateRight(n)
	case b < -1:
		if iv.Start >= n.Right.Start {
			// right-right
			return rotateLeft(n)
		}
		// right-left
		n.Right = rotateRight(n.Right)
		return rotateLeft(n)
	}
	return n
}

// contains reports whether x lies in any interval of the subtree rooted at n.
// The border flags decide whether x == Start and x == End count as inside.
func (n *treeNode[T]) contains(x T, includeStart, includeEnd bool) bool {
	startOk := n.Start < x || (includeStart && n.Start == x)
	if startOk && reaches(x, n.End, includeEnd) {
		return true
	}
	if n.Left != nil && reaches(x, n.Left.MaxEnd, includeEnd) &&
		n.Left.contains(x, includeStart, includeEnd) {
		return true
	}
	// every Start on the right is >= n.Start, so a failed startOk rules the
	// whole right subtree out
	if startOk && n.Right != nil && reaches(x, n.Right.MaxEnd, includeEnd) &&
		n.Right.contains(x, includeStart, includeEnd) {
		return true
	}
	return false
}

// reaches reports whether an interval ending at end can cover x.
func reaches[T constraints.Integer](x, end T, includeEnd bool) bool {
	if includeEnd {
		return x <= end
	}
	return x < end
}

// merge appends the intervals of the subtree in start order to list,
// coalescing overlapping and touching ones.
func (n *treeNode[T]) merge(list []Interval[T]) []Interval[T] {
	if n.Left != nil {
		list = n.Left.merge(list)
	}
	list = appendMerged(list, n.Interval)
	if n.Right != nil {
		list = n.Right.merge(list)
	}
	return list
}

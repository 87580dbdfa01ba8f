package tree

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Build returns a tree holding all intervals, with minimal height. Reversed
// bounds are normalized. The input slice is not modified.
func Build[T constraints.Integer](intervals []Interval[T]) *Tree[T] {
	sorted := make([]Interval[T], len(intervals))
	for i, r := range intervals {
		sorted[i] = NewInterval(r.Start, r.End)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	return &Tree[T]{
		root: buildNode(sorted),
		size: len(sorted),
	}
}

// BuildPairs is Build for a slice of [start, end] pairs.
func BuildPairs[T constraints.Integer](pairs [][2]T) *Tree[T] {
	intervals := make([]Interval[T], 0, len(pairs))
	for _, p := range pairs {
		intervals = append(intervals, Interval[T]{Start: p[0], End: p[1]})
	}
	return Build(intervals)
}

// buildNode splits sorted on its median, recursively. No rotation is needed:
// the halves differ in size by at most one, so the result is balanced.
func buildNode[T constraints.Integer](sorted []Interval[T]) *treeNode[T] {
	if len(sorted) == 0 {
		return nil
	}
	mid := len(sorted) / 2
	n := &treeNode[T]{Interval: sorted[mid]}
	n.Left = buildNode(sorted[:mid])
	n.Right = buildNode(sorted[mid+1:])
	n.update()
	return n
}

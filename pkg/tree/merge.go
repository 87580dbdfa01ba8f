package tree

import (
	"math"
	"math/bits"
	"sort"

	"golang.org/x/exp/constraints"
)

// appendMerged adds cur to list, which is sorted by Start and disjoint.
// cur must not start before the last entry of list.
func appendMerged[T constraints.Integer](list []Interval[T], cur Interval[T]) []Interval[T] {
	if len(list) == 0 {
		return append(list, cur)
	}
	last := &list[len(list)-1]
	switch {
	case cur.Start <= last.End:
		// overlap, or cur entirely contained in last
		//
		//   last
		// s------e
		//     s-----e
		//       cur
		if cur.End > last.End {
			last.End = cur.End
		}
	case cur.Start-1 == last.End:
		// no integer between them, merge.
		//
		//   last    cur
		// s------es-----e
		last.End = cur.End
	default:
		//   last       cur
		// s------e  s-----e
		list = append(list, cur)
	}
	return list
}

// MergeIntervals returns the minimal sorted set of disjoint intervals covering
// rr. rr is not modified.
func MergeIntervals[T constraints.Integer](rr []Interval[T]) []Interval[T] {
	sorted := make([]Interval[T], len(rr))
	copy(sorted, rr)
	for i := range sorted {
		sorted[i] = NewInterval(sorted[i].Start, sorted[i].End)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Interval[T], 0, len(sorted))
	for _, r := range sorted {
		out = appendMerged(out, r)
	}
	return out
}

// Covered returns the number of integers covered by a disjoint set of
// intervals, as returned by Merge. The count saturates at math.MaxUint64.
func Covered[T constraints.Integer](merged []Interval[T]) uint64 {
	var total uint64
	for _, r := range merged {
		sum, carry := bits.Add64(total, r.Len(), 0)
		if carry != 0 {
			return math.MaxUint64
		}
		total = sum
	}
	return total
}

package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Interval is the closed range [Start, End].
type Interval[T constraints.Integer] struct {
	Start T
	End   T
}

// NewInterval returns the interval covering a and b, swapping the bounds when
// they are given in reverse order.
func NewInterval[T constraints.Integer](a, b T) Interval[T] {
	if a > b {
		a, b = b, a
	}
	return Interval[T]{Start: a, End: b}
}

// Len returns the number of integers covered by r. A range spanning all 2^64
// values of a 64-bit type saturates at math.MaxUint64.
func (r Interval[T]) Len() uint64 {
	// wraps correctly for signed bounds too
	n := uint64(r.End) - uint64(r.Start)
	if n == math.MaxUint64 {
		return n
	}
	return n + 1
}

// Contains reports whether x lies in r, borders included.
func (r Interval[T]) Contains(x T) bool {
	return r.Start <= x && x <= r.End
}

func (r Interval[T]) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseInterval parses a "<start>-<end>" record. Negative bounds are allowed,
// e.g. "-10--3". Reversed bounds are normalized.
func ParseInterval[T constraints.Integer](s string) (Interval[T], error) {
	var r Interval[T]
	s = strings.TrimSpace(s)
	if s == "" {
		return r, fmt.Errorf("empty range")
	}
	// the separator is the first hyphen that is not a leading sign
	h := strings.IndexByte(s[1:], '-')
	if h == -1 {
		return r, fmt.Errorf("no hyphen in range %q", s)
	}
	h++
	from, to := s[:h], s[h+1:]
	start, err := parseBound[T](from)
	if err != nil {
		return r, fmt.Errorf("invalid start %q in range %q", from, s)
	}
	end, err := parseBound[T](to)
	if err != nil {
		return r, fmt.Errorf("invalid end %q in range %q", to, s)
	}
	return NewInterval(start, end), nil
}

// ParsePoint parses a single query point.
func ParsePoint[T constraints.Integer](s string) (T, error) {
	return parseBound[T](strings.TrimSpace(s))
}

func parseBound[T constraints.Integer](s string) (T, error) {
	var zero T
	size := bitSize[T]()
	if signed[T]() {
		v, err := strconv.ParseInt(s, 10, size)
		if err != nil {
			return zero, err
		}
		return T(v), nil
	}
	v, err := strconv.ParseUint(s, 10, size)
	if err != nil {
		return zero, err
	}
	return T(v), nil
}

// bitSize returns the width of T in bits.
func bitSize[T constraints.Integer]() int {
	n := 0
	for x := T(1); x != 0; x <<= 1 {
		n++
	}
	return n
}

func signed[T constraints.Integer]() bool {
	var zero T
	return zero-1 < zero
}

package tree

import (
	"math"
	"testing"

	"github.com/tj/assert"
)

func TestParseInterval(t *testing.T) {
	cases := map[string]struct {
		s           string
		expected    Interval[int64]
		expectedErr bool
	}{
		"Normal":        {s: "3-5", expected: Interval[int64]{3, 5}},
		"Spaces":        {s: " 10-14 ", expected: Interval[int64]{10, 14}},
		"Reversed":      {s: "14-10", expected: Interval[int64]{10, 14}},
		"Negative":      {s: "-10--3", expected: Interval[int64]{-10, -3}},
		"NegativeStart": {s: "-4-2", expected: Interval[int64]{-4, 2}},
		"Large":         {s: "3337331089436-6567823434113", expected: Interval[int64]{3337331089436, 6567823434113}},
		"NoHyphen":      {s: "42", expectedErr: true},
		"Empty":         {s: "", expectedErr: true},
		"BadStart":      {s: "a-5", expectedErr: true},
		"BadEnd":        {s: "5-", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := ParseInterval[int64](tc.s)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, r)
		})
	}
}

func TestParseIntervalUnsigned(t *testing.T) {
	r, err := ParseInterval[uint16]("100-65535")
	assert.NoError(t, err)
	assert.Equal(t, Interval[uint16]{100, 65535}, r)

	_, err = ParseInterval[uint16]("100-65536")
	assert.Error(t, err)

	_, err = ParseInterval[uint16]("-1-5")
	assert.Error(t, err)
}

func TestParsePoint(t *testing.T) {
	x, err := ParsePoint[int]("17")
	assert.NoError(t, err)
	assert.Equal(t, 17, x)

	_, err = ParsePoint[int]("17-18")
	assert.Error(t, err)
}

func TestIntervalLen(t *testing.T) {
	assert.Equal(t, uint64(1), NewInterval(5, 5).Len())
	assert.Equal(t, uint64(11), NewInterval(10, 0).Len())
	assert.Equal(t, uint64(256), Interval[int8]{-128, 127}.Len())
	assert.Equal(t, "3-7", NewInterval(7, 3).String())
}

func TestIntervalLenFullWidth(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), NewInterval[int64](math.MinInt64, math.MaxInt64).Len())
	assert.Equal(t, uint64(math.MaxUint64), NewInterval[uint64](0, math.MaxUint64).Len())
	assert.Equal(t, uint64(math.MaxUint64), NewInterval[int64](math.MinInt64, math.MaxInt64-1).Len())
	assert.Equal(t, uint64(1)<<32, NewInterval[int32](math.MinInt32, math.MaxInt32).Len())
}

func TestBitSize(t *testing.T) {
	assert.Equal(t, 8, bitSize[int8]())
	assert.Equal(t, 8, bitSize[uint8]())
	assert.Equal(t, 16, bitSize[int16]())
	assert.Equal(t, 32, bitSize[uint32]())
	assert.Equal(t, 64, bitSize[int64]())
	assert.Equal(t, 64, bitSize[uint64]())

	_, err := ParsePoint[int8]("128")
	assert.Error(t, err)
	x, err := ParsePoint[int8]("-128")
	assert.NoError(t, err)
	assert.Equal(t, int8(-128), x)
	_, err = ParsePoint[uint32]("4294967296")
	assert.Error(t, err)
}

package rangetable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/intervaltree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

func getLabelSelector(t *testing.T, l map[string]string) labels.Selector {
	t.Helper()
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		require.NoError(t, err)
		fullselector = fullselector.Add(*req)
	}
	return fullselector
}

func newTestTable(t *testing.T) RangeTable {
	t.Helper()
	r := New()
	require.NoError(t, r.Claim("fresh", "3-5", labels.Set{"kind": "fresh"}))
	require.NoError(t, r.Claim("fresh", "10-14", nil))
	require.NoError(t, r.Claim("fresh", "20-16", nil))
	require.NoError(t, r.Claim("fresh", "12-18", nil))
	require.NoError(t, r.ClaimAll("spoiled", []tree.Interval[int64]{{Start: 30, End: 40}, {Start: 6, End: 7}},
		labels.Set{"kind": "spoiled"}))
	return r
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		name        string
		s           string
		expectedErr bool
	}{
		"Normal":    {name: "a", s: "1-2"},
		"Negative":  {name: "a", s: "-5--1"},
		"NoHyphen":  {name: "a", s: "12", expectedErr: true},
		"NotNumber": {name: "a", s: "x-y", expectedErr: true},
		"NoName":    {name: "", s: "1-2", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := New()
			err := r.Claim(tc.name, tc.s, nil)
			if tc.expectedErr {
				assert.Error(t, err)
				assert.Equal(t, 0, r.Size())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, r.Size())
		})
	}

	assert.Error(t, New().ClaimAll("", nil, nil))
}

func TestContains(t *testing.T) {
	r := newTestTable(t)

	cases := map[string]struct {
		selector labels.Selector
		x        int64
		expected bool
	}{
		"FreshInside":      {selector: getLabelSelector(t, map[string]string{"kind": "fresh"}), x: 5, expected: true},
		"FreshOutside":     {selector: getLabelSelector(t, map[string]string{"kind": "fresh"}), x: 6},
		"SpoiledInside":    {selector: getLabelSelector(t, map[string]string{"kind": "spoiled"}), x: 6, expected: true},
		"EverythingInside": {selector: labels.Everything(), x: 35, expected: true},
		"EverythingGap":    {selector: labels.Everything(), x: 25},
		"NoMatch":          {selector: getLabelSelector(t, map[string]string{"kind": "other"}), x: 5},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Contains(tc.x, tc.selector))
		})
	}
}

func TestMerge(t *testing.T) {
	r := newTestTable(t)

	cases := map[string]struct {
		selector labels.Selector
		expected []tree.Interval[int64]
	}{
		"Fresh": {
			selector: getLabelSelector(t, map[string]string{"kind": "fresh"}),
			expected: []tree.Interval[int64]{{Start: 3, End: 5}, {Start: 10, End: 20}},
		},
		"Everything": {
			selector: labels.Everything(),
			expected: []tree.Interval[int64]{{Start: 3, End: 7}, {Start: 10, End: 20}, {Start: 30, End: 40}},
		},
		"Nothing": {
			selector: labels.Nothing(),
			expected: []tree.Interval[int64]{},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, r.Merge(tc.selector)); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestUpdateRelease(t *testing.T) {
	r := newTestTable(t)

	assert.NoError(t, r.Update("spoiled", labels.Set{"kind": "fresh"}))
	fresh := getLabelSelector(t, map[string]string{"kind": "fresh"})
	assert.True(t, r.Contains(31, fresh))
	assert.Len(t, r.GetByLabel(fresh), 2)

	assert.NoError(t, r.Release("spoiled"))
	assert.False(t, r.Contains(31, fresh))
	assert.Error(t, r.Release("spoiled"))
	assert.Error(t, r.Update("spoiled", nil))

	_, err := r.Get("spoiled")
	assert.Error(t, err)
	e, err := r.Get("fresh")
	assert.NoError(t, err)
	assert.Equal(t, "fresh", e.Name())
	assert.Len(t, e.Intervals(), 4)
	assert.Equal(t, labels.Set{"kind": "fresh"}, e.Labels())
	if diff := cmp.Diff([]string{"fresh"}, r.Names()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestConcurrentReads(t *testing.T) {
	r := newTestTable(t)
	sel := labels.Everything()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(x int64) {
			defer wg.Done()
			for j := int64(0); j < 50; j++ {
				r.Contains(x+j, sel)
				r.Merge(sel)
			}
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, 2, r.Size())
}

func TestEntryIsSnapshot(t *testing.T) {
	r := New()
	require.NoError(t, r.Claim("a", "1-2", labels.Set{"kind": "fresh"}))

	e, err := r.Get("a")
	require.NoError(t, err)
	entries := r.GetByLabel(labels.Everything())
	require.Len(t, entries, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := int64(0); i < 200; i++ {
			assert.NoError(t, r.Claim("a", fmt.Sprintf("%d-%d", 10*i, 10*i+5), nil))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			e.Merged()
			e.Intervals()
			entries[0].Merged()
		}
	}()
	wg.Wait()

	// the entries were taken before the claims above
	if diff := cmp.Diff([]tree.Interval[int64]{{Start: 1, End: 2}}, e.Merged()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	assert.Len(t, entries[0].Intervals(), 1)

	e, err = r.Get("a")
	require.NoError(t, err)
	assert.Len(t, e.Intervals(), 201)
}

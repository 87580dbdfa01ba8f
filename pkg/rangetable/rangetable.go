package rangetable

import (
	"fmt"
	"sort"
	"sync"

	"github.com/henderiw/intervaltree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

// RangeTable keeps named sets of int64 ranges, each tagged with labels.
// Queries select sets by label and look at the union of the matching sets.
//
// Locking lets callers share a table between goroutines; writers still block
// readers, so load everything first and query afterwards.
type RangeTable interface {
	Get(name string) (Entry, error)
	Claim(name, s string, labels labels.Set) error
	ClaimAll(name string, intervals []tree.Interval[int64], labels labels.Set) error
	Update(name string, labels labels.Set) error
	Release(name string) error

	Contains(x int64, selector labels.Selector) bool
	Merge(selector labels.Selector) []tree.Interval[int64]
	GetByLabel(selector labels.Selector) Entries

	Names() []string
	Size() int
}

func New() RangeTable {
	return &rangeTable{
		m:       new(sync.RWMutex),
		entries: map[string]*entry{},
	}
}

type rangeTable struct {
	m       *sync.RWMutex
	entries map[string]*entry
}

func (r *rangeTable) Get(name string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("entry %s not found", name)
	}
	return e.snapshot(), nil
}

// Claim parses s as "<start>-<end>" and adds it to the set called name,
// creating the set if needed. Labels of an existing set are replaced when
// labels is not nil.
func (r *rangeTable) Claim(name, s string, labels labels.Set) error {
	if name == "" {
		return fmt.Errorf("cannot claim ranges without a name")
	}
	iv, err := tree.ParseInterval[int64](s)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	e := r.getOrCreate(name, labels)
	e.tree.InsertInterval(iv)
	return nil
}

// ClaimAll replaces the set called name with one bulk loaded from intervals.
func (r *rangeTable) ClaimAll(name string, intervals []tree.Interval[int64], labels labels.Set) error {
	if name == "" {
		return fmt.Errorf("cannot claim ranges without a name")
	}
	t := tree.Build(intervals)

	r.m.Lock()
	defer r.m.Unlock()

	r.entries[name] = &entry{name: name, labels: copyLabels(labels), tree: t}
	return nil
}

func (r *rangeTable) Update(name string, labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	e.labels = copyLabels(labels)
	return nil
}

func (r *rangeTable) Release(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	delete(r.entries, name)
	return nil
}

func (r *rangeTable) Contains(x int64, selector labels.Selector) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	for _, e := range r.entries {
		if selector.Matches(e.labels) && e.tree.ContainsIncludingBorders(x) {
			return true
		}
	}
	return false
}

// Merge returns the coalesced cover of all sets matching selector.
func (r *rangeTable) Merge(selector labels.Selector) []tree.Interval[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	var all []tree.Interval[int64]
	for _, e := range r.entries {
		if selector.Matches(e.labels) {
			all = append(all, e.tree.Merge()...)
		}
	}
	return tree.MergeIntervals(all)
}

func (r *rangeTable) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := Entries{}
	for _, name := range r.names() {
		e := r.entries[name]
		if selector.Matches(e.labels) {
			entries = append(entries, e.snapshot())
		}
	}
	return entries
}

func (r *rangeTable) Names() []string {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.names()
}

func (r *rangeTable) names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *rangeTable) Size() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return len(r.entries)
}

func (r *rangeTable) getOrCreate(name string, l labels.Set) *entry {
	e, ok := r.entries[name]
	if !ok {
		e = &entry{name: name, labels: labels.Set{}, tree: tree.New[int64]()}
		r.entries[name] = e
	}
	if l != nil {
		e.labels = copyLabels(l)
	}
	return e
}

func copyLabels(l labels.Set) labels.Set {
	out := make(labels.Set, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

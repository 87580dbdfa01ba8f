package rangetable

import (
	"fmt"

	"github.com/henderiw/intervaltree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a copy of one named range set, taken when it was looked up.
// Later claims on the table do not show up in it.
type Entry interface {
	Name() string
	Labels() labels.Set
	Intervals() []tree.Interval[int64]
	Merged() []tree.Interval[int64]
	String() string
}

type entry struct {
	name   string
	labels labels.Set
	tree   *tree.Tree[int64]
}

type Entries []Entry

func (r *entry) Name() string { return r.name }
func (r *entry) Labels() labels.Set { return copyLabels(r.labels) }
func (r *entry) Intervals() []tree.Interval[int64] { return r.tree.Intervals() }
func (r *entry) Merged() []tree.Interval[int64] { return r.tree.Merge() }
func (r *entry) String() string {
	return fmt.Sprintf("name: %s, ranges: %d, labels: %s", r.name, r.tree.Len(), r.labels.String())
}

// snapshot copies r so it can be read without holding the table lock.
// The caller must hold at least the read lock.
func (r *entry) snapshot() *entry {
	return &entry{
		name:   r.name,
		labels: copyLabels(r.labels),
		tree:   r.tree.Clone(),
	}
}

package tree

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a pre-order rendering of the tree to w, one node per line:
//
//	Root: [5-6, max:20, h:2]
//	├──L: [1-2, max:2, h:1]
//	└──R: [10-20, max:20, h:1]
//
// The format is meant for debugging and may change.
func (r *Tree[T]) Fprint(w io.Writer) error {
	if r.root == nil {
		_, err := fmt.Fprintln(w, "Empty tree")
		return err
	}
	if _, err := fmt.Fprintf(w, "Root: %s\n", r.root.label()); err != nil {
		return err
	}
	if err := r.root.Left.fprint(w, "", true); err != nil {
		return err
	}
	return r.root.Right.fprint(w, "", false)
}

func (r *Tree[T]) String() string {
	var sb strings.Builder
	_ = r.Fprint(&sb)
	return sb.String()
}

func (n *treeNode[T]) label() string {
	return fmt.Sprintf("[%d-%d, max:%d, h:%d]", n.Start, n.End, n.MaxEnd, n.Height)
}

func (n *treeNode[T]) fprint(w io.Writer, prefix string, isLeft bool) error {
	if n == nil {
		return nil
	}
	branch, indent := "└──R: ", "    "
	if isLeft {
		branch, indent = "├──L: ", "│   "
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label()); err != nil {
		return err
	}
	if err := n.Left.fprint(w, prefix+indent, true); err != nil {
		return err
	}
	return n.Right.fprint(w, prefix+indent, false)
}

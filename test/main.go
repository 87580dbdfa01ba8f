package main

import (
	"fmt"

	"github.com/henderiw/intervaltree/pkg/iptree"
	"github.com/henderiw/intervaltree/pkg/rangetable"
	"github.com/henderiw/intervaltree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

var values = []struct {
	name   string
	rng    string
	labels map[string]string
}{
	{name: "a", rng: "100-200", labels: map[string]string{"a": "b"}},
	{name: "a", rng: "150-300"},
	{name: "b", rng: "301-400", labels: map[string]string{"a": "c"}},
	{name: "c", rng: "1000-2000"},
}

func main() {
	t := tree.BuildPairs([][2]int{{1, 2}, {10, 20}, {5, 6}})
	fmt.Print(t)
	fmt.Println("merge", t.Merge())

	for _, s := range []int{3, 5, 7, 40} {
		t.Insert(s, s+2)
	}
	fmt.Print(t)
	fmt.Println("merge", t.Merge(), "covered", t.Covered())

	rt := rangetable.New()
	for _, v := range values {
		if err := rt.Claim(v.name, v.rng, v.labels); err != nil {
			panic(err)
		}
	}
	ls, err := GetLabelSelector(map[string]string{"a": "b"})
	if err != nil {
		panic(err)
	}
	for _, e := range rt.GetByLabel(ls) {
		fmt.Println("entries by label", e.String())
	}
	fmt.Println("contains 250", rt.Contains(250, ls))
	fmt.Println("contains 350", rt.Contains(350, ls))
	fmt.Println("merge all", rt.Merge(labels.Everything()))

	ipt := iptree.New()
	for _, r := range []string{"10.0.0.0/24", "10.0.1.0/24", "192.168.0.1"} {
		if err := ipt.Insert(r); err != nil {
			panic(err)
		}
	}
	found, err := ipt.Contains("10.0.1.17")
	if err != nil {
		panic(err)
	}
	fmt.Println("ip found", found, "ranges", ipt.Merge(), "covered", ipt.Covered())
}

func GetLabelSelector(l map[string]string) (labels.Selector, error) {
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		if err != nil {
			return nil, err
		}
		fullselector = fullselector.Add(*req)
	}
	return fullselector, nil
}

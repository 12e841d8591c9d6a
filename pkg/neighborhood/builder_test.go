package neighborhood

import (
	"testing"

	"github.com/polynav/polynav/pkg/foundation"
)

// buildGraph constructs a deeper polyhierarchy for builder tests:
//
//	root (0)
//	└ chapter (1)
//	  ├ a (2)
//	  │ └ c (3)
//	  └ b (2)
//	    └ c (3)        # c has two parents
//	c has children: c1, c2, c3
func buildGraph() *foundation.Graph {
	return foundation.New(foundation.Dataset{
		"root":    {Title: "Root", Children: []string{"chapter"}, Depth: 0},
		"chapter": {Title: "Chapter", Parents: []string{"root"}, Children: []string{"a", "b"}, Depth: 1},
		"a":       {Title: "A", Parents: []string{"chapter"}, Children: []string{"c"}, Depth: 2},
		"b":       {Title: "B", Parents: []string{"chapter"}, Children: []string{"c"}, Depth: 2},
		"c":       {Title: "C", Parents: []string{"a", "b"}, Children: []string{"c1", "c2", "c3"}, Depth: 3},
		"c1":      {Title: "C1", Parents: []string{"c"}, Depth: 4, DescendantCount: 0},
		"c2":      {Title: "C2", Parents: []string{"c"}, Depth: 4},
		"c3":      {Title: "C3", Parents: []string{"c"}, Depth: 4, DescendantCount: 5},
	})
}

func TestBuildAncestorExpansion(t *testing.T) {
	g := buildGraph()
	set := Build(g, "c")

	// Both parent paths fan out; root and chapter are below the depth filter.
	for _, want := range []Item{Real("a"), Real("b"), Real("c")} {
		if !set.Has(want) {
			t.Errorf("initial neighborhood missing %v", want)
		}
	}
	for _, notWant := range []Item{Real("root"), Real("chapter")} {
		if set.Has(notWant) {
			t.Errorf("initial neighborhood should exclude near-universal ancestor %v", notWant)
		}
	}
}

func TestBuildChildClustering(t *testing.T) {
	g := buildGraph()

	t.Run("ClusteredWhenOverLimit", func(t *testing.T) {
		set := Build(g, "c")
		if !set.Has(Real("c1")) || !set.Has(Real("c2")) {
			t.Error("first MaxVisibleChildren children should be displayed individually")
		}
		if set.Has(Real("c3")) {
			t.Error("children beyond the limit should be hidden behind the cluster")
		}
		if !set.Has(ClusterOf("c")) {
			t.Error("expected exactly one cluster placeholder for the focus")
		}
	})

	t.Run("AllChildrenWhenAtLimit", func(t *testing.T) {
		set := Build(g, "chapter")
		if !set.Has(Real("a")) || !set.Has(Real("b")) {
			t.Error("all children should be displayed when childCount <= MaxVisibleChildren")
		}
		if set.Has(ClusterOf("chapter")) {
			t.Error("no cluster expected when childCount <= MaxVisibleChildren")
		}
	})
}

func TestBuildDeterministic(t *testing.T) {
	g := buildGraph()
	first := Build(g, "c")
	for range 10 {
		if got := Build(g, "c"); !got.Equal(first) {
			t.Fatalf("Build is not deterministic: %v vs %v", got.Strings(), first.Strings())
		}
	}
}

func TestBuildUnknownFocus(t *testing.T) {
	g := buildGraph()
	if set := Build(g, "missing"); set.Len() != 0 {
		t.Errorf("unknown focus should produce an empty set, got %v", set.Strings())
	}
}

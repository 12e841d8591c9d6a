package foundation

import (
	"bytes"
	"slices"
	"testing"
)

// testDataset builds a small polyhierarchy:
//
//	root -> a -> c, d
//	root -> b -> d
//
// "d" has two parents. "a" also references a child "ghost" that is not part
// of the dataset.
func testDataset() Dataset {
	return Dataset{
		"root": {Title: "Root", Children: []string{"a", "b"}, Depth: 0, Height: 2},
		"a":    {Title: "A", Parents: []string{"root"}, Children: []string{"c", "d", "ghost"}, Depth: 1, Height: 1},
		"b":    {Title: "B", Parents: []string{"root"}, Children: []string{"d"}, Depth: 1, Height: 1},
		"c":    {Title: "C", Parents: []string{"a"}, Depth: 2},
		"d":    {Title: "D", Parents: []string{"a", "b"}, Depth: 2, MaxDepth: 2},
	}
}

func TestChildrenOrder(t *testing.T) {
	g := New(testDataset())

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{name: "Root", id: "root", want: []string{"a", "b"}},
		{name: "DanglingChildDropped", id: "a", want: []string{"c", "d"}},
		{name: "Leaf", id: "c", want: nil},
		{name: "Unknown", id: "nope", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range g.Children(tt.id) {
				got = append(got, c.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Children(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParents(t *testing.T) {
	g := New(testDataset())

	got := g.Parents("d")
	if len(got) != 2 {
		t.Fatalf("Parents(d) returned %d nodes, want 2", len(got))
	}
	ids := []string{got[0].ID, got[1].ID}
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("Parents(d) = %v, want [a b]", ids)
	}

	if g.Parents("root") != nil {
		t.Error("Parents(root) should be nil")
	}
}

func TestCountsReflectFilteredEdges(t *testing.T) {
	g := New(testDataset())

	a, ok := g.Node("a")
	if !ok {
		t.Fatal("node a missing")
	}
	if a.ChildCount != 2 {
		t.Errorf("ChildCount = %d, want 2 (dangling ref dropped)", a.ChildCount)
	}

	d, _ := g.Node("d")
	if d.ParentCount != 2 {
		t.Errorf("ParentCount = %d, want 2", d.ParentCount)
	}
}

func TestRootDetection(t *testing.T) {
	g := New(testDataset())
	if got := g.Root(); got != "root" {
		t.Errorf("Root() = %q, want %q", got, "root")
	}
}

func TestHas(t *testing.T) {
	g := New(testDataset())
	if !g.Has("d") {
		t.Error("Has(d) = false, want true")
	}
	if g.Has("ghost") {
		t.Error("Has(ghost) = true, want false")
	}
}

func TestQueryBeforeLoadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("querying a zero-value Graph should panic")
		}
	}()
	var g Graph
	g.Has("root")
}

func TestDatasetRoundTrip(t *testing.T) {
	ds := testDataset()

	var buf bytes.Buffer
	if err := WriteDataset(ds, &buf); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	got, err := ReadDataset(&buf)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}

	if len(got) != len(ds) {
		t.Fatalf("round trip returned %d records, want %d", len(got), len(ds))
	}
	if !slices.Equal(got["a"].Children, ds["a"].Children) {
		t.Errorf("children order lost: %v vs %v", got["a"].Children, ds["a"].Children)
	}
}

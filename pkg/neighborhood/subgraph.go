package neighborhood

import "slices"

// Node is a vertex of the induced neighborhood subgraph: either a real
// concept (stats copied from the graph, cluster fields zero) or a
// synthesized cluster placeholder (cluster fields populated).
type Node struct {
	Item  Item
	Title string

	// Stats of real concepts, copied from the main graph.
	ChildCount      int
	ParentCount     int
	DescendantCount int
	Depth           int

	// Cluster attributes, populated only for cluster items.
	Count            int      // number of hidden children
	ChildIDs         []string // the hidden children, in child order
	TotalDescendants int      // sum of their descendant counts
}

// Edge is a directed parent->child connection between two displayed items.
type Edge struct {
	From Item
	To   Item
}

// Subgraph is the induced subgraph over a displayed-item set. It is built
// fresh from the main graph each time the renderer needs geometry and is
// never shared mutable state: pruning operates on a private copy.
type Subgraph struct {
	nodes map[Item]*Node
	edges []Edge
}

// BuildSubgraph induces a subgraph from the displayed set:
//
//   - a real node is included iff its id is displayed and present in g
//   - an edge (u, v) is included iff both endpoints are included and the
//     edge exists in g
//   - each displayed cluster whose parent is included is synthesized with
//     its hidden-children attributes and a single parent->cluster edge;
//     clusters whose parent is absent are dropped, never left dangling
//
// Building is deterministic and idempotent: identical inputs produce
// structurally identical subgraphs.
func BuildSubgraph(g GraphReader, displayed Set) *Subgraph {
	sg := &Subgraph{nodes: make(map[Item]*Node)}

	items := displayed.Sorted()
	for _, it := range items {
		if it.Kind != KindReal {
			continue
		}
		n, ok := g.Node(it.ID)
		if !ok {
			continue
		}
		sg.nodes[it] = &Node{
			Item:            it,
			Title:           n.Title,
			ChildCount:      n.ChildCount,
			ParentCount:     n.ParentCount,
			DescendantCount: n.DescendantCount,
			Depth:           n.Depth,
		}
	}

	// Real edges, in child order of each included parent.
	for _, it := range items {
		if it.Kind != KindReal || sg.nodes[it] == nil {
			continue
		}
		for _, c := range g.Children(it.ID) {
			child := Real(c.ID)
			if sg.nodes[child] != nil {
				sg.edges = append(sg.edges, Edge{From: it, To: child})
			}
		}
	}

	// Cluster synthesis.
	for _, it := range items {
		if it.Kind != KindCluster {
			continue
		}
		parent := Real(it.ID)
		if sg.nodes[parent] == nil {
			continue
		}
		cluster := &Node{Item: it}
		for _, c := range g.Children(it.ID) {
			if displayed.Has(Real(c.ID)) {
				continue
			}
			cluster.ChildIDs = append(cluster.ChildIDs, c.ID)
			cluster.TotalDescendants += c.DescendantCount
		}
		cluster.Count = len(cluster.ChildIDs)
		sg.nodes[it] = cluster
		sg.edges = append(sg.edges, Edge{From: parent, To: it})
	}

	return sg
}

// Node returns the subgraph node for the item, or nil if absent.
func (sg *Subgraph) Node(it Item) *Node { return sg.nodes[it] }

// Has reports whether the item is part of the subgraph.
func (sg *Subgraph) Has(it Item) bool { return sg.nodes[it] != nil }

// Len returns the number of nodes.
func (sg *Subgraph) Len() int { return len(sg.nodes) }

// Items returns all node items in deterministic order.
func (sg *Subgraph) Items() []Item {
	items := make([]Item, 0, len(sg.nodes))
	for it := range sg.nodes {
		items = append(items, it)
	}
	return NewSet(items...).Sorted()
}

// Edges returns a copy of the edge list in build order.
func (sg *Subgraph) Edges() []Edge { return slices.Clone(sg.edges) }

// ItemSet returns the node set as a displayed-item Set.
func (sg *Subgraph) ItemSet() Set {
	s := make(Set, len(sg.nodes))
	for it := range sg.nodes {
		s.Add(it)
	}
	return s
}

// RemoveNodeWithPruning removes an item from the subgraph and prunes every
// node that is no longer connected to the focus. The input subgraph is
// never mutated.
//
// Reachability is computed by breadth-first traversal treating every
// remaining edge as undirected: a descendant may still be legitimately
// visible through a second parent path after one path is cut (diamond
// topology). The returned set is therefore always a single connected
// component anchored at the focus.
//
// Removing an absent item is a no-op (current set, pruned 0). Removing the
// focus itself voids the whole neighborhood: empty set, pruned equal to the
// pre-removal node count.
func RemoveNodeWithPruning(sg *Subgraph, remove Item, focusID string) (Set, int) {
	if !sg.Has(remove) {
		return sg.ItemSet(), 0
	}

	preCount := sg.Len()

	remaining := sg.ItemSet()
	remaining.Delete(remove)

	focus := Real(focusID)
	if !remaining.Has(focus) {
		return NewSet(), preCount
	}

	// Undirected adjacency over the surviving edges.
	adj := make(map[Item][]Item, len(remaining))
	for _, e := range sg.edges {
		if e.From == remove || e.To == remove {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	reachable := NewSet(focus)
	queue := []Item{focus}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if reachable.Has(next) {
				continue
			}
			reachable.Add(next)
			queue = append(queue, next)
		}
	}

	return reachable, remaining.Len() - reachable.Len()
}

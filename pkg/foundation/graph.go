package foundation

// Graph is the immutable in-memory concept graph.
//
// The zero value is not usable: construct a Graph with New. Queries on an
// unconstructed Graph panic, since querying before the dataset is loaded is
// a sequencing bug in the caller, not a data condition.
//
// Graph is safe for concurrent readers because it is never mutated after New.
type Graph struct {
	nodes   map[string]*ConceptNode
	parents map[string][]string // child id -> parent ids (no declared order)
	rootID  string
	edges   int
}

// New builds a Graph from a bulk dataset export.
//
// All nodes are created first; edges are then added only where both
// endpoints exist in the dataset. Dangling parent or child references are
// dropped silently - the dataset may be a partial export. ChildOrder,
// ChildCount and ParentCount on the resulting nodes reflect the filtered
// edge set, so consumers never observe a reference to a missing node.
func New(ds Dataset) *Graph {
	g := &Graph{
		nodes:   make(map[string]*ConceptNode, len(ds)),
		parents: make(map[string][]string),
	}

	for id, rec := range ds {
		g.nodes[id] = &ConceptNode{
			ID:              id,
			Title:           rec.Title,
			DescendantCount: rec.DescendantCount,
			Depth:           rec.Depth,
			Height:          rec.Height,
			MaxDepth:        rec.MaxDepth,
		}
	}

	for id, rec := range ds {
		n := g.nodes[id]
		for _, cid := range rec.Children {
			if _, ok := g.nodes[cid]; ok {
				n.ChildOrder = append(n.ChildOrder, cid)
			}
		}
		n.ChildCount = len(n.ChildOrder)
		g.edges += n.ChildCount

		for _, pid := range rec.Parents {
			if _, ok := g.nodes[pid]; ok {
				g.parents[id] = append(g.parents[id], pid)
			}
		}
		n.ParentCount = len(g.parents[id])

		if n.Depth == 0 && n.ParentCount == 0 && g.rootID == "" {
			g.rootID = id
		}
	}

	return g
}

func (g *Graph) ensureLoaded() {
	if g == nil || g.nodes == nil {
		panic("foundation: graph queried before a dataset was loaded")
	}
}

// Node returns the node with the given id, or (nil, false) if absent.
func (g *Graph) Node(id string) (*ConceptNode, bool) {
	g.ensureLoaded()
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id string) bool {
	g.ensureLoaded()
	_, ok := g.nodes[id]
	return ok
}

// Children returns the children of id strictly in ChildOrder.
// The order is a hard contract: consumers rely on it for stable display.
// Returns nil for an unknown id or a leaf.
func (g *Graph) Children(id string) []*ConceptNode {
	g.ensureLoaded()
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	children := make([]*ConceptNode, 0, len(n.ChildOrder))
	for _, cid := range n.ChildOrder {
		children = append(children, g.nodes[cid])
	}
	return children
}

// Parents returns all parents of id. Unlike Children, the returned order is
// not part of the contract and must be treated as unordered.
func (g *Graph) Parents(id string) []*ConceptNode {
	g.ensureLoaded()
	pids := g.parents[id]
	if len(pids) == 0 {
		return nil
	}
	parents := make([]*ConceptNode, 0, len(pids))
	for _, pid := range pids {
		parents = append(parents, g.nodes[pid])
	}
	return parents
}

// Root returns the id of the distinguished root node (depth 0, no parents),
// or "" if the dataset contains none.
func (g *Graph) Root() string {
	g.ensureLoaded()
	return g.rootID
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.ensureLoaded()
	return len(g.nodes)
}

// EdgeCount returns the number of parent->child edges retained at load.
func (g *Graph) EdgeCount() int {
	g.ensureLoaded()
	return g.edges
}

package foundation

// ConceptNode is a single concept in the loaded polyhierarchy.
//
// Depth is the shortest distance from the root (root = 0). MaxDepth is the
// longest distance from the root; it differs from Depth only for nodes
// reachable through parent chains of unequal length, which is a
// polyhierarchy artifact. Height is the longest downward distance to a
// leaf (leaf = 0).
type ConceptNode struct {
	ID              string
	Title           string
	ParentCount     int
	ChildCount      int
	ChildOrder      []string // ordered child ids, authoritative display order
	DescendantCount int
	Depth           int
	Height          int
	MaxDepth        int
}

// IsLeaf reports whether the node has no children.
func (n *ConceptNode) IsLeaf() bool { return n.ChildCount == 0 }

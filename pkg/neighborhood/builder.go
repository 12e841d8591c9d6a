package neighborhood

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/polynav/polynav/pkg/foundation"
)

const (
	// AncestorMinDepth excludes the root and its immediate children from
	// ancestor expansion. These are near-universal ancestors that add no
	// navigational value.
	AncestorMinDepth = 2

	// MaxVisibleChildren is the number of children shown individually before
	// the remainder is collapsed into a cluster placeholder.
	MaxVisibleChildren = 2

	// DefaultAncestorWarnLimit is the ancestor-set size above which Build
	// emits a diagnostic. High polyhierarchy fan-in can make the ancestor
	// set large; the set is not capped, only reported.
	DefaultAncestorWarnLimit = 100
)

// GraphReader is the read surface of the concept graph that the
// neighborhood algorithms need. *foundation.Graph satisfies it.
type GraphReader interface {
	Node(id string) (*foundation.ConceptNode, bool)
	Children(id string) []*foundation.ConceptNode
	Parents(id string) []*foundation.ConceptNode
}

// Builder computes initial neighborhoods. The zero value is usable and
// applies the default warn limit and logger.
type Builder struct {
	AncestorWarnLimit int
	Logger            *log.Logger
}

// Build computes the initial displayed set for a focus concept using the
// default Builder configuration.
func Build(g GraphReader, focusID string) Set {
	return Builder{}.Build(g, focusID)
}

// Build computes the initial displayed set for focusID: all ancestors at or
// below AncestorMinDepth, the focus itself, and its children - clustered
// when there are more than MaxVisibleChildren.
//
// The result is a pure function of the graph content and focusID. If the
// focus id is unknown, the returned set is empty.
func (b Builder) Build(g GraphReader, focusID string) Set {
	set := NewSet()
	if _, ok := g.Node(focusID); !ok {
		return set
	}

	for _, anc := range b.collectAncestors(g, focusID) {
		set.Add(Real(anc.ID))
	}

	// Direct parents again, same depth filter. Redundant with the traversal
	// above but guards the invariant that the focus stays connected upward.
	for _, p := range g.Parents(focusID) {
		if p.Depth >= AncestorMinDepth {
			set.Add(Real(p.ID))
		}
	}

	set.Add(Real(focusID))

	children := g.Children(focusID)
	if len(children) <= MaxVisibleChildren {
		for _, c := range children {
			set.Add(Real(c.ID))
		}
		return set
	}
	for _, c := range children[:MaxVisibleChildren] {
		set.Add(Real(c.ID))
	}
	set.Add(ClusterOf(focusID))
	return set
}

// collectAncestors walks every parent edge upward from focusID (fanning out
// at each polyhierarchy junction) and returns the ancestors whose depth is
// at least AncestorMinDepth, sorted by ascending depth with lexicographic
// id tie-break so the result is independent of traversal order.
func (b Builder) collectAncestors(g GraphReader, focusID string) []*foundation.ConceptNode {
	visited := map[string]bool{focusID: true}
	queue := []string{focusID}
	var ancestors []*foundation.ConceptNode

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range g.Parents(id) {
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			queue = append(queue, p.ID)
			if p.Depth >= AncestorMinDepth {
				ancestors = append(ancestors, p)
			}
		}
	}

	slices.SortFunc(ancestors, func(a, c *foundation.ConceptNode) int {
		if a.Depth != c.Depth {
			return a.Depth - c.Depth
		}
		if a.ID < c.ID {
			return -1
		}
		if a.ID > c.ID {
			return 1
		}
		return 0
	})

	limit := b.AncestorWarnLimit
	if limit <= 0 {
		limit = DefaultAncestorWarnLimit
	}
	if len(ancestors) > limit {
		b.logger().Warn("large ancestor set for focus node",
			"focus", focusID, "ancestors", len(ancestors), "limit", limit)
	}

	return ancestors
}

func (b Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

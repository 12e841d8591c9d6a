package neighborhood

import "strings"

// clusterPrefix is the storage-form tag for cluster items. Real concept ids
// in this domain are purely numeric (or "root"), so the prefix cannot
// collide with a real id. In memory, cluster identity is carried by the
// typed Item instead of the string convention.
const clusterPrefix = "cluster:"

// Kind distinguishes real concepts from synthetic cluster placeholders.
type Kind int

const (
	// KindReal is a concept present in the underlying graph.
	KindReal Kind = iota
	// KindCluster is a placeholder standing in for a group of a node's
	// children that are not individually displayed. Its ID is the id of the
	// parent whose children it summarizes.
	KindCluster
)

// Item identifies one entry of the displayed set: either a real concept or
// the cluster placeholder of a parent. The zero value is a real item with
// an empty id and is not meaningful.
type Item struct {
	Kind Kind
	ID   string
}

// Real returns a displayed item for a real concept id.
func Real(id string) Item { return Item{Kind: KindReal, ID: id} }

// ClusterOf returns the cluster item summarizing the hidden children of
// parentID. A cluster item is only meaningful while its parent is itself
// displayed.
func ClusterOf(parentID string) Item { return Item{Kind: KindCluster, ID: parentID} }

// IsCluster reports whether the item is a cluster placeholder.
func (it Item) IsCluster() bool { return it.Kind == KindCluster }

// String returns the storage form of the item: the bare id for real
// concepts, or "cluster:" + parent id for cluster placeholders. This is the
// wire and persistence convention; in-memory code should compare Items.
func (it Item) String() string {
	if it.Kind == KindCluster {
		return clusterPrefix + it.ID
	}
	return it.ID
}

// ParseItem converts a storage-form id back into a typed Item.
func ParseItem(s string) Item {
	if rest, ok := strings.CutPrefix(s, clusterPrefix); ok {
		return ClusterOf(rest)
	}
	return Real(s)
}

package neighborhood

import (
	"maps"
	"slices"
)

// Set is a displayed-item set: real concept ids plus zero or more cluster
// placeholders. It defines the currently visible neighborhood.
//
// Sets are treated as values. Operations that change the visible
// neighborhood always produce a whole new Set; a Set held inside a snapshot
// is never edited in place. Use Clone before mutating a Set you do not own.
type Set map[Item]struct{}

// NewSet returns a Set containing the given items.
func NewSet(items ...Item) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts an item.
func (s Set) Add(it Item) { s[it] = struct{}{} }

// Delete removes an item if present.
func (s Set) Delete(it Item) { delete(s, it) }

// Has reports whether the item is in the set.
func (s Set) Has(it Item) bool {
	_, ok := s[it]
	return ok
}

// Len returns the number of items.
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s Set) Clone() Set { return maps.Clone(s) }

// Equal reports whether both sets contain exactly the same items.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for it := range s {
		if !other.Has(it) {
			return false
		}
	}
	return true
}

// Sorted returns the items in deterministic order: real items before
// clusters, each group sorted lexicographically by id. Deterministic
// iteration keeps derived output (serialization, rendering) stable across
// runs.
func (s Set) Sorted() []Item {
	items := slices.Collect(maps.Keys(s))
	slices.SortFunc(items, func(a, b Item) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return items
}

// Strings returns the storage form of the set: sorted ids with the
// "cluster:" convention applied.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for _, it := range s.Sorted() {
		out = append(out, it.String())
	}
	return out
}

// SetFromStrings parses a storage-form id list into a Set.
func SetFromStrings(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(ParseItem(id))
	}
	return s
}

// Package history implements the undo/redo snapshot stack over
// displayed-item sets.
//
// History is an immutable value: every operation returns a new History and
// no snapshot is ever mutated after creation. The caller (the session)
// holds the single live value and replaces it wholesale, so no locking is
// needed anywhere in this package.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/polynav/polynav/pkg/neighborhood"
)

// Snapshot is one recorded state of the visible neighborhood: the focus
// concept and an immutable copy of the displayed-item set.
type Snapshot struct {
	ID          string
	FocusID     string
	Displayed   neighborhood.Set
	Timestamp   time.Time
	Description string
}

// NewSnapshot captures the current focus and displayed set. The set is
// copied so later edits by the caller cannot reach into the snapshot.
func NewSnapshot(focusID string, displayed neighborhood.Set, description string) Snapshot {
	return Snapshot{
		ID:          uuid.NewString(),
		FocusID:     focusID,
		Displayed:   displayed.Clone(),
		Timestamp:   time.Now().UTC(),
		Description: description,
	}
}

// History is the snapshot stack with an undo/redo pointer.
// Invariant: -1 <= pointer < len(snapshots). The zero value is not a valid
// empty history; use New.
type History struct {
	snapshots []Snapshot
	pointer   int
}

// New returns an empty history with the pointer parked before the first
// entry.
func New() History {
	return History{pointer: -1}
}

// Len returns the number of snapshots.
func (h History) Len() int { return len(h.snapshots) }

// Pointer returns the current pointer position.
func (h History) Pointer() int { return h.pointer }

// Push appends a snapshot after the current pointer, discarding any forward
// (redo) branch first, and moves the pointer to the new last entry. This
// mirrors standard editor undo semantics: starting a new action after an
// undo permanently discards the abandoned future.
func (h History) Push(s Snapshot) History {
	kept := h.snapshots[:h.pointer+1]
	snapshots := make([]Snapshot, len(kept), len(kept)+1)
	copy(snapshots, kept)
	snapshots = append(snapshots, s)
	return History{snapshots: snapshots, pointer: len(snapshots) - 1}
}

// Undo moves the pointer one step back. At the start of history it is a
// silent no-op.
func (h History) Undo() History {
	if h.pointer > 0 {
		h.pointer--
	}
	return h
}

// Redo moves the pointer one step forward. At the end of history it is a
// silent no-op.
func (h History) Redo() History {
	if h.pointer < len(h.snapshots)-1 {
		h.pointer++
	}
	return h
}

// JumpTo sets the pointer directly. An out-of-range index is a silent
// no-op; this tolerates races between UI events and state updates.
func (h History) JumpTo(index int) History {
	if index >= 0 && index < len(h.snapshots) {
		h.pointer = index
	}
	return h
}

// Current returns the snapshot under the pointer, or ok=false when the
// pointer is parked at -1.
func (h History) Current() (Snapshot, bool) {
	if h.pointer < 0 || h.pointer >= len(h.snapshots) {
		return Snapshot{}, false
	}
	return h.snapshots[h.pointer], true
}

// Snapshots returns the snapshots in order. The returned slice is shared;
// treat it as read-only.
func (h History) Snapshots() []Snapshot { return h.snapshots }

// CanUndo reports whether Undo would move the pointer.
func (h History) CanUndo() bool { return h.pointer > 0 }

// CanRedo reports whether Redo would move the pointer.
func (h History) CanRedo() bool { return h.pointer < len(h.snapshots)-1 }

// Package session ties the core together: one Session value owns the
// focus, the displayed-item set, and the snapshot history for a loaded
// concept graph.
//
// Every operation is a pure transition from one Session value to the next.
// Exactly one owner (the CLI, the TUI, the HTTP server) holds the live
// value and atomically replaces it with the result; the core itself has no
// shared mutable state and therefore no locks.
package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/polynav/polynav/pkg/foundation"
	"github.com/polynav/polynav/pkg/history"
	"github.com/polynav/polynav/pkg/neighborhood"
	"github.com/polynav/polynav/pkg/store"
)

// Session is the explorer state for one loaded graph.
type Session struct {
	Graph     *foundation.Graph
	FocusID   string
	Displayed neighborhood.Set
	History   history.History

	logger *log.Logger
}

// Start creates a session focused on focusID: the initial neighborhood is
// built and pushed as the first snapshot. A nil logger falls back to
// log.Default().
func Start(g *foundation.Graph, focusID string, logger *log.Logger) Session {
	if logger == nil {
		logger = log.Default()
	}
	s := Session{Graph: g, logger: logger}
	return s.Focus(focusID)
}

// Focus rebuilds the neighborhood around a new focus concept and records a
// snapshot. Focusing an unknown id yields an empty displayed set.
func (s Session) Focus(focusID string) Session {
	builder := neighborhood.Builder{Logger: s.logger}
	displayed := builder.Build(s.Graph, focusID)
	return s.push(focusID, displayed, fmt.Sprintf("focus %s", focusID))
}

// ExpandCluster replaces the cluster placeholder under parentID with the
// children it was hiding. If no such cluster is displayed, this is a
// defined no-op.
func (s Session) ExpandCluster(parentID string) Session {
	cluster := neighborhood.ClusterOf(parentID)
	if !s.Displayed.Has(cluster) {
		return s
	}

	displayed := s.Displayed.Clone()
	displayed.Delete(cluster)
	for _, c := range s.Graph.Children(parentID) {
		displayed.Add(neighborhood.Real(c.ID))
	}
	return s.push(s.FocusID, displayed, fmt.Sprintf("expand cluster under %s", parentID))
}

// AddNodes adds concepts to the displayed set, ignoring ids not present in
// the graph. Adding nothing new is a no-op without a snapshot.
func (s Session) AddNodes(ids ...string) Session {
	displayed := s.Displayed.Clone()
	for _, id := range ids {
		if s.Graph.Has(id) {
			displayed.Add(neighborhood.Real(id))
		}
	}
	if displayed.Equal(s.Displayed) {
		return s
	}
	return s.push(s.FocusID, displayed, fmt.Sprintf("add %d node(s)", displayed.Len()-s.Displayed.Len()))
}

// Remove deletes an item from the visible neighborhood and prunes whatever
// is no longer connected to the focus. Removing the focus itself voids the
// neighborhood. Removing an absent item is a no-op without a snapshot.
func (s Session) Remove(it neighborhood.Item) Session {
	sg := neighborhood.BuildSubgraph(s.Graph, s.Displayed)
	if !sg.Has(it) {
		return s
	}
	displayed, pruned := neighborhood.RemoveNodeWithPruning(sg, it, s.FocusID)
	desc := fmt.Sprintf("remove %s", it)
	if pruned > 0 {
		desc = fmt.Sprintf("remove %s (pruned %d)", it, pruned)
	}
	return s.push(s.FocusID, displayed, desc)
}

// Undo moves one snapshot back and restores its state. At the start of
// history it is a silent no-op.
func (s Session) Undo() Session { return s.restore(s.History.Undo()) }

// Redo moves one snapshot forward and restores its state. At the end of
// history it is a silent no-op.
func (s Session) Redo() Session { return s.restore(s.History.Redo()) }

// JumpTo restores the snapshot at index. Out-of-range indices are silent
// no-ops.
func (s Session) JumpTo(index int) Session { return s.restore(s.History.JumpTo(index)) }

// Subgraph induces the current visible subgraph from the live graph. The
// renderer calls this whenever it needs fresh geometry.
func (s Session) Subgraph() *neighborhood.Subgraph {
	return neighborhood.BuildSubgraph(s.Graph, s.Displayed)
}

func (s Session) push(focusID string, displayed neighborhood.Set, desc string) Session {
	s.FocusID = focusID
	s.Displayed = displayed
	s.History = s.History.Push(history.NewSnapshot(focusID, displayed, desc))
	return s
}

func (s Session) restore(h history.History) Session {
	s.History = h
	if snap, ok := h.Current(); ok {
		s.FocusID = snap.FocusID
		s.Displayed = snap.Displayed.Clone()
	}
	return s
}

// SaveHistory writes the serialized history to the store. The store is a
// best-effort cache: failures are logged and otherwise ignored, and the
// in-memory history remains the source of truth.
func (s Session) SaveHistory(ctx context.Context, st store.Store) {
	data, err := history.Marshal(s.History)
	if err != nil {
		s.logger.Error("serialize history", "err", err)
		return
	}
	if err := st.PutHistory(ctx, data); err != nil {
		s.logger.Warn("history write failed, continuing", "err", err)
	}
}

// Resume restores a session from the history blob in the store. The second
// return value is false when the store holds no usable history.
func Resume(ctx context.Context, st store.Store, g *foundation.Graph, logger *log.Logger) (Session, bool) {
	if logger == nil {
		logger = log.Default()
	}
	data, ok, err := st.GetHistory(ctx)
	if err != nil || !ok {
		if err != nil {
			logger.Warn("history read failed", "err", err)
		}
		return Session{}, false
	}
	h, err := history.Unmarshal(data)
	if err != nil {
		logger.Warn("stored history is not decodable, starting fresh", "err", err)
		return Session{}, false
	}
	snap, ok := h.Current()
	if !ok {
		return Session{}, false
	}
	return Session{
		Graph:     g,
		FocusID:   snap.FocusID,
		Displayed: snap.Displayed.Clone(),
		History:   h,
		logger:    logger,
	}, true
}

package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/polynav/polynav/pkg/neighborhood"
)

// storedSnapshot is the durable form of a Snapshot: the displayed set
// becomes an ordered string array using the "cluster:" id convention.
type storedSnapshot struct {
	ID          string    `json:"id"`
	FocusID     string    `json:"focusNodeId"`
	Displayed   []string  `json:"displayedNodeIds"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

type storedHistory struct {
	Snapshots []storedSnapshot `json:"snapshots"`
	Pointer   int              `json:"pointer"`
}

// Marshal converts the history to its durable JSON form.
func Marshal(h History) ([]byte, error) {
	out := storedHistory{
		Snapshots: make([]storedSnapshot, 0, h.Len()),
		Pointer:   h.Pointer(),
	}
	for _, s := range h.Snapshots() {
		out.Snapshots = append(out.Snapshots, storedSnapshot{
			ID:          s.ID,
			FocusID:     s.FocusID,
			Displayed:   s.Displayed.Strings(),
			Timestamp:   s.Timestamp,
			Description: s.Description,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return data, nil
}

// Unmarshal restores a history from its durable JSON form. The round trip
// through Marshal reproduces the pointer and, per snapshot, a value-equal
// displayed set.
func Unmarshal(data []byte) (History, error) {
	var in storedHistory
	if err := json.Unmarshal(data, &in); err != nil {
		return History{}, fmt.Errorf("decode history: %w", err)
	}
	if in.Pointer < -1 || in.Pointer >= len(in.Snapshots) {
		return History{}, fmt.Errorf("decode history: pointer %d out of range for %d snapshots", in.Pointer, len(in.Snapshots))
	}

	h := History{pointer: in.Pointer}
	for _, s := range in.Snapshots {
		h.snapshots = append(h.snapshots, Snapshot{
			ID:          s.ID,
			FocusID:     s.FocusID,
			Displayed:   neighborhood.SetFromStrings(s.Displayed),
			Timestamp:   s.Timestamp,
			Description: s.Description,
		})
	}
	return h, nil
}

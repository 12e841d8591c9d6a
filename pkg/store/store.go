// Package store provides the durable key-value layer behind the explorer:
// the bulk graph blob, per-entity detail records, and the serialized
// snapshot history.
//
// The store is strictly a best-effort cache. The in-memory state owned by
// the session is the single source of truth; a failed write is logged by
// the caller and never rolls anything back.
//
// Backends:
//   - memory: for tests and throwaway sessions
//   - file: XDG data directory, one file per key (default for the CLI)
//   - redis: shared deployments, optional entity TTL
//   - mongo: single kv collection with upserts
package store

import "context"

// Store is the durable key-value surface. All implementations must treat
// a missing key as (nil, false, nil), not an error.
type Store interface {
	// GetGraph returns the bulk dataset blob.
	GetGraph(ctx context.Context) ([]byte, bool, error)
	// PutGraph replaces the bulk dataset blob.
	PutGraph(ctx context.Context, data []byte) error

	// GetEntity returns the cached detail record for a concept id.
	GetEntity(ctx context.Context, id string) ([]byte, bool, error)
	// PutEntity stores the detail record for a concept id.
	PutEntity(ctx context.Context, id string, data []byte) error

	// GetHistory returns the serialized snapshot history blob.
	GetHistory(ctx context.Context) ([]byte, bool, error)
	// PutHistory replaces the serialized snapshot history blob.
	PutHistory(ctx context.Context, data []byte) error

	// Clear drops everything held by the store.
	Clear(ctx context.Context) error

	// Close releases any underlying connections.
	Close() error
}

// Well-known blob keys shared by the redis and mongo backends.
const (
	keyGraph   = "graph"
	keyHistory = "history"
	keyEntity  = "entity:" // + concept id
)

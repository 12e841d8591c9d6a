// Package pkg provides the core libraries for exploring the WHO ICD-11
// Foundation polyhierarchy.
//
// # Overview
//
// The typical data flow through polynav:
//
//	WHO ICD API
//	     ↓
//	[icd] package (OAuth2 client + crawler)
//	     ↓
//	[foundation] package (dataset + concept graph)
//	     ↓
//	[neighborhood] package (displayed sets + induced subgraphs)
//	     ↓
//	[session] / [history] packages (focus, undo, redo)
//	     ↓
//	[render] package (DOT/SVG/PDF/PNG output)
//
// # Main Packages
//
// [foundation] - The crawled dataset and the in-memory concept graph:
// nodes with titles, parent and child id lists in server order, and
// precomputed stats (depth, descendant counts).
//
// [neighborhood] - The pure exploration core. Builds the initial
// displayed set around a focus concept (ancestor expansion, child
// clustering), induces subgraphs from arbitrary displayed sets, and
// removes nodes with connectivity pruning.
//
// [history] - Immutable snapshot history with undo, redo, and jump.
//
// [session] - Ties graph, displayed set, and history together into one
// value owned by a single caller (CLI, TUI, or HTTP server).
//
// [icd] - Client for the WHO ICD API: OAuth2 client-credentials tokens,
// entity lookups with read-through caching and request coalescing,
// search, and the full-hierarchy crawler.
//
// [store] - Persistence for datasets, cached entities, and session
// history, with memory, file, Redis, and MongoDB backends.
//
// [render] - Node-link diagrams of neighborhood subgraphs via Graphviz.
//
// [config], [errors], [httputil], [buildinfo] - Shared infrastructure:
// TOML configuration, coded errors, retry/cache HTTP helpers, and build
// metadata.
//
// [foundation]: https://pkg.go.dev/github.com/polynav/polynav/pkg/foundation
// [neighborhood]: https://pkg.go.dev/github.com/polynav/polynav/pkg/neighborhood
// [history]: https://pkg.go.dev/github.com/polynav/polynav/pkg/history
// [session]: https://pkg.go.dev/github.com/polynav/polynav/pkg/session
// [icd]: https://pkg.go.dev/github.com/polynav/polynav/pkg/icd
// [store]: https://pkg.go.dev/github.com/polynav/polynav/pkg/store
// [render]: https://pkg.go.dev/github.com/polynav/polynav/pkg/render
// [config]: https://pkg.go.dev/github.com/polynav/polynav/pkg/config
// [errors]: https://pkg.go.dev/github.com/polynav/polynav/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/polynav/polynav/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/polynav/polynav/pkg/buildinfo
package pkg

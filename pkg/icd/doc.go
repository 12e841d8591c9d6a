// Package icd is the HTTP client for the WHO ICD-11 Foundation API.
//
// It speaks to either the official hosted API (id.who.int, OAuth2 client
// credentials) or a local Docker deployment (no auth), as selected by the
// configuration. Entity detail fetches are coalesced so concurrent requests
// for the same concept share one upstream call, and results are cached
// read-through in the store.
//
// The package also contains the crawler that walks the full Foundation
// hierarchy breadth-first and materializes it as a [foundation.Dataset],
// including the precomputed hierarchy statistics the explorer needs
// (descendant counts, depths, heights).
package icd

// Package foundation holds the in-memory concept graph: the full
// polyhierarchy loaded from a bulk dataset export, indexed for point
// queries.
//
// The graph is a DAG in which a concept may have more than one parent.
// Child order is authoritative display order and is preserved exactly as
// declared in the dataset; parent order carries no contract.
//
// A Graph is built once from a Dataset and never mutated afterwards.
// Datasets may be partial exports: edges referencing ids that are not
// present in the dataset are dropped during construction rather than
// treated as errors.
package foundation

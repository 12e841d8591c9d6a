// Package neighborhood computes and maintains the bounded local
// neighborhood shown around a focus concept.
//
// It contains three pieces: the displayed-item set (real concepts plus
// synthetic cluster placeholders), the initial neighborhood builder
// (ancestor expansion and child clustering), and the induced-subgraph
// engine with connectivity-preserving node removal.
//
// Everything in this package is a pure function over the concept graph:
// identical inputs always produce identical output, and no input value is
// ever mutated.
package neighborhood

// Package render turns neighborhood subgraphs into node-link diagrams.
//
// # Overview
//
// The renderer produces directed graph visualizations using Graphviz: real
// concepts appear as rounded boxes connected by parent->child arrows, the
// focus concept is highlighted, and cluster placeholders are drawn dashed
// with a "+N more" label.
//
// # Usage
//
// Convert a subgraph to DOT format, then render to SVG:
//
//	dot := render.ToDOT(sg, focus, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// For PDF or PNG output, convert the SVG:
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB), so ancestors
// sit above the focus and children below, matching the hierarchy.
//
// # Dependencies
//
// SVG rendering happens in-process via [github.com/goccy/go-graphviz].
// PDF and PNG conversion shell out to rsvg-convert (librsvg).
package render

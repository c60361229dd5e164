// Package nodelink renders a mapping session as a node-link diagram.
//
// # Overview
//
// [ToDOT] projects a [graph.Store] into Graphviz DOT source: one cluster per
// vertex type, labeled with the type's display name in upper case, one node
// per entity, and one edge per recorded edge with the edge type as label.
// Central entities are drawn bold and filled.
//
// When no edge is directed the document is an undirected graph using "--".
// Otherwise it is a digraph using "->", and undirected edges carry
// dir=none, since DOT cannot mix both edge operators in one graph.
//
// ToDOT is a pure function of the store's read projections. An empty store
// yields a valid, empty document.
//
// # Rendering
//
//	dot := nodelink.ToDOT(store, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// [GraphvizRenderer] implements render.Renderer on top of [RenderPDF].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process parsing
// and SVG layout. PDF conversion requires librsvg (rsvg-convert).
package nodelink

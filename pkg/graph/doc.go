// Package graph assembles the typed multigraph of a mapping session.
//
// # Overview
//
// A [Store] records [Edge] values between entities owned by a
// [catalog.Catalog]. Edges hold entity IDs only; names, types and the
// central flag are always read back from the catalog.
//
// [Store.AddEdge] takes free-text endpoint names. Each endpoint is resolved
// through the catalog first (fuzzy matching, minting when needed), then the
// edge is appended:
//
//	store := graph.New(catalog.New(nil), graph.Options{})
//	e, err := store.AddEdge(graph.EdgeSpec{
//	    SourceName: "pizza", SourceType: "food-2",
//	    TargetName: "cheeseburger", TargetType: "food-2",
//	    EdgeType: "similar-to",
//	})
//
// # Edges
//
// The same pair of entities may be linked several times with different edge
// types. Adding an edge identical to an existing one (same endpoints, type
// and directedness; undirected edges compare in either orientation) returns
// the existing edge, so re-applying the same input is idempotent.
//
// Self-loops are allowed unless [Options.ForbidSelfLoops] is set.
//
// # Read projections
//
// [Store.ListVertexTypes], [Store.ListEntities] and [Store.ListEdges] return
// copies in creation order and are what the CSV codec and DOT exporter
// consume.
//
// A Store is not safe for concurrent use.
package graph

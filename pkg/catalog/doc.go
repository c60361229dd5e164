// Package catalog owns the vertex types and entities of a mapping session.
//
// # Overview
//
// A [Catalog] is the single owner of every [Entity] in a session. Other
// components ([graph.Store], the CSV codec, the DOT exporter) refer to
// entities only by their opaque ID and read them back through the catalog,
// so there is never a second copy that could drift.
//
// Entities are partitioned by [VertexType]. Referencing an unknown type id
// defines the type implicitly.
//
// # Resolution
//
// [Catalog.Resolve] turns a typed-in name into an entity ID:
//
//  1. The name and type id are validated (empty names are rejected with a
//     VALIDATION error and nothing changes).
//  2. An entity with the same normalized name in the same type is reused.
//  3. Otherwise every entity of the same type is scored with [match.Score];
//     the best candidate at or above the matcher threshold is reused, the
//     earliest-created one on ties.
//  4. Otherwise a new entity is minted with a fresh ID.
//
// Entities of different types are never merged: "cucumber" in food-1 and
// "cucumber" in person are two entities.
//
// [Catalog.ResolveExact] skips step 3. The CSV decoder uses it so that
// re-importing an exported file trusts the (type, name) key instead of
// fuzzy-merging the file against itself.
//
// # Central entities
//
// The central flag is a display hint. The catalog does not enforce one
// central entity per type; [Catalog.CentralFor] returns the most recently
// flagged one.
//
// # Concurrency
//
// A Catalog is not safe for concurrent use. A session owns exactly one and
// handles every intent to completion before accepting the next.
//
// [graph.Store]: github.com/matzehuels/graphmapper/pkg/graph.Store
package catalog

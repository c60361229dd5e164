// Package io provides CSV import and export for mapping sessions.
//
// # Overview
//
// CSV is the only persisted form of a session. This package encodes a
// [graph.Store] to the wide row format and decodes both the wide and the
// simplified bootstrap format back into a store.
//
// # Wide Format
//
// One row per edge, with both endpoints spelled out:
//
//	entity,vertex_name,vertex_id,vertex_central,edge_type,directed,entity2,vertex_name2,vertex_id2
//	Gretchen,Person,person,true,likes,true,cucumber,Food 1,food-1
//	cucumber,Food 1,food-1,false,,,,,
//
// Entities that never appear in the first position of an edge row get a
// one-sided row with every partner column empty. That row carries their
// own vertex_central flag.
//
// # Simplified Format
//
// A file whose header has only entity and vertex_id columns mints one
// entity per row and creates no edges:
//
//	entity,vertex_id
//	gretchen,person
//	cucumber,food-1
//
// vertex_name defaults to vertex_id and vertex_central to false.
//
// # Rows
//
// [ReadCSV] parses the input once into [Row] values: an [EntityRow], an
// [EdgeRow] or a [MalformedRow]. [Apply] then applies them to a store.
// Malformed rows are reported in the [Report] and never abort the import.
//
// Decoding resolves names with exact matching only, so importing a file
// this package wrote yields the same entities instead of fuzzy-merging
// near-duplicates that were deliberately kept apart.
//
// # Snapshot
//
// [WriteJSON] emits a read-only JSON snapshot of a store (types, entities
// and edges) for scripting. It is not read back.
package io

package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
)

// WriteCSV encodes s in the wide format and writes it to w.
// Edge rows come first in creation order, followed by one-sided rows for
// entities that are not the first entity of any edge row.
func WriteCSV(s *graph.Store, w io.Writer) error {
	c := s.Catalog()
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "write header")
	}

	sources := make(map[string]bool)
	for _, e := range s.ListEdges() {
		src, ok1 := c.Entity(e.Source)
		dst, ok2 := c.Entity(e.Target)
		if !ok1 || !ok2 {
			return gmerrors.Wrap(gmerrors.ErrCodeInternal, graph.ErrInvalidEdgeEndpoint, "edge %d", e.ID)
		}
		sources[src.ID] = true
		rec := append(entityFields(c, src), e.Type, strconv.FormatBool(e.Directed), dst.Name, typeName(c, dst.TypeID), dst.TypeID)
		if err := cw.Write(rec); err != nil {
			return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "write edge %d", e.ID)
		}
	}
	for _, ent := range s.ListEntities("") {
		if sources[ent.ID] {
			continue
		}
		rec := append(entityFields(c, ent), "", "", "", "", "")
		if err := cw.Write(rec); err != nil {
			return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "write entity %s", ent.Name)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "flush csv")
	}
	return nil
}

func entityFields(c *catalog.Catalog, e catalog.Entity) []string {
	return []string{e.Name, typeName(c, e.TypeID), e.TypeID, strconv.FormatBool(e.Central)}
}

func typeName(c *catalog.Catalog, typeID string) string {
	if t, ok := c.Type(typeID); ok {
		return t.Name
	}
	return typeID
}

// ExportCSV writes s to a CSV file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(s *graph.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteCSV(s, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return gmerrors.Wrap(gmerrors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}

type snapshot struct {
	Types    []snapshotType   `json:"types"`
	Entities []snapshotEntity `json:"entities"`
	Edges    []snapshotEdge   `json:"edges"`
}

type snapshotType struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type snapshotEntity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Central bool   `json:"central,omitempty"`
}

type snapshotEdge struct {
	ID       int    `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type,omitempty"`
	Directed bool   `json:"directed,omitempty"`
}

// WriteJSON encodes a snapshot of s as indented JSON and writes it to w.
func WriteJSON(s *graph.Store, w io.Writer) error {
	out := snapshot{
		Types:    []snapshotType{},
		Entities: []snapshotEntity{},
		Edges:    []snapshotEdge{},
	}
	for _, t := range s.ListVertexTypes() {
		st := snapshotType{ID: t.ID}
		if t.Name != t.ID {
			st.Name = t.Name
		}
		out.Types = append(out.Types, st)
	}
	for _, e := range s.ListEntities("") {
		out.Entities = append(out.Entities, snapshotEntity{ID: e.ID, Name: e.Name, Type: e.TypeID, Central: e.Central})
	}
	for _, e := range s.ListEdges() {
		out.Edges = append(out.Edges, snapshotEdge{ID: e.ID, Source: e.Source, Target: e.Target, Type: e.Type, Directed: e.Directed})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

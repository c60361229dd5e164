package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
)

// Column names of the wide format, in output order.
const (
	ColEntity        = "entity"
	ColVertexName    = "vertex_name"
	ColVertexID      = "vertex_id"
	ColVertexCentral = "vertex_central"
	ColEdgeType      = "edge_type"
	ColDirected      = "directed"
	ColEntity2       = "entity2"
	ColVertexName2   = "vertex_name2"
	ColVertexID2     = "vertex_id2"
)

// Header is the header row written by [WriteCSV].
var Header = []string{
	ColEntity, ColVertexName, ColVertexID, ColVertexCentral,
	ColEdgeType, ColDirected,
	ColEntity2, ColVertexName2, ColVertexID2,
}

// Endpoint is one side of a row.
type Endpoint struct {
	Name     string
	TypeID   string
	TypeName string // Defaults to TypeID
	Central  bool   // Only carried for the first entity of a row
}

// Row is a parsed CSV row: *EntityRow, *EdgeRow or *MalformedRow.
type Row interface {
	Line() int
	row()
}

// EntityRow declares a single entity and no edge.
type EntityRow struct {
	LineNo int
	Entity Endpoint
}

// EdgeRow declares an edge and both of its endpoints.
type EdgeRow struct {
	LineNo   int
	Source   Endpoint
	Target   Endpoint
	EdgeType string
	Directed bool
}

// MalformedRow is a row that failed validation.
type MalformedRow struct {
	Err *gmerrors.RowError
}

func (r *EntityRow) Line() int    { return r.LineNo }
func (r *EdgeRow) Line() int      { return r.LineNo }
func (r *MalformedRow) Line() int { return r.Err.Line }

func (*EntityRow) row()    {}
func (*EdgeRow) row()      {}
func (*MalformedRow) row() {}

// columns maps column names to positions for one file.
type columns map[string]int

func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// ReadCSV parses r into rows. Only a missing or unusable header is an
// error; problems with individual rows come back as *MalformedRow.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, gmerrors.New(gmerrors.ErrCodeInvalidFormat, "missing header row")
		}
		return nil, gmerrors.Wrap(gmerrors.ErrCodeInvalidFormat, err, "read header")
	}
	cols, err := parseHeader(head)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return rows, gmerrors.Wrap(gmerrors.ErrCodeIO, err, "read csv")
			}
			rows = append(rows, &MalformedRow{Err: gmerrors.MalformedRow(pe.StartLine, "%v", pe.Err)})
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, parseRow(cols, rec, line))
	}
	return rows, nil
}

func parseHeader(head []string) (columns, error) {
	cols := make(columns, len(head))
	for i, h := range head {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[h]; !dup && h != "" {
			cols[h] = i
		}
	}
	for _, required := range []string{ColEntity, ColVertexID} {
		if _, ok := cols[required]; !ok {
			return nil, gmerrors.New(gmerrors.ErrCodeInvalidFormat, "header is missing the %q column", required)
		}
	}
	return cols, nil
}

func parseRow(cols columns, rec []string, line int) Row {
	bad := func(format string, args ...any) Row {
		return &MalformedRow{Err: gmerrors.MalformedRow(line, format, args...)}
	}

	src, err := endpoint(cols.get(rec, ColEntity), cols.get(rec, ColVertexID), cols.get(rec, ColVertexName), "")
	if err != nil {
		return bad("%s", err)
	}
	central, err := parseBool(cols.get(rec, ColVertexCentral))
	if err != nil {
		return bad("%s: %v", ColVertexCentral, err)
	}
	src.Central = central

	name2, id2 := cols.get(rec, ColEntity2), cols.get(rec, ColVertexID2)
	if name2 == "" && id2 == "" {
		return &EntityRow{LineNo: line, Entity: src}
	}
	dst, err := endpoint(name2, id2, cols.get(rec, ColVertexName2), "2")
	if err != nil {
		return bad("%s", err)
	}

	edgeType := cols.get(rec, ColEdgeType)
	if err := gmerrors.ValidateEdgeType(edgeType); err != nil {
		return bad("%s", gmerrors.UserMessage(err))
	}
	directed, err := parseBool(cols.get(rec, ColDirected))
	if err != nil {
		return bad("%s: %v", ColDirected, err)
	}
	return &EdgeRow{LineNo: line, Source: src, Target: dst, EdgeType: edgeType, Directed: directed}
}

// endpoint validates the name/type pair of one side. suffix is "" or "2"
// and only appears in messages.
func endpoint(name, typeID, typeName, suffix string) (Endpoint, error) {
	if name == "" {
		return Endpoint{}, fmt.Errorf("missing %s%s", ColEntity, suffix)
	}
	if typeID == "" {
		return Endpoint{}, fmt.Errorf("missing %s%s", ColVertexID, suffix)
	}
	if err := gmerrors.ValidateEntityName(name); err != nil {
		return Endpoint{}, errors.New(gmerrors.UserMessage(err))
	}
	if err := gmerrors.ValidateVertexTypeID(typeID); err != nil {
		return Endpoint{}, errors.New(gmerrors.UserMessage(err))
	}
	if typeName == "" {
		typeName = typeID
	}
	return Endpoint{Name: name, TypeID: typeID, TypeName: typeName}, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

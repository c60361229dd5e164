package io

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
	"github.com/matzehuels/graphmapper/pkg/match"
)

// Report summarizes an import.
type Report struct {
	Applied int                  // Rows applied to the store
	Minted  int                  // Entities created by the import
	Edges   int                  // Edges created by the import
	Errors  []*gmerrors.RowError // Rows that were skipped
}

// OK reports whether every row was applied.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err joins the row errors, or returns nil when there are none.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Apply applies parsed rows to s in order. Names are resolved exactly,
// bypassing fuzzy matching. A row that fails is recorded in the report and
// the remaining rows are still applied.
func Apply(s *graph.Store, rows []Row) Report {
	var rep Report
	for _, r := range rows {
		var err error
		switch r := r.(type) {
		case *MalformedRow:
			rep.Errors = append(rep.Errors, r.Err)
			continue
		case *EntityRow:
			err = applyEntity(s, r, &rep)
		case *EdgeRow:
			err = applyEdge(s, r, &rep)
		}
		if err != nil {
			rep.Errors = append(rep.Errors, gmerrors.MalformedRow(r.Line(), "%s", gmerrors.UserMessage(err)))
			continue
		}
		rep.Applied++
	}
	return rep
}

func applyEntity(s *graph.Store, r *EntityRow, rep *Report) error {
	_, err := resolve(s.Catalog(), r.Entity, true, rep)
	return err
}

func applyEdge(s *graph.Store, r *EdgeRow, rep *Report) error {
	c := s.Catalog()
	if s.ForbidsSelfLoops() && r.Source.TypeID == r.Target.TypeID &&
		match.Normalize(r.Source.Name) == match.Normalize(r.Target.Name) {
		return graph.ErrSelfLoop
	}
	src, err := resolve(c, r.Source, true, rep)
	if err != nil {
		return err
	}
	dst, err := resolve(c, r.Target, false, rep)
	if err != nil {
		return err
	}
	_, created, err := s.Connect(src, dst, r.EdgeType, r.Directed)
	if err != nil {
		return err
	}
	if created {
		rep.Edges++
	}
	return nil
}

// resolve finds or mints the endpoint's entity. The central flag is only
// applied when the row carries it for this endpoint.
func resolve(c *catalog.Catalog, ep Endpoint, carriesCentral bool, rep *Report) (string, error) {
	if _, err := c.DefineType(ep.TypeID, ep.TypeName); err != nil {
		return "", err
	}
	res, err := c.ResolveExact(ep.Name, ep.TypeID)
	if err != nil {
		return "", err
	}
	if res.Minted {
		rep.Minted++
	}
	if carriesCentral && ep.Central {
		if err := c.SetCentral(res.Entity.ID, true); err != nil {
			return "", err
		}
	}
	return res.Entity.ID, nil
}

// Decode reads CSV from r and applies it to s.
func Decode(r io.Reader, s *graph.Store) (Report, error) {
	rows, err := ReadCSV(r)
	rep := Apply(s, rows)
	return rep, err
}

// ImportCSV opens the CSV file at path and applies it to s.
// The file must have a .csv extension.
func ImportCSV(path string, s *graph.Store) (Report, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return Report{}, gmerrors.New(gmerrors.ErrCodeInvalidFormat, "%s: not a .csv file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, gmerrors.Wrap(gmerrors.ErrCodeNotFound, err, "open %s", path)
		}
		return Report{}, gmerrors.Wrap(gmerrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, s)
}

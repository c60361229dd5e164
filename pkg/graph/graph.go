package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
)

var (
	// ErrUnknownSourceEntity is returned by [Store.Connect] when the source
	// entity is not in the catalog.
	ErrUnknownSourceEntity = errors.New("unknown source entity")

	// ErrUnknownTargetEntity is returned by [Store.Connect] when the target
	// entity is not in the catalog.
	ErrUnknownTargetEntity = errors.New("unknown target entity")

	// ErrSelfLoop is returned when both endpoints are the same entity and
	// [Options.ForbidSelfLoops] is set.
	ErrSelfLoop = errors.New("edge endpoints are the same entity")

	// ErrInvalidEdgeEndpoint is returned by [Store.Validate] when an edge
	// references an entity the catalog does not know.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Edge is a relationship between two entities.
type Edge struct {
	ID       int    // Sequential, assigned at creation
	Source   string // Source entity ID
	Target   string // Target entity ID
	Type     string // Free-text label, may be empty
	Directed bool
}

// EdgeSpec describes an edge by typed-in names, before resolution.
type EdgeSpec struct {
	SourceName string
	SourceType string
	TargetName string
	TargetType string
	EdgeType   string
	Directed   bool
}

// Link is the full result of [Store.Link].
type Link struct {
	Edge    Edge
	Source  catalog.Resolution
	Target  catalog.Resolution
	Created bool // False when an identical edge already existed
}

// Options configures a Store.
type Options struct {
	// ForbidSelfLoops rejects edges whose endpoints resolve to one entity.
	ForbidSelfLoops bool
}

type edgeKey struct {
	a, b     string
	typ      string
	directed bool
}

func keyOf(src, dst, typ string, directed bool) edgeKey {
	if !directed && dst < src {
		src, dst = dst, src
	}
	return edgeKey{a: src, b: dst, typ: typ, directed: directed}
}

// Store holds the edges of a session on top of a catalog.
// The zero value is not usable; use New.
type Store struct {
	catalog  *catalog.Catalog
	opts     Options
	edges    []Edge
	index    map[edgeKey]int
	outgoing map[string][]int // entityID -> edge positions
	incoming map[string][]int // entityID -> edge positions
}

// New creates an empty Store over c. A nil catalog gets a fresh default one.
func New(c *catalog.Catalog, opts Options) *Store {
	if c == nil {
		c = catalog.New(nil)
	}
	return &Store{
		catalog:  c,
		opts:     opts,
		index:    make(map[edgeKey]int),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}
}

// Catalog returns the catalog the store resolves against.
func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// ForbidsSelfLoops reports whether self-loop edges are rejected.
func (s *Store) ForbidsSelfLoops() bool { return s.opts.ForbidSelfLoops }

// AddEdge resolves both endpoints and records the edge between them.
func (s *Store) AddEdge(spec EdgeSpec) (Edge, error) {
	l, err := s.Link(spec)
	if err != nil {
		return Edge{}, err
	}
	return l.Edge, nil
}

// Link is AddEdge with the endpoint resolutions included in the result.
// All input is validated before anything is resolved, so a rejected call
// leaves the catalog and the store unchanged.
func (s *Store) Link(spec EdgeSpec) (Link, error) {
	if err := validateSpec(spec); err != nil {
		return Link{}, err
	}
	if s.opts.ForbidSelfLoops {
		same, err := s.catalog.SameEntity(spec.SourceName, spec.SourceType, spec.TargetName, spec.TargetType)
		if err != nil {
			return Link{}, err
		}
		if same {
			return Link{}, gmerrors.Wrap(gmerrors.ErrCodeValidation, ErrSelfLoop, "%q and %q", spec.SourceName, spec.TargetName)
		}
	}

	src, err := s.catalog.Resolve(spec.SourceName, spec.SourceType)
	if err != nil {
		return Link{}, err
	}
	dst, err := s.catalog.Resolve(spec.TargetName, spec.TargetType)
	if err != nil {
		return Link{}, err
	}
	e, created, err := s.Connect(src.Entity.ID, dst.Entity.ID, spec.EdgeType, spec.Directed)
	if err != nil {
		return Link{}, err
	}
	return Link{Edge: e, Source: src, Target: dst, Created: created}, nil
}

func validateSpec(spec EdgeSpec) error {
	for _, check := range []error{
		gmerrors.ValidateEntityName(spec.SourceName),
		gmerrors.ValidateVertexTypeID(spec.SourceType),
		gmerrors.ValidateEntityName(spec.TargetName),
		gmerrors.ValidateVertexTypeID(spec.TargetType),
		gmerrors.ValidateEdgeType(spec.EdgeType),
	} {
		if check != nil {
			return check
		}
	}
	return nil
}

// Connect records an edge between two already-resolved entities.
// created is false when an identical edge exists; that edge is returned.
// Returns ErrUnknownSourceEntity or ErrUnknownTargetEntity for IDs the
// catalog does not know.
func (s *Store) Connect(srcID, dstID, edgeType string, directed bool) (e Edge, created bool, err error) {
	if !s.catalog.Has(srcID) {
		return Edge{}, false, ErrUnknownSourceEntity
	}
	if !s.catalog.Has(dstID) {
		return Edge{}, false, ErrUnknownTargetEntity
	}
	if srcID == dstID && s.opts.ForbidSelfLoops {
		return Edge{}, false, gmerrors.Wrap(gmerrors.ErrCodeValidation, ErrSelfLoop, "entity %s", srcID)
	}
	edgeType = strings.TrimSpace(edgeType)

	k := keyOf(srcID, dstID, edgeType, directed)
	if pos, ok := s.index[k]; ok {
		return s.edges[pos], false, nil
	}

	e = Edge{ID: len(s.edges), Source: srcID, Target: dstID, Type: edgeType, Directed: directed}
	pos := len(s.edges)
	s.edges = append(s.edges, e)
	s.index[k] = pos
	s.outgoing[srcID] = append(s.outgoing[srcID], pos)
	s.incoming[dstID] = append(s.incoming[dstID], pos)
	return e, true, nil
}

// ListVertexTypes returns all vertex types in definition order.
func (s *Store) ListVertexTypes() []catalog.VertexType { return s.catalog.Types() }

// ListEntities returns the entities of a type in creation order, or all
// entities when typeID is empty.
func (s *Store) ListEntities(typeID string) []catalog.Entity { return s.catalog.Entities(typeID) }

// ListEdges returns a copy of all edges in creation order.
func (s *Store) ListEdges() []Edge { return slices.Clone(s.edges) }

// Edge returns the edge with the given ID.
func (s *Store) Edge(id int) (Edge, bool) {
	if id < 0 || id >= len(s.edges) {
		return Edge{}, false
	}
	return s.edges[id], true
}

// Outgoing returns edges whose source is the entity, in creation order.
func (s *Store) Outgoing(entityID string) []Edge { return s.collect(s.outgoing[entityID]) }

// Incoming returns edges whose target is the entity, in creation order.
func (s *Store) Incoming(entityID string) []Edge { return s.collect(s.incoming[entityID]) }

// EdgesOf returns every edge touching the entity in creation order.
// A self-loop appears once.
func (s *Store) EdgesOf(entityID string) []Edge {
	pos := append(slices.Clone(s.outgoing[entityID]), s.incoming[entityID]...)
	slices.Sort(pos)
	return s.collect(slices.Compact(pos))
}

// Degree returns the number of edges touching the entity.
func (s *Store) Degree(entityID string) int { return len(s.EdgesOf(entityID)) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

func (s *Store) collect(pos []int) []Edge {
	if len(pos) == 0 {
		return nil
	}
	out := make([]Edge, len(pos))
	for i, p := range pos {
		out[i] = s.edges[p]
	}
	return out
}

// Validate checks that every edge references entities known to the catalog.
func (s *Store) Validate() error {
	for _, e := range s.edges {
		if !s.catalog.Has(e.Source) || !s.catalog.Has(e.Target) {
			return fmt.Errorf("%w: edge %d", ErrInvalidEdgeEndpoint, e.ID)
		}
	}
	return nil
}

// Describe renders an edge as "(id) [name.type] --.label.-->> [name.type]".
// Undirected edges drop the trailing ">>"; unlabeled edges use "---".
func (s *Store) Describe(e Edge) string {
	arrow := "---"
	if e.Type != "" {
		arrow = "--." + e.Type + ".--"
	}
	if e.Directed {
		arrow += ">>"
	}
	return fmt.Sprintf("(%d) [%s] %s [%s]", e.ID, s.entityKey(e.Source), arrow, s.entityKey(e.Target))
}

func (s *Store) entityKey(id string) string {
	ent, ok := s.catalog.Entity(id)
	if !ok {
		return id
	}
	return ent.Name + "." + ent.TypeID
}

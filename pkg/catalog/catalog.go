package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/match"
)

// VertexType is a category partitioning entities, e.g. "person" or "food-1".
type VertexType struct {
	ID   string // User-supplied, unique, immutable once referenced
	Name string // Display name; defaults to ID
}

// Entity is a resolved real-world thing belonging to exactly one VertexType.
type Entity struct {
	ID      string // Opaque, stable for the session
	Name    string // As first typed
	TypeID  string // VertexType.ID
	Central bool   // Display hint, see Catalog.CentralFor
	Seq     int    // Creation order, 0-based

	norm       string
	centralSeq int
}

// Resolution is the result of resolving a typed name.
type Resolution struct {
	Entity Entity
	Minted bool // A new entity was created
	Score  int  // Similarity to the reused entity; 100 for exact and minted
}

type key struct {
	typeID string
	norm   string
}

// Catalog owns vertex types and entities. The zero value is not usable; use New.
type Catalog struct {
	matcher *match.Matcher
	newID   func() string

	types    []*VertexType
	typeByID map[string]*VertexType

	entities []*Entity
	byID     map[string]*Entity
	byKey    map[key]*Entity
	byType   map[string][]*Entity

	centralClock int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithIDGenerator replaces the UUID-based entity ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates an empty catalog. A nil matcher uses match.DefaultThreshold.
func New(m *match.Matcher, opts ...Option) *Catalog {
	if m == nil {
		m = match.New(match.DefaultThreshold)
	}
	c := &Catalog{
		matcher:  m,
		newID:    uuid.NewString,
		typeByID: make(map[string]*VertexType),
		byID:     make(map[string]*Entity),
		byKey:    make(map[key]*Entity),
		byType:   make(map[string][]*Entity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Matcher returns the matcher used for fuzzy resolution.
func (c *Catalog) Matcher() *match.Matcher { return c.matcher }

// Resolve returns the entity that name refers to within typeID, reusing the
// best fuzzy match at or above the threshold or minting a new entity.
func (c *Catalog) Resolve(name, typeID string) (Resolution, error) {
	return c.resolve(name, typeID, true)
}

// ResolveExact is Resolve without the fuzzy step: only an entity with the
// same normalized name is reused.
func (c *Catalog) ResolveExact(name, typeID string) (Resolution, error) {
	return c.resolve(name, typeID, false)
}

func (c *Catalog) resolve(name, typeID string, fuzzy bool) (Resolution, error) {
	if err := validate(name, typeID); err != nil {
		return Resolution{}, err
	}
	typeID = strings.TrimSpace(typeID)
	norm := match.Normalize(name)

	if r, ok := c.lookup(norm, typeID, fuzzy); ok {
		return r, nil
	}
	e := c.mint(strings.TrimSpace(name), norm, typeID)
	return Resolution{Entity: *e, Minted: true, Score: 100}, nil
}

// lookup finds the entity a normalized name refers to without minting.
// In fuzzy mode an exact key hit still loses to an earlier peer scoring 100.
func (c *Catalog) lookup(norm, typeID string, fuzzy bool) (Resolution, bool) {
	if !fuzzy {
		if e, ok := c.byKey[key{typeID, norm}]; ok {
			return Resolution{Entity: *e, Score: 100}, true
		}
		return Resolution{}, false
	}
	peers := c.byType[typeID]
	names := make([]string, len(peers))
	for i, p := range peers {
		names[i] = p.norm
	}
	if idx, score, ok := c.matcher.Best(norm, names); ok && c.matcher.Accept(score) {
		return Resolution{Entity: *peers[idx], Score: score}, true
	}
	return Resolution{}, false
}

func validate(name, typeID string) error {
	if err := errors.ValidateEntityName(name); err != nil {
		return err
	}
	return errors.ValidateVertexTypeID(typeID)
}

func (c *Catalog) mint(name, norm, typeID string) *Entity {
	c.ensureType(typeID, "")
	e := &Entity{
		ID:     c.newID(),
		Name:   name,
		TypeID: typeID,
		Seq:    len(c.entities),
		norm:   norm,
	}
	c.entities = append(c.entities, e)
	c.byID[e.ID] = e
	c.byKey[key{typeID, norm}] = e
	c.byType[typeID] = append(c.byType[typeID], e)
	return e
}

// DefineType registers a vertex type, or names an existing one that still
// carries its default name. An empty name defaults to the id.
func (c *Catalog) DefineType(id, name string) (VertexType, error) {
	if err := errors.ValidateVertexTypeID(id); err != nil {
		return VertexType{}, err
	}
	return *c.ensureType(strings.TrimSpace(id), strings.TrimSpace(name)), nil
}

func (c *Catalog) ensureType(id, name string) *VertexType {
	t, ok := c.typeByID[id]
	if !ok {
		t = &VertexType{ID: id, Name: id}
		c.types = append(c.types, t)
		c.typeByID[id] = t
	}
	if name != "" && t.Name == t.ID {
		t.Name = name
	}
	return t
}

// SetCentral sets or clears the central flag of an entity.
// Returns a NOT_FOUND error for unknown IDs.
func (c *Catalog) SetCentral(entityID string, central bool) error {
	e, ok := c.byID[entityID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown entity %q", entityID)
	}
	e.Central = central
	if central {
		c.centralClock++
		e.centralSeq = c.centralClock
	}
	return nil
}

// CentralFor returns the most recently flagged central entity of a type.
func (c *Catalog) CentralFor(typeID string) (Entity, bool) {
	var best *Entity
	for _, e := range c.byType[strings.TrimSpace(typeID)] {
		if e.Central && (best == nil || e.centralSeq > best.centralSeq) {
			best = e
		}
	}
	if best == nil {
		return Entity{}, false
	}
	return *best, true
}

// Entity returns the entity with the given ID.
func (c *Catalog) Entity(id string) (Entity, bool) {
	e, ok := c.byID[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Has reports whether an entity with the given ID exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Entities returns the entities of a type in creation order.
// An empty typeID returns every entity.
func (c *Catalog) Entities(typeID string) []Entity {
	src := c.entities
	if typeID != "" {
		src = c.byType[strings.TrimSpace(typeID)]
	}
	out := make([]Entity, len(src))
	for i, e := range src {
		out[i] = *e
	}
	return out
}

// Type returns the vertex type with the given ID.
func (c *Catalog) Type(id string) (VertexType, bool) {
	t, ok := c.typeByID[strings.TrimSpace(id)]
	if !ok {
		return VertexType{}, false
	}
	return *t, true
}

// Types returns all vertex types in definition order.
func (c *Catalog) Types() []VertexType {
	out := make([]VertexType, len(c.types))
	for i, t := range c.types {
		out[i] = *t
	}
	return out
}

// Len returns the number of entities.
func (c *Catalog) Len() int { return len(c.entities) }

// Peek resolves name within typeID like Resolve but never mints.
// found is false when Resolve would create a new entity.
func (c *Catalog) Peek(name, typeID string) (r Resolution, found bool, err error) {
	if err := validate(name, typeID); err != nil {
		return Resolution{}, false, err
	}
	r, found = c.lookup(match.Normalize(name), strings.TrimSpace(typeID), true)
	return r, found, nil
}

// SameEntity reports whether resolving a in typeA followed by b in typeB
// would yield one entity. The catalog is not modified.
func (c *Catalog) SameEntity(a, typeA, b, typeB string) (bool, error) {
	ra, foundA, err := c.Peek(a, typeA)
	if err != nil {
		return false, err
	}
	rb, foundB, err := c.Peek(b, typeB)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(typeA) != strings.TrimSpace(typeB) {
		return false, nil
	}
	switch {
	case foundA && foundB:
		return ra.Entity.ID == rb.Entity.ID, nil
	case foundA:
		// b matched nothing existing, a included.
		return false, nil
	}
	// a would be minted; b picks it only if a beats b's current best.
	na, nb := match.Normalize(a), match.Normalize(b)
	if na == nb {
		return true, nil
	}
	s := match.Score(nb, na)
	if !c.matcher.Accept(s) {
		return false, nil
	}
	return !foundB || s > rb.Score, nil
}

// Suggestion is an existing entity scored against a typed name.
type Suggestion struct {
	Entity Entity
	Score  int
}

// Suggest ranks the entities of typeID against name and returns up to limit
// of them, best first. Entities scoring below the matcher threshold are
// included so callers can show near misses.
func (c *Catalog) Suggest(name, typeID string, limit int) []Suggestion {
	peers := c.byType[strings.TrimSpace(typeID)]
	if len(peers) == 0 || strings.TrimSpace(name) == "" {
		return nil
	}
	names := make([]string, len(peers))
	for i, p := range peers {
		names[i] = p.norm
	}
	ranked := c.matcher.RankN(match.Normalize(name), names, limit)
	out := make([]Suggestion, len(ranked))
	for i, r := range ranked {
		out[i] = Suggestion{Entity: *peers[r.Index], Score: r.Score}
	}
	return out
}

// Package session orchestrates an interactive entity-mapping session.
//
// A [Controller] owns the session state (one catalog and one graph store),
// receives discrete intents from a user interface and handles each one to
// completion before returning:
//
//   - [CreateOrResolveEntity]: resolve a typed name, minting when needed
//   - [CreateEdge]: resolve both endpoints and record an edge
//   - [LoadCSV]: apply a previously saved or hand-written CSV
//   - [Export]: write the CSV and DOT files and render the PDF
//
// After every successful mutating intent the graph is autosaved as CSV,
// so there is no explicit save step.
//
// # Artifacts
//
// All files live under the output directory and share a per-session key:
//
//	out/m-qzkfa-graph-mapping.csv
//	out/m-qzkfa-graph-mapping.gv
//	out/m-qzkfa-graph-mapping.gv.pdf
//
// Starting a controller with a known key and calling [Controller.Resume]
// reloads that session's CSV.
//
// # Errors
//
// Invalid input fails the intent with a VALIDATION error and leaves the
// state untouched. Write and render failures never fail an intent; they
// are returned as warnings in the [Outcome] and editing may continue.
//
// A Controller is not safe for concurrent use.
package session

import (
	"context"
	"crypto/rand"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
	gmio "github.com/matzehuels/graphmapper/pkg/io"
	"github.com/matzehuels/graphmapper/pkg/match"
	"github.com/matzehuels/graphmapper/pkg/observability"
	"github.com/matzehuels/graphmapper/pkg/render"
	"github.com/matzehuels/graphmapper/pkg/render/nodelink"
)

// DefaultOutDir is the artifact directory used when Options.OutDir is empty.
const DefaultOutDir = "out"

const (
	keyPrefix  = "m-"
	keyLetters = "abcdefghijklmnopqrstuvwxyz"
	keyLength  = 5
)

var keyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// GenerateKey creates a random session key such as "m-qzkfa".
func GenerateKey() (string, error) {
	b := make([]byte, keyLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "generate session key")
	}
	for i := range b {
		b[i] = keyLetters[int(b[i])%len(keyLetters)]
	}
	return keyPrefix + string(b), nil
}

// NormalizeKey validates a user-supplied session key and adds the "m-"
// prefix when it is missing.
func NormalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !strings.HasPrefix(key, keyPrefix) {
		key = keyPrefix + key
	}
	if !keyRe.MatchString(key) || key == keyPrefix {
		return "", errors.New(errors.ErrCodeValidation, "invalid session key %q: use letters, digits and hyphens", key)
	}
	return key, nil
}

// Paths are the artifact files of one session.
type Paths struct {
	CSV string
	DOT string
	PDF string
}

// PathsFor returns the artifact paths for key under outDir.
func PathsFor(outDir, key string) Paths {
	base := filepath.Join(outDir, key+"-graph-mapping")
	return Paths{CSV: base + ".csv", DOT: base + ".gv", PDF: base + ".gv.pdf"}
}

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Matcher decides fuzzy resolution. Nil uses match.DefaultThreshold.
	Matcher *match.Matcher

	// OutDir is the artifact directory. Empty means DefaultOutDir.
	OutDir string

	// Key names the session's artifacts. Empty generates a new key.
	Key string

	// DisableAutosave skips the CSV write after each mutation.
	DisableAutosave bool

	// ForbidSelfLoops rejects edges whose endpoints are one entity.
	ForbidSelfLoops bool

	// Renderer turns the DOT file into a PDF on export. Nil skips rendering.
	Renderer render.Renderer

	// DOT configures the exported DOT source.
	DOT nodelink.Options

	// Logger receives debug and warning logs. Nil discards them.
	Logger *log.Logger

	// Hooks receives session events. Nil means no-op.
	Hooks observability.SessionHooks

	// IDGenerator replaces UUID entity IDs, for deterministic tests.
	IDGenerator func() string
}

// Controller owns the state of one session.
type Controller struct {
	catalog  *catalog.Catalog
	store    *graph.Store
	files    *FileStore
	key      string
	paths    Paths
	autosave bool
	renderer render.Renderer
	dotOpts  nodelink.Options
	logger   *log.Logger
	hooks    observability.SessionHooks
}

// New creates a controller with an empty graph.
func New(opts Options) (*Controller, error) {
	key := opts.Key
	if key == "" {
		var err error
		if key, err = GenerateKey(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if key, err = NormalizeKey(key); err != nil {
			return nil, err
		}
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = DefaultOutDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.Nop{}
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = observability.NoopSessionHooks{}
	}

	var catOpts []catalog.Option
	if opts.IDGenerator != nil {
		catOpts = append(catOpts, catalog.WithIDGenerator(opts.IDGenerator))
	}
	cat := catalog.New(opts.Matcher, catOpts...)

	return &Controller{
		catalog:  cat,
		store:    graph.New(cat, graph.Options{ForbidSelfLoops: opts.ForbidSelfLoops}),
		files:    NewFileStore(outDir),
		key:      key,
		paths:    PathsFor(outDir, key),
		autosave: !opts.DisableAutosave,
		renderer: renderer,
		dotOpts:  opts.DOT,
		logger:   logger.WithPrefix(key),
		hooks:    hooks,
	}, nil
}

// Key returns the session key.
func (c *Controller) Key() string { return c.key }

// Paths returns the session's artifact paths.
func (c *Controller) Paths() Paths { return c.paths }

// Catalog returns the session's entity catalog.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Store returns the session's graph store.
func (c *Controller) Store() *graph.Store { return c.store }

// Resume loads the session's own CSV when it exists.
// found is false for a session that was never saved.
func (c *Controller) Resume(ctx context.Context) (out Outcome, found bool) {
	if !c.files.Exists(c.paths.CSV) {
		return Outcome{}, false
	}
	c.logger.Info("resuming session", "csv", c.paths.CSV)
	return c.Handle(ctx, LoadCSV{Path: c.paths.CSV}), true
}

// Summary counts the session's contents.
type Summary struct {
	Types    int
	Entities int
	Edges    int
}

// Summary returns the current counts.
func (c *Controller) Summary() Summary {
	return Summary{
		Types:    len(c.catalog.Types()),
		Entities: c.catalog.Len(),
		Edges:    c.store.EdgeCount(),
	}
}

// save writes the CSV and reports the failure as a warning.
func (c *Controller) save(ctx context.Context) (string, error) {
	start := time.Now()
	err := c.files.Write(c.paths.CSV, func(w io.Writer) error {
		return gmio.WriteCSV(c.store, w)
	})
	c.hooks.OnAutosave(ctx, c.paths.CSV, time.Since(start), err)
	if err != nil {
		c.logger.Warn("autosave failed", "path", c.paths.CSV, "err", err)
		return "", err
	}
	c.logger.Debug("autosaved", "path", c.paths.CSV)
	return c.paths.CSV, nil
}

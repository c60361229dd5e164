package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphmapper/pkg/config"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
	gmio "github.com/matzehuels/graphmapper/pkg/io"
	"github.com/matzehuels/graphmapper/pkg/render"
	"github.com/matzehuels/graphmapper/pkg/render/nodelink"
	"github.com/matzehuels/graphmapper/pkg/session"
)

// run executes the root command with a discarding logger.
func run(t *testing.T, args ...string) error {
	t.Helper()
	if os.Getenv("XDG_CACHE_HOME") == "" {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
	}
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

// loadSaved reads a session's autosaved CSV into a fresh store.
func loadSaved(t *testing.T, out, key string) *graph.Store {
	t.Helper()
	s := graph.New(nil, graph.Options{})
	rep, err := gmio.ImportCSV(session.PathsFor(out, key).CSV, s)
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("ImportCSV() row errors: %v", rep.Err())
	}
	return s
}

func TestAddResumesSession(t *testing.T) {
	out := t.TempDir()
	common := []string{"--out", out, "--engine", "none", "-s", "m-test"}

	if err := run(t, append(common, "add", "Pizza Margherita", "-t", "food", "--central")...); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := run(t, append(common, "add", "pizza  margherita", "-t", "food")...); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if err := run(t, append(common, "add", "Salad", "-t", "food")...); err != nil {
		t.Fatalf("third add: %v", err)
	}

	s := loadSaved(t, out, "m-test")
	entities := s.ListEntities("food")
	if len(entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(entities))
	}
	if entities[0].Name != "Pizza Margherita" || !entities[0].Central {
		t.Errorf("first entity = %+v, want central Pizza Margherita", entities[0])
	}
}

func TestAddRequiresType(t *testing.T) {
	if err := run(t, "--out", t.TempDir(), "add", "pizza"); err == nil {
		t.Fatal("add without --type should fail")
	}
}

func TestAddBlankName(t *testing.T) {
	err := run(t, "--out", t.TempDir(), "add", "   ", "-t", "food")
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v, want VALIDATION", err)
	}
}

func TestLink(t *testing.T) {
	out := t.TempDir()
	common := []string{"--out", out, "--engine", "none", "-s", "m-link"}

	err := run(t, append(common, "link", "gretchen", "cucumber",
		"--from-type", "person", "--to-type", "food", "-e", "likes", "-d")...)
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	// Same edge again is reused.
	if err := run(t, append(common, "link", "Gretchen", "cucumber",
		"--from-type", "person", "--to-type", "food", "-e", "likes", "-d")...); err != nil {
		t.Fatalf("second link: %v", err)
	}

	s := loadSaved(t, out, "m-link")
	edges := s.ListEdges()
	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	if got, want := s.Describe(edges[0]), "(1) [gretchen.person] --.likes.-->> [cucumber.food]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestLinkRequiresTypes(t *testing.T) {
	err := run(t, "--out", t.TempDir(), "link", "a", "b", "--from-type", "person")
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v, want VALIDATION", err)
	}
}

func TestLinkSelfLoop(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "graphmapper.toml")
	if err := os.WriteFile(cfg, []byte("allow_self_loops = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(t, "--config", cfg, "--out", dir, "--engine", "none",
		"link", "pizza", "Pizza", "-t", "food")
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("err = %v, want VALIDATION", err)
	}
}

func TestImportAndExport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	data := "entity,vertex_id,entity2,vertex_id2\n" +
		"gretchen,person,cucumber,food\n" +
		"gretchen,person,bokchoy,food\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	if err := run(t, "--out", out, "--engine", "none", "-s", "m-imp", "import", csvPath); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := run(t, "--out", out, "--engine", "none", "-s", "m-imp", "export"); err != nil {
		t.Fatalf("export: %v", err)
	}

	paths := session.PathsFor(out, "m-imp")
	for _, p := range []string{paths.CSV, paths.DOT} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	if _, err := os.Stat(paths.PDF); !os.IsNotExist(err) {
		t.Errorf("PDF should not exist with engine none, stat err = %v", err)
	}

	s := loadSaved(t, out, "m-imp")
	if got := s.Catalog().Len(); got != 3 {
		t.Errorf("entities = %d, want 3", got)
	}
}

func TestCSVFlagLoadsBeforeCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	data := "entity,vertex_id,entity2,vertex_id2\npizza,food,salad,food\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "--out", dir, "--csv", csvPath, "-s", "m-flag", "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := run(t, "--out", dir, "-s", "m-flag", "list", "--json"); err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if err := run(t, "--out", dir, "-s", "m-flag", "list", "-t", "drink"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("list unknown type err = %v, want NOT_FOUND", err)
	}
}

func TestImportRejectsNonCSV(t *testing.T) {
	err := run(t, "--out", t.TempDir(), "import", "mapping.json")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestMatchDoesNotSave(t *testing.T) {
	out := t.TempDir()
	if err := run(t, "--out", out, "-s", "m-match", "match", "pizza", "-t", "food"); err != nil {
		t.Fatalf("match: %v", err)
	}
	if _, err := os.Stat(session.PathsFor(out, "m-match").CSV); !os.IsNotExist(err) {
		t.Errorf("match should not write the session CSV, stat err = %v", err)
	}
}

func TestInvalidThreshold(t *testing.T) {
	err := run(t, "--out", t.TempDir(), "--threshold", "150", "edges")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestNoAutosave(t *testing.T) {
	out := t.TempDir()
	if err := run(t, "--out", out, "--no-autosave", "-s", "m-quiet", "add", "pizza", "-t", "food"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(session.PathsFor(out, "m-quiet").CSV); !os.IsNotExist(err) {
		t.Errorf("--no-autosave should not write the session CSV, stat err = %v", err)
	}
}

func TestNewRenderer(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	tests := []struct {
		name   string
		render config.Render
		want   render.Renderer
	}{
		{"graphviz", config.Render{Engine: config.EngineGraphviz}, nodelink.GraphvizRenderer{}},
		{"dot", config.Render{Engine: config.EngineDot, Command: "dot"}, render.CommandRenderer{Command: "dot"}},
		{"none", config.Render{Engine: config.EngineNone, Cache: true}, render.Nop{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.newRenderer(tt.render); got != tt.want {
				t.Errorf("newRenderer() = %#v, want %#v", got, tt.want)
			}
		})
	}

	t.Run("cached", func(t *testing.T) {
		r := c.newRenderer(config.Render{Engine: config.EngineDot, Command: "dot", Cache: true})
		got, ok := r.(render.Cached)
		if !ok {
			t.Fatalf("newRenderer() = %T, want render.Cached", r)
		}
		if got.Renderer != (render.CommandRenderer{Command: "dot"}) {
			t.Errorf("wrapped renderer = %#v", got.Renderer)
		}
	})

	t.Run("no-cache flag", func(t *testing.T) {
		c.flags.noCache = true
		defer func() { c.flags.noCache = false }()
		if _, ok := c.newRenderer(config.Render{Engine: config.EngineGraphviz, Cache: true}).(render.Cached); ok {
			t.Error("--no-cache should bypass the cache")
		}
	})
}

func TestSessionStats(t *testing.T) {
	ctx := context.Background()
	s := newSessionStats(newLogger(io.Discard, LogDebug))

	s.OnResolve(ctx, "food", "pizza", true, 100)
	s.OnResolve(ctx, "food", "piza", false, 89)
	s.OnEdge(ctx, 1, true)
	s.OnEdge(ctx, 1, false)
	s.OnAutosave(ctx, "a.csv", 0, nil)
	s.OnAutosave(ctx, "a.csv", 0, errors.New(errors.ErrCodeIO, "disk full"))
	s.OnImport(ctx, "in.csv", 3, 2, 0, nil)

	if s.minted != 1 || s.reused != 1 {
		t.Errorf("minted/reused = %d/%d, want 1/1", s.minted, s.reused)
	}
	if s.edges != 1 || s.duplicates != 1 {
		t.Errorf("edges/duplicates = %d/%d, want 1/1", s.edges, s.duplicates)
	}
	if s.saves != 1 || s.saveErrors != 1 {
		t.Errorf("saves/saveErrors = %d/%d, want 1/1", s.saves, s.saveErrors)
	}
	if s.skipped != 2 {
		t.Errorf("skipped = %d, want 2", s.skipped)
	}
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopSessionHooks{}
	h.OnResolve(ctx, "food-2", "pizza", true, 100)
	h.OnEdge(ctx, 0, true)
	h.OnAutosave(ctx, "out/m-abcde-graph-mapping.csv", time.Millisecond, nil)
	h.OnImport(ctx, "in.csv", 5, 1, time.Millisecond, nil)
	h.OnExport(ctx, []string{"out/a.gv"}, time.Second, errors.New("render"))
}

func TestMulti(t *testing.T) {
	ctx := context.Background()

	if _, ok := Multi().(NoopSessionHooks); !ok {
		t.Error("Multi() should return NoopSessionHooks")
	}
	if _, ok := Multi(nil, nil).(NoopSessionHooks); !ok {
		t.Error("Multi(nil, nil) should return NoopSessionHooks")
	}

	a := &testSessionHooks{}
	if Multi(nil, a) != a {
		t.Error("Multi with one hook should return it unwrapped")
	}

	b := &testSessionHooks{}
	m := Multi(a, b)
	m.OnResolve(ctx, "person", "Gretchen", true, 100)
	m.OnEdge(ctx, 0, true)
	m.OnAutosave(ctx, "x.csv", 0, nil)
	m.OnImport(ctx, "in.csv", 5, 1, 0, nil)
	m.OnExport(ctx, []string{"x.gv"}, 0, nil)

	for name, h := range map[string]*testSessionHooks{"a": a, "b": b} {
		if h.resolves != 1 || h.edges != 1 || h.autosaves != 1 || h.imports != 1 || h.exports != 1 {
			t.Errorf("hook %s = %+v, want one of each event", name, *h)
		}
	}
	if a.lastApplied != 5 || a.lastFailed != 1 {
		t.Errorf("import counts = %d/%d, want 5/1", a.lastApplied, a.lastFailed)
	}
}

type testSessionHooks struct {
	resolves, edges, autosaves, imports, exports int
	lastApplied, lastFailed                      int
}

func (h *testSessionHooks) OnResolve(context.Context, string, string, bool, int) { h.resolves++ }
func (h *testSessionHooks) OnEdge(context.Context, int, bool)                    { h.edges++ }
func (h *testSessionHooks) OnAutosave(context.Context, string, time.Duration, error) {
	h.autosaves++
}
func (h *testSessionHooks) OnImport(_ context.Context, _ string, applied, failed int, _ time.Duration, _ error) {
	h.imports++
	h.lastApplied, h.lastFailed = applied, failed
}
func (h *testSessionHooks) OnExport(context.Context, []string, time.Duration, error) { h.exports++ }

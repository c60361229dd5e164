package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/graphmapper/pkg/errors"
)

func fakeCommand(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "fake-dot")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandRenderer(t *testing.T) {
	dir := t.TempDir()
	dotPath := filepath.Join(dir, "g.gv")
	pdfPath := filepath.Join(dir, "g.gv.pdf")
	if err := os.WriteFile(dotPath, []byte("graph G {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := CommandRenderer{Command: fakeCommand(t, `[ "$1" = "-Tpdf" ] && [ "$3" = "-o" ] && cp "$2" "$4"`)}
	if err := r.Render(context.Background(), dotPath, pdfPath); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(got) != "graph G {}\n" {
		t.Errorf("output = %q", got)
	}
}

func TestCommandRendererErrors(t *testing.T) {
	tests := []struct {
		name    string
		command func(t *testing.T) string
	}{
		{"missing binary", func(*testing.T) string { return "graphmapper-no-such-renderer" }},
		{"failing binary", func(t *testing.T) string { return fakeCommand(t, "echo boom >&2; exit 3") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CommandRenderer{Command: tt.command(t)}
			err := r.Render(context.Background(), "in.gv", "out.pdf")
			if !errors.Is(err, errors.ErrCodeRender) {
				t.Errorf("err = %v, want RENDER_ERROR", err)
			}
		})
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Render(context.Background(), "a", "b"); err != nil {
		t.Errorf("Nop.Render = %v", err)
	}
}

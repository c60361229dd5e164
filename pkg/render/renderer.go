package render

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/matzehuels/graphmapper/pkg/errors"
)

// DefaultCommand is the Graphviz binary used by CommandRenderer.
const DefaultCommand = "dot"

// Renderer produces a PDF at pdfPath from the DOT file at dotPath.
type Renderer interface {
	Render(ctx context.Context, dotPath, pdfPath string) error
}

// CommandRenderer renders by running an external Graphviz layout command.
type CommandRenderer struct {
	// Command is the executable name or path. Empty means DefaultCommand.
	Command string
}

// Render runs "<command> -Tpdf dotPath -o pdfPath".
func (r CommandRenderer) Render(ctx context.Context, dotPath, pdfPath string) error {
	name := r.Command
	if name == "" {
		name = DefaultCommand
	}
	if _, err := exec.LookPath(name); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err,
			"%s not found. Install Graphviz:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", name)
	}

	var errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, "-Tpdf", dotPath, "-o", pdfPath)
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "%s: %s", name, bytes.TrimSpace(errBuf.Bytes()))
	}
	return nil
}

// Nop is a Renderer that does nothing.
type Nop struct{}

func (Nop) Render(context.Context, string, string) error { return nil }

var (
	_ Renderer = CommandRenderer{}
	_ Renderer = Nop{}
)

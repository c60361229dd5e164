package nodelink

import (
	"context"
	"os"

	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/render"
)

// GraphvizRenderer renders DOT files in-process with the embedded Graphviz
// and converts the result to PDF with rsvg-convert.
type GraphvizRenderer struct{}

// Render reads the DOT file at dotPath and writes a PDF to pdfPath.
func (GraphvizRenderer) Render(ctx context.Context, dotPath, pdfPath string) error {
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "read %s", dotPath)
	}
	pdf, err := RenderPDF(ctx, string(dot))
	if err != nil {
		return err
	}
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", pdfPath)
	}
	return nil
}

var _ render.Renderer = GraphvizRenderer{}

package render

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/matzehuels/graphmapper/pkg/errors"
)

// ConvertCommand is the librsvg tool that turns SVG into PDF.
var ConvertCommand = "rsvg-convert"

// ToPDF converts SVG bytes to PDF by piping them through [ConvertCommand].
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if _, err := exec.LookPath(ConvertCommand); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err,
			"pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, ConvertCommand, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "%s: %s", ConvertCommand, bytes.TrimSpace(errBuf.Bytes()))
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRender, "%s produced no output", ConvertCommand)
	}
	return out.Bytes(), nil
}

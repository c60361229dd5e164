package render

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/graphmapper/pkg/cache"
	"github.com/matzehuels/graphmapper/pkg/errors"
)

// Cached reuses a previously rendered PDF when the DOT source is unchanged.
// Cache failures fall back to rendering.
type Cached struct {
	Renderer Renderer
	Cache    cache.Cache

	// Engine separates entries of different renderers.
	Engine string

	// TTL bounds how long a PDF is reused. Zero keeps it forever.
	TTL time.Duration

	// OnHit is called with the key of every reused PDF. Optional.
	OnHit func(key string)
}

// Render implements Renderer.
func (r Cached) Render(ctx context.Context, dotPath, pdfPath string) error {
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read %s", dotPath)
	}
	key := cache.RenderKey(r.Engine, dot)

	if pdf, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", pdfPath)
		}
		if r.OnHit != nil {
			r.OnHit(key)
		}
		return nil
	}

	if err := r.Renderer.Render(ctx, dotPath, pdfPath); err != nil {
		return err
	}
	if pdf, err := os.ReadFile(pdfPath); err == nil {
		_ = r.Cache.Set(ctx, key, pdf, r.TTL)
	}
	return nil
}

var _ Renderer = Cached{}

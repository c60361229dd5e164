package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/cache"
	"github.com/matzehuels/graphmapper/pkg/config"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/match"
	"github.com/matzehuels/graphmapper/pkg/render"
	"github.com/matzehuels/graphmapper/pkg/render/nodelink"
	"github.com/matzehuels/graphmapper/pkg/session"
)

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, required := c.flags.config, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = c.flags.threshold
	}
	if flags.Changed("out") {
		cfg.OutDir = c.flags.outDir
	}
	if flags.Changed("no-autosave") {
		cfg.Autosave = !c.flags.noAutosave
	}
	if flags.Changed("engine") {
		cfg.Render.Engine = c.flags.engine
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config", "threshold", cfg.Threshold, "out", cfg.OutDir,
		"autosave", cfg.Autosave, "engine", cfg.Render.Engine)
	return cfg, nil
}

// newRenderer builds the renderer for the configured engine. Rendered PDFs
// are cached unless caching is disabled.
func (c *CLI) newRenderer(r config.Render) render.Renderer {
	var base render.Renderer
	switch r.Engine {
	case config.EngineDot:
		base = render.CommandRenderer{Command: r.Command}
	case config.EngineNone:
		return render.Nop{}
	default:
		base = nodelink.GraphvizRenderer{}
	}
	if !r.Cache || c.flags.noCache {
		return base
	}

	dir, err := cacheDir()
	if err == nil {
		var fc *cache.FileCache
		if fc, err = cache.NewFileCache(dir); err == nil {
			return render.Cached{
				Renderer: base,
				Cache:    fc,
				Engine:   r.Engine + ":" + r.Command,
				TTL:      renderCacheTTL,
				OnHit: func(key string) {
					c.Logger.Debug("reusing rendered pdf", "key", key)
				},
			}
		}
	}
	c.Logger.Warn("render cache disabled", "err", err)
	return base
}

// openSession creates the controller, resumes --session and loads --csv.
func (c *CLI) openSession(cmd *cobra.Command) (*session.Controller, *sessionStats, error) {
	ctx := cmd.Context()
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	stats := newSessionStats(c.Logger)
	ctrl, err := session.New(session.Options{
		Matcher:         match.New(cfg.Threshold),
		OutDir:          cfg.OutDir,
		Key:             c.flags.session,
		DisableAutosave: !cfg.Autosave,
		ForbidSelfLoops: !cfg.AllowSelfLoops,
		Renderer:        c.newRenderer(cfg.Render),
		Logger:          c.Logger,
		Hooks:           stats,
	})
	if err != nil {
		return nil, nil, err
	}
	stats.resumed = c.flags.session != ""

	if c.flags.session != "" {
		if out, found := ctrl.Resume(ctx); found {
			if err := reportOutcome(out); err != nil {
				return nil, nil, err
			}
			printImport(ctrl.Paths().CSV, out)
		} else {
			c.Logger.Info("starting new session", "key", ctrl.Key())
		}
	}
	for _, path := range c.flags.csv {
		if err := loadCSV(ctx, ctrl, path); err != nil {
			return nil, nil, err
		}
	}
	return ctrl, stats, nil
}

func loadCSV(ctx context.Context, ctrl *session.Controller, path string) error {
	out := ctrl.Handle(ctx, session.LoadCSV{Path: path})
	if err := reportOutcome(out); err != nil {
		return err
	}
	printImport(path, out)
	return nil
}

// reportOutcome prints warnings and returns the intent's error.
func reportOutcome(out session.Outcome) error {
	for _, w := range out.Warnings {
		if errors.Is(w, errors.ErrCodeMalformedRow) {
			printWarning("%s", w.Error())
			continue
		}
		printWarning("%s: %s", errors.GetCode(w), errors.UserMessage(w))
	}
	return out.Err
}

package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphmapper/pkg/observability"
)

// sessionStats counts session events for the end-of-command summary and
// logs them at debug level.
type sessionStats struct {
	logger *log.Logger

	resumed    bool
	minted     int
	reused     int
	edges      int
	duplicates int
	saves      int
	saveErrors int
	skipped    int
}

func newSessionStats(l *log.Logger) *sessionStats {
	return &sessionStats{logger: l}
}

func (s *sessionStats) OnResolve(_ context.Context, typeID, name string, minted bool, score int) {
	if minted {
		s.minted++
	} else {
		s.reused++
	}
	s.logger.Debug("resolve", "type", typeID, "name", name, "minted", minted, "score", score)
}

func (s *sessionStats) OnEdge(_ context.Context, edgeID int, created bool) {
	if created {
		s.edges++
	} else {
		s.duplicates++
	}
}

func (s *sessionStats) OnAutosave(_ context.Context, path string, d time.Duration, err error) {
	if err != nil {
		s.saveErrors++
		return
	}
	s.saves++
	s.logger.Debug("autosave", "path", path, "took", d.Round(time.Microsecond))
}

func (s *sessionStats) OnImport(_ context.Context, path string, applied, failed int, d time.Duration, err error) {
	s.skipped += failed
	s.logger.Debug("import", "path", path, "applied", applied, "failed", failed, "took", d.Round(time.Millisecond), "err", err)
}

func (s *sessionStats) OnExport(_ context.Context, paths []string, d time.Duration, err error) {
	s.logger.Debug("export", "files", len(paths), "took", d.Round(time.Millisecond), "err", err)
}

var _ observability.SessionHooks = (*sessionStats)(nil)

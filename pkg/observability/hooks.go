// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. A session controller receives its hooks
// through its options and reports resolutions, edges, autosaves, imports and
// exports to them.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the caller inject an implementation where the work happens
//
// There is no global registry. Two sessions in one process can report to
// different backends.
//
// # Usage
//
//	ctrl, err := session.New(session.Options{Hooks: myHooks})
//
// Combine several implementations with [Multi]:
//
//	hooks := observability.Multi(logHooks, statsHooks)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from a mapping session.
type SessionHooks interface {
	// OnResolve records a name resolution. minted is true when a new entity
	// was created; score is the similarity to the reused entity.
	OnResolve(ctx context.Context, typeID, name string, minted bool, score int)

	// OnEdge records an edge request. created is false for duplicates.
	OnEdge(ctx context.Context, edgeID int, created bool)

	// OnAutosave records a CSV autosave.
	OnAutosave(ctx context.Context, path string, duration time.Duration, err error)

	// OnImport records a CSV import.
	OnImport(ctx context.Context, path string, applied, failed int, duration time.Duration, err error)

	// OnExport records an export. paths lists the files written.
	OnExport(ctx context.Context, paths []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnResolve(context.Context, string, string, bool, int)             {}
func (NoopSessionHooks) OnEdge(context.Context, int, bool)                                {}
func (NoopSessionHooks) OnAutosave(context.Context, string, time.Duration, error)         {}
func (NoopSessionHooks) OnImport(context.Context, string, int, int, time.Duration, error) {}
func (NoopSessionHooks) OnExport(context.Context, []string, time.Duration, error)         {}

// =============================================================================
// Fan-out
// =============================================================================

type multi []SessionHooks

// Multi returns hooks that forward every event to each non-nil h in order.
func Multi(h ...SessionHooks) SessionHooks {
	var m multi
	for _, x := range h {
		if x != nil {
			m = append(m, x)
		}
	}
	if len(m) == 0 {
		return NoopSessionHooks{}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multi) OnResolve(ctx context.Context, typeID, name string, minted bool, score int) {
	for _, h := range m {
		h.OnResolve(ctx, typeID, name, minted, score)
	}
}

func (m multi) OnEdge(ctx context.Context, edgeID int, created bool) {
	for _, h := range m {
		h.OnEdge(ctx, edgeID, created)
	}
}

func (m multi) OnAutosave(ctx context.Context, path string, d time.Duration, err error) {
	for _, h := range m {
		h.OnAutosave(ctx, path, d, err)
	}
}

func (m multi) OnImport(ctx context.Context, path string, applied, failed int, d time.Duration, err error) {
	for _, h := range m {
		h.OnImport(ctx, path, applied, failed, d, err)
	}
}

func (m multi) OnExport(ctx context.Context, paths []string, d time.Duration, err error) {
	for _, h := range m {
		h.OnExport(ctx, paths, d, err)
	}
}

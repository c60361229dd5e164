package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
	gmio "github.com/matzehuels/graphmapper/pkg/io"
	"github.com/matzehuels/graphmapper/pkg/render/nodelink"
)

// Intent is a discrete request from the user interface:
// CreateOrResolveEntity, CreateEdge, LoadCSV or Export.
type Intent interface {
	intent()
}

// CreateOrResolveEntity resolves Name within TypeID, minting a new entity
// when nothing similar exists. Central flags the entity as central; false
// leaves an existing flag alone. TypeName optionally names the type.
type CreateOrResolveEntity struct {
	Name     string `validate:"required,max=256"`
	TypeID   string `validate:"required,max=256"`
	TypeName string `validate:"max=256"`
	Central  bool
}

// CreateEdge resolves both endpoints and records an edge between them.
type CreateEdge struct {
	SourceName string `validate:"required,max=256"`
	SourceType string `validate:"required,max=256"`
	TargetName string `validate:"required,max=256"`
	TargetType string `validate:"required,max=256"`
	EdgeType   string `validate:"max=256"`
	Directed   bool
}

// LoadCSV applies the CSV file at Path to the session.
type LoadCSV struct {
	Path string `validate:"required"`
}

// Export writes the CSV and DOT artifacts and renders the PDF.
type Export struct{}

func (CreateOrResolveEntity) intent() {}
func (CreateEdge) intent()            {}
func (LoadCSV) intent()               {}
func (Export) intent()                {}

// Outcome is the result of one intent.
type Outcome struct {
	// Err is set when the intent failed. State is unchanged for
	// VALIDATION failures.
	Err error

	// Warnings are non-fatal problems: failed writes, failed renders and
	// skipped CSV rows.
	Warnings []error

	// Entity is set for CreateOrResolveEntity.
	Entity *catalog.Resolution

	// Link is set for CreateEdge.
	Link *graph.Link

	// Import is set for LoadCSV.
	Import *gmio.Report

	// Files lists the artifacts written, including the autosave.
	Files []string
}

// OK reports whether the intent succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handle processes one intent to completion.
func (c *Controller) Handle(ctx context.Context, in Intent) Outcome {
	if err := validateIntent(in); err != nil {
		return Outcome{Err: err}
	}

	var out Outcome
	switch in := in.(type) {
	case CreateOrResolveEntity:
		out = c.resolveEntity(ctx, in)
	case CreateEdge:
		out = c.createEdge(ctx, in)
	case LoadCSV:
		out = c.loadCSV(ctx, in)
	case Export:
		return c.export(ctx)
	default:
		return Outcome{Err: errors.New(errors.ErrCodeInternal, "unknown intent %T", in)}
	}

	if out.Err == nil && c.autosave {
		if path, err := c.save(ctx); err != nil {
			out.Warnings = append(out.Warnings, err)
		} else {
			out.Files = append(out.Files, path)
		}
	}
	return out
}

func validateIntent(in Intent) error {
	if in == nil {
		return errors.New(errors.ErrCodeValidation, "no intent")
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInternal, err, "validate %T", in)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs[i] = fmt.Sprintf("%s is required", fe.Field())
		case "max":
			msgs[i] = fmt.Sprintf("%s is longer than %s characters", fe.Field(), fe.Param())
		default:
			msgs[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
		}
	}
	return errors.New(errors.ErrCodeValidation, "%s", strings.Join(msgs, "; "))
}

func (c *Controller) resolveEntity(ctx context.Context, in CreateOrResolveEntity) Outcome {
	if err := errors.ValidateEntityName(in.Name); err != nil {
		return Outcome{Err: err}
	}
	if in.TypeName != "" {
		if _, err := c.catalog.DefineType(in.TypeID, in.TypeName); err != nil {
			return Outcome{Err: err}
		}
	}
	res, err := c.catalog.Resolve(in.Name, in.TypeID)
	if err != nil {
		return Outcome{Err: err}
	}
	if in.Central {
		if err := c.catalog.SetCentral(res.Entity.ID, true); err != nil {
			return Outcome{Err: err}
		}
		res.Entity, _ = c.catalog.Entity(res.Entity.ID)
	}
	c.hooks.OnResolve(ctx, res.Entity.TypeID, in.Name, res.Minted, res.Score)
	c.logger.Debug("resolved", "name", in.Name, "type", res.Entity.TypeID,
		"entity", res.Entity.Name, "minted", res.Minted, "score", res.Score)
	return Outcome{Entity: &res}
}

func (c *Controller) createEdge(ctx context.Context, in CreateEdge) Outcome {
	l, err := c.store.Link(graph.EdgeSpec{
		SourceName: in.SourceName,
		SourceType: in.SourceType,
		TargetName: in.TargetName,
		TargetType: in.TargetType,
		EdgeType:   in.EdgeType,
		Directed:   in.Directed,
	})
	if err != nil {
		return Outcome{Err: err}
	}
	c.hooks.OnResolve(ctx, l.Source.Entity.TypeID, in.SourceName, l.Source.Minted, l.Source.Score)
	c.hooks.OnResolve(ctx, l.Target.Entity.TypeID, in.TargetName, l.Target.Minted, l.Target.Score)
	c.hooks.OnEdge(ctx, l.Edge.ID, l.Created)
	c.logger.Debug("edge", "edge", c.store.Describe(l.Edge), "created", l.Created)
	return Outcome{Link: &l}
}

func (c *Controller) loadCSV(ctx context.Context, in LoadCSV) Outcome {
	start := time.Now()
	rep, err := gmio.ImportCSV(in.Path, c.store)
	c.hooks.OnImport(ctx, in.Path, rep.Applied, len(rep.Errors), time.Since(start), err)
	if err != nil {
		return Outcome{Err: err, Import: &rep}
	}
	out := Outcome{Import: &rep}
	for _, rowErr := range rep.Errors {
		c.logger.Warn("skipped row", "path", in.Path, "line", rowErr.Line, "reason", rowErr.Reason)
		out.Warnings = append(out.Warnings, rowErr)
	}
	c.logger.Info("loaded csv", "path", in.Path, "applied", rep.Applied, "skipped", len(rep.Errors))
	return out
}

// export writes CSV and DOT, then renders. Each step runs even when an
// earlier one failed.
func (c *Controller) export(ctx context.Context) Outcome {
	start := time.Now()
	var out Outcome

	if path, err := c.save(ctx); err != nil {
		out.Warnings = append(out.Warnings, err)
	} else {
		out.Files = append(out.Files, path)
	}

	dot := nodelink.ToDOT(c.store, c.dotOpts)
	err := c.files.Write(c.paths.DOT, func(w io.Writer) error {
		_, err := io.WriteString(w, dot)
		return err
	})
	if err != nil {
		c.logger.Warn("write dot failed", "path", c.paths.DOT, "err", err)
		out.Warnings = append(out.Warnings, err)
	} else {
		out.Files = append(out.Files, c.paths.DOT)
		if err := c.renderer.Render(ctx, c.paths.DOT, c.paths.PDF); err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeRender, err, "render %s", c.paths.PDF)
			}
			c.logger.Warn("render failed", "path", c.paths.PDF, "err", err)
			out.Warnings = append(out.Warnings, err)
		} else if c.files.Exists(c.paths.PDF) {
			out.Files = append(out.Files, c.paths.PDF)
		}
	}

	c.hooks.OnExport(ctx, out.Files, time.Since(start), stderrors.Join(out.Warnings...))
	c.logger.Info("exported", "files", len(out.Files), "warnings", len(out.Warnings))
	return out
}

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/graph"
	"github.com/matzehuels/graphmapper/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed prefixes edge labels with the edge ID.
	Detailed bool
}

// ToDOT converts the store to Graphviz DOT source.
// The result can be written to a .gv file or rendered with [RenderSVG].
func ToDOT(s *graph.Store, opts Options) string {
	edges := s.ListEdges()
	kind, op := "graph", "--"
	for _, e := range edges {
		if e.Directed {
			kind, op = "digraph", "->"
			break
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=rounded, color=gray28, fontcolor=gray14];\n")
	buf.WriteString("  edge [color=gray, fontcolor=gray];\n")

	for i, t := range s.ListVertexTypes() {
		ents := s.ListEntities(t.ID)
		if len(ents) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%s;\n", quote(strings.ToUpper(t.Name)))
		buf.WriteString("    color=dodgerblue;\n")
		buf.WriteString("    fontcolor=dodgerblue3;\n")
		for _, ent := range ents {
			fmt.Fprintf(&buf, "    %s [%s];\n", quote(ent.ID), strings.Join(nodeAttrs(ent), ", "))
		}
		buf.WriteString("  }\n")
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		attrs := edgeAttrs(e, op == "->", opts.Detailed)
		fmt.Fprintf(&buf, "  %s %s %s", quote(e.Source), op, quote(e.Target))
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(e catalog.Entity) []string {
	attrs := []string{"label=" + quote(e.Name)}
	if e.Central {
		attrs = append(attrs, `style="rounded,filled,bold"`, "fillcolor=aliceblue", "color=dodgerblue3", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(e graph.Edge, digraph, detailed bool) []string {
	var attrs []string
	label := e.Type
	if detailed {
		label = strings.TrimSpace(fmt.Sprintf("(%d) %s", e.ID, e.Type))
	}
	if label != "" {
		attrs = append(attrs, "label="+quote(label))
	}
	if digraph && !e.Directed {
		attrs = append(attrs, "dir=none")
	}
	return attrs
}

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// Validate parses dot with Graphviz and reports syntax errors.
func Validate(dot string) error {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	return g.Close()
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return buf.Bytes(), nil
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

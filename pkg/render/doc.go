// Package render turns the DOT source of a mapping session into a PDF.
//
// # Overview
//
// Rendering is delegated to an external collaborator behind the [Renderer]
// interface: it takes the path of a DOT file and writes a PDF next to it.
// Two implementations are provided:
//
//   - [CommandRenderer] runs the Graphviz dot binary (dot -Tpdf)
//   - nodelink.GraphvizRenderer lays the graph out in-process and converts
//     the SVG with rsvg-convert (see [ToPDF])
//
// [Nop] skips rendering entirely, and [Cached] wraps either renderer so an
// unchanged DOT file reuses the PDF rendered last time.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Errors
//
// Every failure is returned with the RENDER_ERROR code. A failed render never
// invalidates the DOT and CSV files already written.
package render

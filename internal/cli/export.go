package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/session"
)

// exportCommand creates the export command for writing all artifacts.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the CSV and DOT files and render the PDF",
		Long: `Write the session's CSV and DOT files and render the DOT to PDF.

Files are named after the session key inside the output directory:

  <key>-graph-mapping.csv
  <key>-graph-mapping.gv
  <key>-graph-mapping.gv.pdf

A failed render is reported as a warning; the CSV and DOT files are still
written. Use --engine none to skip rendering.`,
		Example: `  graphmapper -s m-abcde export
  graphmapper --csv mapping.csv --engine dot export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, stats, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			return c.runExport(cmd, ctrl, stats)
		},
	}
}

func (c *CLI) runExport(cmd *cobra.Command, ctrl *session.Controller, stats *sessionStats) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(cmd.Context(), fmt.Sprintf("Exporting %s...", ctrl.Key()))
	spinner.Start()

	out := ctrl.Handle(cmd.Context(), session.Export{})
	if n := len(out.Warnings); n > 0 {
		spinner.StopWithWarning(fmt.Sprintf("Exported with %d warning(s)", n))
	} else {
		spinner.StopWithSuccess("Exported " + ctrl.Key())
	}
	if err := reportOutcome(out); err != nil {
		return err
	}
	for _, f := range out.Files {
		printFile(f)
	}
	prog.done("exported", "key", ctrl.Key(), "files", len(out.Files), "warnings", len(out.Warnings))
	c.finish(ctrl, stats)
	return nil
}

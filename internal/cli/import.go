package cli

import (
	"github.com/spf13/cobra"
)

// importCommand creates the import command for loading CSV files.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Load entities and edges from CSV files",
		Long: `Load entities and edges from CSV files into a session.

Rows are applied in order. Endpoints resolve by exact name, so loading a file
twice does not duplicate anything. Malformed rows are reported with their line
number and skipped; the remaining rows still apply.

Both the full format written by graphmapper and the simplified
entity,vertex_id,entity2,vertex_id2 format are accepted.`,
		Example: `  graphmapper import people.csv foods.csv
  graphmapper -s m-abcde import more.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, stats, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := loadCSV(cmd.Context(), ctrl, path); err != nil {
					return err
				}
			}
			c.finish(ctrl, stats)
			return nil
		},
	}
}

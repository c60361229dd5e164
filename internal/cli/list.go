package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/errors"
	gmio "github.com/matzehuels/graphmapper/pkg/io"
)

// listCommand creates the list command for showing entities.
func (c *CLI) listCommand() *cobra.Command {
	var (
		typeID string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the vertex types and entities of a session",
		Long: `List the vertex types and entities of a session.

Central entities are marked with a star. Degree counts the edges touching
each entity. Use --json for a machine-readable snapshot including edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, stats, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			store := ctrl.Store()
			if asJSON {
				return gmio.WriteJSON(store, os.Stdout)
			}

			types := store.ListVertexTypes()
			if typeID != "" {
				vt, ok := ctrl.Catalog().Type(typeID)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "vertex type %q not found", typeID)
				}
				types = []catalog.VertexType{vt}
			}
			if ctrl.Catalog().Len() == 0 {
				printInfo("Session %s is empty", ctrl.Key())
				return nil
			}

			fmt.Println(entityTable(store, types).Render())
			printSummary(ctrl.Summary(), stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeID, "type", "t", "", "only list this vertex type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON snapshot")

	return cmd
}

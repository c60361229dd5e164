package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/errors"
	"github.com/matzehuels/graphmapper/pkg/session"
)

// linkFlags holds the flags for the link command.
type linkFlags struct {
	typeID   string
	fromType string
	toType   string
	edgeType string
	directed bool
}

// linkCommand creates the link command for adding an edge.
func (c *CLI) linkCommand() *cobra.Command {
	var flags linkFlags

	cmd := &cobra.Command{
		Use:   "link SOURCE TARGET",
		Short: "Connect two entities with an edge",
		Long: `Connect two entities with an edge.

Both names are resolved the same way add resolves them, so either endpoint
may be new. Use --type when both endpoints share a vertex type, or
--from-type and --to-type when they differ. Adding an edge that already
exists reuses it.`,
		Example: `  graphmapper link pizza salad -t food -e similar-to
  graphmapper link gretchen pizza --from-type person --to-type food -e likes -d`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := flags.fromType, flags.toType
			if from == "" {
				from = flags.typeID
			}
			if to == "" {
				to = flags.typeID
			}
			if from == "" || to == "" {
				return errors.New(errors.ErrCodeValidation, "vertex types required: use --type or --from-type and --to-type")
			}
			return c.runLink(cmd, session.CreateEdge{
				SourceName: args[0],
				SourceType: from,
				TargetName: args[1],
				TargetType: to,
				EdgeType:   flags.edgeType,
				Directed:   flags.directed,
			})
		},
	}

	cmd.Flags().StringVarP(&flags.typeID, "type", "t", "", "vertex type ID for both endpoints")
	cmd.Flags().StringVar(&flags.fromType, "from-type", "", "vertex type ID of the source")
	cmd.Flags().StringVar(&flags.toType, "to-type", "", "vertex type ID of the target")
	cmd.Flags().StringVarP(&flags.edgeType, "edge-type", "e", "", "edge label")
	cmd.Flags().BoolVarP(&flags.directed, "directed", "d", false, "draw the edge as an arrow from source to target")

	return cmd
}

func (c *CLI) runLink(cmd *cobra.Command, in session.CreateEdge) error {
	ctrl, stats, err := c.openSession(cmd)
	if err != nil {
		return err
	}

	out := ctrl.Handle(cmd.Context(), in)
	if err := reportOutcome(out); err != nil {
		return err
	}
	l := out.Link
	printResolution(in.SourceName, l.Source)
	printResolution(in.TargetName, l.Target)
	desc := ctrl.Store().Describe(l.Edge)
	if l.Created {
		printSuccess("%s", desc)
	} else {
		printInfo("%s %s", desc, StyleDim.Render("(exists)"))
	}
	c.finish(ctrl, stats)
	return nil
}

// edgesCommand creates the edges command for listing edges.
func (c *CLI) edgesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edges",
		Short: "List the edges of a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			store := ctrl.Store()
			edges := store.ListEdges()
			if len(edges) == 0 {
				printInfo("No edges")
				return nil
			}
			for _, e := range edges {
				fmt.Println(store.Describe(e))
			}
			return nil
		},
	}
}

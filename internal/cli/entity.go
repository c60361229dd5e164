package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/session"
)

// entityFlags holds the flags shared by add and match.
type entityFlags struct {
	typeID   string
	typeName string
	central  bool
	limit    int
}

// addCommand creates the add command for resolving a single entity.
func (c *CLI) addCommand() *cobra.Command {
	var flags entityFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create or resolve an entity",
		Long: `Create or resolve an entity within a vertex type.

A name similar enough to an existing entity of the same type resolves to that
entity; otherwise a new entity is created. Use --session to add to an existing
session.`,
		Example: `  graphmapper add "Pizza Margherita" -t food --central
  graphmapper -s m-abcde add "pizza margarita" -t food`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.typeID, "type", "t", "", "vertex type ID (required)")
	cmd.Flags().StringVar(&flags.typeName, "type-name", "", "display name for the vertex type")
	cmd.Flags().BoolVar(&flags.central, "central", false, "mark the entity as central to its type")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (c *CLI) runAdd(cmd *cobra.Command, name string, flags entityFlags) error {
	ctrl, stats, err := c.openSession(cmd)
	if err != nil {
		return err
	}

	out := ctrl.Handle(cmd.Context(), session.CreateOrResolveEntity{
		Name:     name,
		TypeID:   flags.typeID,
		TypeName: flags.typeName,
		Central:  flags.central,
	})
	if err := reportOutcome(out); err != nil {
		return err
	}
	printResolution(name, *out.Entity)
	c.finish(ctrl, stats)
	return nil
}

// matchCommand creates the match command for previewing resolution.
func (c *CLI) matchCommand() *cobra.Command {
	flags := entityFlags{limit: defaultSuggestions}

	cmd := &cobra.Command{
		Use:   "match NAME",
		Short: "Show how a name would resolve without changing the session",
		Long: `Show how a name would resolve within a vertex type.

The best candidates are listed with their similarity score. Nothing is
created or saved, so match is safe to run against any session.`,
		Example: `  graphmapper -s m-abcde match "margarita" -t food`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.typeID, "type", "t", "", "vertex type ID (required)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", flags.limit, "number of candidates to show")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (c *CLI) runMatch(cmd *cobra.Command, name string, flags entityFlags) error {
	ctrl, _, err := c.openSession(cmd)
	if err != nil {
		return err
	}
	cat := ctrl.Catalog()

	res, found, err := cat.Peek(name, flags.typeID)
	if err != nil {
		return err
	}
	if found {
		printSuccess("%q resolves to %s (%d%%)", name, StyleValue.Render(res.Entity.Name), res.Score)
	} else {
		printInfo("%q would create a new %s entity", name, flags.typeID)
	}

	suggestions := cat.Suggest(name, flags.typeID, flags.limit)
	threshold := cat.Matcher().Threshold()
	for _, s := range suggestions {
		line := fmt.Sprintf("%3d%%  %s", s.Score, s.Entity.Name)
		if s.Score < threshold {
			printDetail("%s", line)
			continue
		}
		fmt.Println("  " + StyleHighlight.Render(line))
	}
	return nil
}

// finish prints the session summary and, for a fresh session, how to resume it.
func (c *CLI) finish(ctrl *session.Controller, stats *sessionStats) {
	printSummary(ctrl.Summary(), stats)
	if stats.saveErrors > 0 {
		printWarning("%d autosave(s) failed; run export to retry", stats.saveErrors)
	}
	if !stats.resumed {
		printNextStep("Continue this session", fmt.Sprintf("%s --session %s", appName, ctrl.Key()))
	}
}

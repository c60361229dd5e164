package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCommand creates the edit command for the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Add entities and edges interactively",
		Long: `Add entities and edges interactively.

Type a name and vertex type; similar existing entities are listed as you
type. Press enter to submit, ctrl+t to switch between entity and edge entry,
ctrl+e to export and esc to quit. Every change is autosaved.

Running graphmapper without a command starts the editor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEditor(cmd)
		},
	}
}

// runEditor opens the session and runs the editor until the user quits.
func (c *CLI) runEditor(cmd *cobra.Command) error {
	ctrl, stats, err := c.openSession(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p := tea.NewProgram(NewEditorModel(ctx, ctrl), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	c.finish(ctrl, stats)
	return nil
}

// Package cli implements the graphmapper command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "graphmapper"

	// defaultSuggestions is how many candidate matches are shown.
	defaultSuggestions = 5

	// renderCacheTTL bounds how long a rendered PDF is reused.
	renderCacheTTL = 30 * 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	flags  globalFlags
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config     string   // TOML config path
	session    string   // session key to resume
	csv        []string // CSV files loaded at startup
	outDir     string   // artifact directory override
	threshold  int      // fuzzy threshold override
	noAutosave bool     // disable autosave
	engine     string   // render engine override
	noCache    bool     // render without the PDF cache
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand the interactive editor starts.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graphmapper builds typed entity graphs from free-text names",
		Long: `Graphmapper builds a labeled, typed graph of real-world entities from
free-text names. Similar names within a vertex type resolve to one entity,
so typos and naming variants do not create duplicates.

Every change is autosaved as CSV under the output directory. Export writes
the DOT source and renders it to PDF.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEditor(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.config, "config", "", "config file (default ./graphmapper.toml)")
	pf.StringVarP(&c.flags.session, "session", "s", "", "resume the session with this key")
	pf.StringSliceVar(&c.flags.csv, "csv", nil, "load CSV file(s) before running the command")
	pf.StringVarP(&c.flags.outDir, "out", "o", "", "artifact directory (default out)")
	pf.IntVar(&c.flags.threshold, "threshold", 0, "fuzzy match threshold 0-100 (default 80)")
	pf.BoolVar(&c.flags.noAutosave, "no-autosave", false, "do not write the CSV after each change")
	pf.StringVar(&c.flags.engine, "engine", "", "render engine: graphviz, dot or none")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "always re-render the PDF")

	root.AddCommand(c.addCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.matchCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheDir returns the render cache directory, honoring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

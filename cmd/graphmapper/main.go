package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphmapper/internal/cli"
	gmerrors "github.com/matzehuels/graphmapper/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known once flags are parsed.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// describe formats err for the terminal, prefixing coded errors with their code.
func describe(err error) string {
	code := gmerrors.GetCode(err)
	if code == "" {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("error [%s]: %s", code, gmerrors.UserMessage(err))
}

// exitCode maps input errors to 2 and everything else to 1.
func exitCode(err error) int {
	switch gmerrors.GetCode(err) {
	case gmerrors.ErrCodeValidation, gmerrors.ErrCodeInvalidConfig,
		gmerrors.ErrCodeInvalidFormat, gmerrors.ErrCodeNotFound:
		return 2
	}
	return 1
}

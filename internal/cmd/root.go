package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/grin/internal/config"
	"github.com/harrison/grin/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Execute runs cmd with the arguments from the environment variable envName
// prepended to args. An interrupted search is not an error.
func Execute(ctx context.Context, cmd *cobra.Command, envName string, args []string) error {
	full, err := EnvArgs(envName, args)
	if err != nil {
		return err
	}
	cmd.SetArgs(full)
	cmd.SilenceErrors = true

	err = cmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Main runs cmd and returns the process exit code: 0 on success or when ctx
// is cancelled, 1 after printing the error to stderr. Cancellation returns
// at once even if the command is blocked reading input; the caller is
// expected to exit, which abandons the blocked read.
func Main(ctx context.Context, cmd *cobra.Command, envName string, args []string) int {
	done := make(chan error, 1)
	go func() {
		done <- Execute(ctx, cmd, envName, args)
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
		return 0
	}
}

// addConfigFlags registers the flags shared by every command for locating
// configuration and controlling diagnostics.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: $GRIN_CONFIG or ~/.grin.yaml)")
	cmd.Flags().String("log-level", "", "Diagnostic verbosity: trace, debug, info, warn, error")
}

// loadConfig loads the configuration named by --config, $GRIN_CONFIG or the
// home directory, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, path, err := config.Load(explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger creates the diagnostic logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, level string) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), level)
}

// Package main is the entry point for the medidas CLI and API server.
// Its sole responsibility is wiring dependencies together and dispatching
// commands. No business logic belongs here.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Errors have already been surfaced as notifications or log lines;
		// here they only decide the exit code.
		os.Exit(1)
	}
}

// flagDataDir and flagServerURL override the MEDIDAS_DATA_DIR and
// MEDIDAS_SERVER environment variables for a single invocation.
var (
	flagDataDir   string
	flagServerURL string
)

// newRootCmd builds the command tree. Usage and error echoing are silenced
// because every command reports its own outcome.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medidas",
		Short:         "Record body and garment measurements grouped into named sets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory for the local measurement store (default ~/.medidas)")
	root.PersistentFlags().StringVar(&flagServerURL, "server", "", "base URL of the medidas API server (default http://localhost:8080)")
	root.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newListCmd(),
		newImportCmd(),
		newExportCmd(),
	)
	return root
}

// newLogger builds the process-wide structured logger.
// log/slog is the stdlib structured logger; the JSON handler writes
// machine-readable output suitable for log aggregators.
func newLogger(level string, w *os.File) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

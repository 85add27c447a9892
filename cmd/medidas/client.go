package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rfcoelho/medidas/internal/app"
	"github.com/rfcoelho/medidas/internal/config"
	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/internal/persist"
	"github.com/rfcoelho/medidas/internal/render"
	"github.com/rfcoelho/medidas/internal/store"
)

// newClientApp wires the client stack: local sqlite store + remote API behind
// the fallback adapter, a fresh record store, and the terminal renderer.
// The returned cleanup closes the local database.
func newClientApp() (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}

	// Client log lines go to stderr so notifications and tables own stdout.
	logger := newLogger(cfg.LogLevel, os.Stderr)

	local, err := persist.OpenLocal(cfg.LocalStorePath())
	if err != nil {
		return nil, nil, err
	}

	adapter := persist.NewStack(local, persist.NewRemote(cfg.ServerURL), logger)
	a := app.New(store.New(), adapter, render.New(), os.Stdout, logger)
	return a, func() { local.Close() }, nil
}

func newAddCmd() *cobra.Command {
	var (
		kind  string
		set   string
		name  string
		value float64
		unit  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a measurement",
		Long: `Record a measurement in a named set.

Use --kind conjunto to create the set itself; any other kind is a free-form
garment or body part label (waist, chest, sleeve, ...).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := newClientApp()
			if err != nil {
				return err
			}
			defer cleanup()

			a.Load(cmd.Context())
			input := domain.NewMeasurement(kind, set, name, value, unit)
			return a.AddMeasurement(cmd.Context(), input)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "measurement kind (use \"conjunto\" to define a set)")
	cmd.Flags().StringVar(&set, "set", "", "title of the owning set")
	cmd.Flags().StringVar(&name, "name", "", "measurement name (e.g. waist)")
	cmd.Flags().Float64Var(&value, "value", 0, "measured value (must be > 0)")
	cmd.Flags().StringVar(&unit, "unit", "", "unit (e.g. cm)")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a measurement by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := newClientApp()
			if err != nil {
				return err
			}
			defer cleanup()

			a.Load(cmd.Context())
			a.RemoveMeasurement(cmd.Context(), args[0])
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all measurements grouped by set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := newClientApp()
			if err != nil {
				return err
			}
			defer cleanup()

			a.Load(cmd.Context())
			a.List()
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all measurements with the contents of a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := newClientApp()
			if err != nil {
				return err
			}
			defer cleanup()

			return a.Import(cmd.Context(), args[0])
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Write a date-stamped JSON backup of all measurements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := newClientApp()
			if err != nil {
				return err
			}
			defer cleanup()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			a.Load(cmd.Context())
			return a.Export(cmd.Context(), dir)
		},
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/amaumene/mediacatalog/internal/config"
	"github.com/amaumene/mediacatalog/internal/tui"
	"github.com/amaumene/mediacatalog/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mediacatalog",
		Short:         "Keep track of the books, movies, games and music you consume",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.PersistentFlags().String("data-dir", "", "directory holding the database (env DATA_DIR)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	_ = viper.BindPFlag("DATA_DIR", root.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI()
			},
		},
		newAddCmd(),
		newImportAudioCmd(),
		newListCmd(),
		newShowCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newToggleCmd(),
		newRateCmd(),
		newStatsCmd(),
		newExportCmd(),
	)

	return root
}

// withApp loads the configuration, wires the application logging to out and runs fn
func withApp(out io.Writer, fn func(app *App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, cleanup, err := InitializeApp(cfg, out)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(app)
}

// withCLI runs fn with logs going to the command's stderr
func withCLI(cmd *cobra.Command, fn func(app *App) error) error {
	return withApp(cmd.ErrOrStderr(), fn)
}

// runTUI starts the terminal UI. The terminal belongs to the UI, so logs go to the log file.
func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := utils.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	app, cleanup, err := InitializeApp(cfg, logFile)
	if err != nil {
		return err
	}
	defer cleanup()

	app.Logger.WithField("database", cfg.DatabaseFile).Info("Starting media catalog")
	if err := tui.Run(app.Catalog, app.Exporter, cfg.DefaultQuery(), app.Logger); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	app.Logger.Info("Media catalog stopped")
	return nil
}

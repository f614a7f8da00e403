// Package ui provides the skema command line.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool // Enable debug logging
	noMouse    bool
}

// NewApp creates a new CLI application with the given config, loaded from configPath.
func NewApp(cfg *config.Config, configPath string) *App {
	a := &App{config: cfg, configPath: configPath}

	a.root = &cobra.Command{
		Use:   "skema",
		Short: "Drag events onto a weekly planner",
		Long: `Skema is a terminal planner: create events and drag them onto
day and hour slots with the mouse or the keyboard.

Run without a subcommand to open the planner.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("config") {
				return nil
			}
			cfg, err := config.LoadFrom(a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	// Add global flags
	a.root.PersistentFlags().StringVar(&a.configPath, "config", configPath, "Config file path")
	a.root.Flags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.Flags().BoolVar(&a.noMouse, "no-mouse", false, "Disable mouse gestures")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.keysCmd())
	a.root.AddCommand(a.showCmd())

	return a
}

func (a *App) runTUI(ctx context.Context) error {
	log, closeLog, err := tui.OpenDebugLog(a.debug, a.config.Log)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	b, err := a.newBoard(log)
	if err != nil {
		return err
	}

	return tui.Run(ctx, b, a.config, tui.RunOptions{
		Mouse:      a.config.UI.Mouse && !a.noMouse,
		ConfigPath: a.configPath,
		Log:        log,
	})
}

// newBoard builds a session board from the current config.
func (a *App) newBoard(log logx.Logger) (*board.Board, error) {
	bc, err := a.config.BoardConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	b, err := board.New(bc, board.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	return b, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skema %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments, for tests and embedding.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

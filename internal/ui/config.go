package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/tui/theme"
)

// ErrConfigExists is returned by 'config --init' when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

func (a *App) configCmd() *cobra.Command {
	var initFile, edit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Print the effective configuration: defaults, overlaid by the config
file, overlaid by SKEMA_* environment variables.

--init writes the defaults to the config file. --edit prompts for
each setting and saves the result.

Example:
  skema config --init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case initFile:
				return a.initConfig(out)
			case edit:
				return a.editConfig(bufio.NewReader(cmd.InOrStdin()), out)
			default:
				fmt.Fprintf(out, "Config file: %s\n\n", a.configPath)
				printConfig(out, a.config)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default configuration to the config file")
	cmd.Flags().BoolVar(&edit, "edit", false, "Edit the configuration interactively")
	return cmd
}

func (a *App) initConfig(out io.Writer) error {
	if _, err := os.Stat(a.configPath); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, a.configPath)
	}
	if err := config.Default().SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", a.configPath)
	return nil
}

func (a *App) editConfig(reader *bufio.Reader, out io.Writer) error {
	cfg := *a.config
	cfg.Grid.Days = append([]string(nil), a.config.Grid.Days...)

	cfg.Grid.Shape = promptValue(reader, out, "Grid shape (two-axis, single-axis)", cfg.Grid.Shape)
	cfg.Grid.HourStart = promptInt(reader, out, "First hour", cfg.Grid.HourStart)
	cfg.Grid.HourEnd = promptInt(reader, out, "Last hour", cfg.Grid.HourEnd)
	cfg.Grid.Days = promptSlice(reader, out, "Days (comma-separated)", cfg.Grid.Days)
	cfg.Assign.Policy = promptValue(reader, out, "Assign policy (multi, single)", cfg.Assign.Policy)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*a.config = cfg

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  shape      = %s\n", cfg.Grid.Shape)
	fmt.Fprintf(out, "  hour_start = %d\n", cfg.Grid.HourStart)
	fmt.Fprintf(out, "  hour_end   = %d\n", cfg.Grid.HourEnd)
	fmt.Fprintf(out, "  days       = %s\n", strings.Join(cfg.Grid.Days, ", "))
	fmt.Fprintln(out, "\n[assign]")
	fmt.Fprintf(out, "  policy     = %s\n", cfg.Assign.Policy)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme      = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  mouse      = %t\n", cfg.UI.Mouse)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level      = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  file       = %s\n", cfg.Log.File)
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptSlice(reader *bufio.Reader, out io.Writer, label string, current []string) []string {
	input := promptValue(reader, out, label, strings.Join(current, ", "))
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) || value == strings.ToLower(current) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}

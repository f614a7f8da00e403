package ui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/dateutil"
	"github.com/javiermolinar/skema/internal/export"
	"github.com/javiermolinar/skema/internal/logx"
)

// ErrInvalidDrop is returned for a --drop value that is not ID@KEY.
var ErrInvalidDrop = errors.New("drop must be ID@KEY")

var writeClipboard = clipboard.WriteAll

// showOpts holds the show command flags.
type showOpts struct {
	add     int
	drops   []string
	verbose bool
	noColor bool
	copy    bool
	ics     string
	weeks   int
	from    string
}

func (a *App) showCmd() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Replay drops on a fresh board and print it",
		Long: `Build a board without the interactive planner: create events,
apply drops in order and print the resulting grid.

Each --drop is ID@KEY, where ID is the event id (0 for "Event 1")
and KEY is a slot key as listed by 'skema keys'.

Example:
  skema show --add 2 --drop 0@Monday-9 --drop 1@monday-9 --ics week.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.noColor {
				DisableColor()
			}
			return a.runShow(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.add, "add", 0, "Number of events to create")
	cmd.Flags().StringArrayVar(&opts.drops, "drop", nil, "Drop event ID on slot KEY (ID@KEY), repeatable")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show every occupant of a slot")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the board as text to the clipboard")
	cmd.Flags().StringVar(&opts.ics, "ics", "", "Write an iCalendar file of the assignments")
	cmd.Flags().IntVar(&opts.weeks, "weeks", 1, "Repeat exported events weekly this many times")
	cmd.Flags().StringVar(&opts.from, "from", "", "First export day: YYYY-MM-DD, today, tomorrow, this-week, next-week or a weekday")
	return cmd
}

func (a *App) runShow(cmd *cobra.Command, opts showOpts) error {
	if opts.add < 0 {
		return fmt.Errorf("--add must not be negative, got %d", opts.add)
	}
	if opts.weeks < 1 {
		return fmt.Errorf("--weeks must be at least 1, got %d", opts.weeks)
	}

	log := logx.NewConsole(cmd.ErrOrStderr(), a.config.Log.Level)
	b, err := a.newBoard(log)
	if err != nil {
		return err
	}

	for range opts.add {
		b.AddItem()
	}
	for _, d := range opts.drops {
		if err := applyDrop(b, d); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	PrintBoard(out, b, PrintOpts{Verbose: opts.verbose})

	snap := b.Snapshot()
	if opts.copy {
		if err := writeClipboard(export.Text(snap.Assignments, b.Grid(), snap.Items)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(out, formatDim("Copied board to clipboard"))
	}

	if opts.ics != "" {
		from, err := dateutil.ParseStart(opts.from, time.Now())
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
		data, err := export.ICS(snap.Assignments, b.Grid(), export.Options{From: from, Weeks: opts.weeks})
		if err != nil {
			return fmt.Errorf("exporting calendar: %w", err)
		}
		if err := os.WriteFile(opts.ics, []byte(data), 0o644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		log.Info("calendar written", logx.String("path", opts.ics), logx.Int("weeks", opts.weeks))
		fmt.Fprintf(out, "%s %s\n", formatDim("Wrote"), opts.ics)
	}

	return nil
}

// applyDrop parses ID@KEY and runs a whole drag gesture for it.
func applyDrop(b *board.Board, arg string) error {
	idPart, keyPart, ok := strings.Cut(arg, "@")
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDrop, arg)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return fmt.Errorf("%w: bad id in %q", ErrInvalidDrop, arg)
	}
	k, err := b.Grid().Parse(keyPart)
	if err != nil {
		return fmt.Errorf("drop %q: %w", arg, err)
	}
	if err := b.Drop(id, k); err != nil {
		return fmt.Errorf("drop %q: %w", arg, err)
	}
	return nil
}

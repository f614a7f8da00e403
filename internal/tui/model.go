// Package tui provides the terminal user interface for skema.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/tui/commands"
	"github.com/javiermolinar/skema/internal/tui/theme"
)

// Focus is the panel receiving navigation keys.
type Focus int

const (
	FocusStaging Focus = iota
	FocusGrid
)

func (f Focus) String() string {
	if f == FocusGrid {
		return "grid"
	}
	return "staging"
}

// Position is the grid cursor: column (day) and row (hour).
type Position struct {
	Col int
	Row int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	board  *board.Board
	config *config.Config
	log    logx.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	keys    keyMap
	help    help.Model
	overlay OverlayModel

	// State
	focus      Focus
	cursor     Position // grid cursor, also the keyboard drop target
	selected   int      // staging list cursor
	listOffset int
	gridOffset int // first hour row on screen
	mouse      bool
	mouseDrag  bool // current gesture started with the mouse

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
	now        func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger routes TUI debug logging to log.
func WithLogger(log logx.Logger) ModelOption {
	return func(m *Model) {
		m.log = log
	}
}

// WithMouse enables mouse gestures.
func WithMouse(enabled bool) ModelOption {
	return func(m *Model) {
		m.mouse = enabled
	}
}

// WithClock overrides the clock used for status expiry.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model for b.
func New(b *board.Board, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	m := Model{
		board:   b,
		config:  cfg,
		log:     logx.Nop(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		overlay: NewOverlayModel(),
		focus:   FocusStaging,
		mouse:   cfg.UI.Mouse,
		now:     time.Now,
	}
	m.applyTheme(t)
	for _, opt := range opts {
		opt(&m)
	}
	m.layout = buildLayout(b.Grid(), 0, 0, 0, 0)
	return m
}

// applyTheme swaps the theme and every style derived from it.
func (m *Model) applyTheme(t *theme.Theme) {
	m.theme = t
	m.styles = NewStyles(t)
	m.help.Styles.ShortKey = m.styles.HelpStyle.Bold(true)
	m.help.Styles.ShortDesc = m.styles.HelpStyle
	m.help.Styles.ShortSeparator = m.styles.HelpStyle
	m.help.Styles.FullKey = m.styles.OverlayTitleStyle
	m.help.Styles.FullDesc = m.styles.OverlayTextStyle
	m.help.Styles.FullSeparator = m.styles.OverlayMutedStyle
	m.overlay.SetBackground(m.styles.colorOverlay)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// RunOptions controls a TUI session.
type RunOptions struct {
	Mouse      bool
	ConfigPath string // watched for theme changes when set
	Log        logx.Logger
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, b *board.Board, cfg *config.Config, opts RunOptions) error {
	m := New(b, cfg, WithLogger(opts.Log), WithMouse(opts.Mouse))

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	if opts.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := commands.WatchConfig(watchCtx, opts.ConfigPath, p.Send); err != nil {
				opts.Log.Warn("config watch stopped", logx.Err(err), logx.String("path", opts.ConfigPath))
			}
		}()
	}

	opts.Log.Info("tui started", logx.Bool("mouse", opts.Mouse), logx.String("theme", m.theme.Name))
	_, err := p.Run()
	opts.Log.Info("tui stopped")
	return err
}

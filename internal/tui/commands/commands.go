// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/config"
)

// StatusDuration is how long a status message stays visible.
const StatusDuration = 3 * time.Second

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard copies text and reports the result as a status message.
func CopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: "Copied " + what + " to clipboard"}
	}
}

// WatchConfig forwards config reloads for path to send until ctx is done.
// send is usually (*tea.Program).Send.
func WatchConfig(ctx context.Context, path string, send func(tea.Msg)) error {
	return config.Watch(ctx, path, func(cfg *config.Config, err error) {
		send(ConfigReloadedMsg{Config: cfg, Err: err})
	})
}

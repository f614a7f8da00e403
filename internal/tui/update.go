package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/tui/commands"
	"github.com/javiermolinar/skema/internal/tui/theme"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout = buildLayout(m.board.Grid(), m.width, m.height, m.listOffset, m.gridOffset)
		m.scrollList()
		m.scrollGrid()
		return m, nil

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ErrMsg:
		m.log.Error("command failed", logx.Err(msg.Err))
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case commands.ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}

	return m, nil
}

// handleConfigReload applies a changed theme. The grid and policy are fixed
// for the session, so every other setting waits for a restart.
func (m Model) handleConfigReload(msg commands.ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("config reload failed", logx.Err(msg.Err))
		return m, m.setStatus(fmt.Sprintf("Config reload failed: %v", msg.Err), true)
	}
	if msg.Config == nil || msg.Config.UI.Theme == m.config.UI.Theme {
		return m, nil
	}

	t, err := theme.Load(msg.Config.UI.Theme)
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.config.UI.Theme = msg.Config.UI.Theme
	m.applyTheme(t)
	m.log.Info("theme reloaded", logx.String("theme", t.Name))
	return m, m.setStatus("Theme: "+t.Name, false)
}

// setStatus shows msg in the status line and schedules its removal.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = m.now().Add(commands.StatusDuration)
	return commands.ClearStatusAfter(commands.StatusDuration)
}

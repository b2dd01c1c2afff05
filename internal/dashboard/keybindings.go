package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/healthdash/internal/route"
)

// SortOrder defines how hosts are sorted on the overview.
type SortOrder int

const (
	SortByBackend SortOrder = iota
	SortByName
	SortByUptime
	SortByFailing
)

// String returns a human-readable label for the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByBackend:
		return "backend"
	case SortByName:
		return "name"
	case SortByUptime:
		return "uptime"
	case SortByFailing:
		return "failing"
	default:
		return "backend"
	}
}

// Next cycles to the next sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % 4)
}

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyRefresh     = "r"
	KeyCycleSort   = "s"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyOpen        = "enter"
	KeyBack        = "esc"
	KeyPicker      = "h"
	KeyGoto        = "g"
	KeyToggleHelp  = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyQuitAlt {
		return true, m.quit()
	}

	// Overlays capture input first
	if m.gotoOpen {
		return true, m.handleGotoKey(msg)
	}
	if m.pickerOpen {
		return true, m.handlePickerKey(msg)
	}

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyBack {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit:
		return true, m.quit()
	case KeyRefresh:
		return true, m.refresh()
	}

	// Nothing but quit and retry until a fleet snapshot exists
	if m.phase != PhaseReady {
		return false, nil
	}

	switch key {
	case KeyPicker:
		m.pickerOpen = true
		return true, nil

	case KeyGoto:
		m.gotoOpen = true
		m.gotoInput.SetValue("")
		return true, m.gotoInput.Focus()

	case KeyBack:
		return true, m.navigate(route.Overview{})
	}

	if _, ok := m.route.(route.HostDetail); ok {
		// Remaining keys scroll the detail viewport
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return true, cmd
	}

	if _, ok := m.route.(route.Overview); !ok {
		return false, nil
	}

	switch key {
	case KeyCycleSort:
		m.sortOrder = m.sortOrder.Next()
		m.sortRows()
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
		return true, nil

	case KeySelectFirst:
		m.selected = 0
		return true, nil

	case KeySelectLast:
		if len(m.rows) > 0 {
			m.selected = len(m.rows) - 1
		}
		return true, nil

	case KeyOpen:
		if id := m.SelectedHost(); id != "" {
			return true, m.navigate(route.HostDetail{HostID: id})
		}
		return true, nil
	}

	return false, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case KeyBack:
		m.gotoOpen = false
		m.gotoInput.Blur()
		return nil
	case KeyOpen:
		path := strings.TrimSpace(m.gotoInput.Value())
		m.gotoOpen = false
		m.gotoInput.Blur()
		if path == "" {
			return nil
		}
		return m.navigate(route.Parse(path))
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	filtering := m.picker.FilterState() == list.Filtering

	switch msg.String() {
	case KeyBack:
		if !filtering {
			m.pickerOpen = false
			return nil
		}
	case KeyOpen:
		if !filtering {
			item, ok := m.picker.SelectedItem().(hostItem)
			if !ok {
				return nil
			}
			m.pickerOpen = false
			return m.navigate(route.HostDetail{HostID: item.host.ID})
		}
	case KeyQuit:
		if !filtering {
			m.pickerOpen = false
			return nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

// Package tui is the terminal front end of tagpick: a multi-select
// autocomplete driven by a multiselect.Controller.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ruminaider/tagpick/internal/multiselect"
)

// Result is the outcome of a picker session.
type Result struct {
	Submitted bool
	Value     string   // serialized selection
	Keys      []string // selected keys in selection order
}

// ModelOptions configures the root model.
type ModelOptions struct {
	Options
	MaxWidth int // 0 means the terminal width
}

// Model is the root bubbletea model.
type Model struct {
	ctrl     *multiselect.Controller
	picker   MultiSelect
	status   StatusBar
	overlay  Overlay
	maxWidth int
	maxRows  int
	width    int
	height   int
	layout   LayoutHint
	result   Result
	quitting bool
	logger   *zap.Logger
}

// NewModel builds the root model around ctrl.
func NewModel(ctrl *multiselect.Controller, opts ModelOptions) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	picker := NewMultiSelect(ctrl, opts.Options)
	m := Model{
		ctrl:     ctrl,
		picker:   picker,
		status:   NewStatusBar(),
		maxWidth: opts.MaxWidth,
		maxRows:  picker.layout.ListRows,
		layout:   picker.layout,
		logger:   opts.Logger,
	}
	m.status.SetWidth(m.layout.Width)
	m.syncStatusBar()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the session outcome. It is zero until the program quits.
func (m Model) Result() Result {
	return m.result
}

// Layout returns the current layout hint.
func (m Model) Layout() LayoutHint {
	return m.layout
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout = NewLayoutHint(msg.Width, msg.Height, m.maxWidth, m.maxRows)
		m.picker.SetLayout(m.layout)
		m.status.SetWidth(m.layout.Width)
		return m, nil

	case SubmitMsg:
		return m.finish(true)

	case CancelMsg:
		if n := len(m.ctrl.SelectedKeys()); n > 0 {
			m.overlay = NewConfirmOverlay("Discard selection?",
				fmt.Sprintf("%d selected %s will be discarded.", n, plural(n, "item", "items")))
			return m, nil
		}
		return m.finish(false)

	case OverlayCloseMsg:
		if msg.Confirmed {
			return m.finish(false)
		}
		return m, nil

	case ItemAddedMsg:
		m.logger.Debug("item added", zap.String("key", msg.Key), zap.String("value", m.ctrl.Value()))
		return m, nil

	case ItemRemovedMsg:
		m.logger.Debug("item removed", zap.String("key", msg.Key), zap.String("value", m.ctrl.Value()))
		return m, nil

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.status.SetNotice("reload failed: " + msg.Err.Error())
		} else {
			m.status.SetNotice("")
		}

	case tea.KeyMsg:
		if m.overlay.Active() {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c":
			return m.finish(false)
		case "ctrl+s":
			return m.finish(true)
		}

	case tea.MouseMsg:
		if m.overlay.Active() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	m.syncStatusBar()
	return m, cmd
}

func (m Model) finish(submitted bool) (tea.Model, tea.Cmd) {
	m.quitting = true
	m.overlay = Overlay{}
	if submitted {
		m.result = Result{
			Submitted: true,
			Value:     m.ctrl.Value(),
			Keys:      m.ctrl.SelectedKeys(),
		}
		m.logger.Info("selection submitted", zap.Int("count", len(m.result.Keys)))
	} else {
		m.result = Result{}
		m.logger.Info("selection cancelled")
	}
	return m, tea.Quit
}

func (m *Model) syncStatusBar() {
	m.status.Update(len(m.ctrl.SelectedKeys()), m.ctrl.Value())
}

// View renders the picker, the status bar and any overlay.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	frame := lipgloss.JoinVertical(lipgloss.Left, m.picker.View(), m.status.View())
	if !m.overlay.Active() {
		return frame
	}
	height := max(m.height, strings.Count(frame, "\n")+1)
	width := max(m.width, m.layout.Width)
	return Composite(frame, m.overlay.View(), width, height)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

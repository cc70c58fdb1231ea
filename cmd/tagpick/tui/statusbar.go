package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with the selection count, the submitted
// value and keyboard shortcuts.
type StatusBar struct {
	selected int
	value    string
	notice   string
	width    int
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the selection count and serialized value.
func (s *StatusBar) Update(selected int, value string) {
	s.selected = selected
	s.value = value
}

// SetNotice shows a transient message in place of the value. An empty
// notice clears it.
func (s *StatusBar) SetNotice(notice string) {
	s.notice = notice
}

// View renders the status bar.
func (s StatusBar) View() string {
	shortcuts := []string{
		StatusBarKeyStyle.Render("Enter") + ": add",
		StatusBarKeyStyle.Render("Ctrl+S") + ": submit",
		StatusBarKeyStyle.Render("Esc") + ": cancel",
	}
	rightPart := strings.Join(shortcuts, " · ")

	count := CountStyle.Render(fmt.Sprintf("%d selected", s.selected))
	detail := s.value
	if s.notice != "" {
		detail = s.notice
	}

	availableWidth := s.width - 2 // account for StatusBarStyle padding
	leftBudget := availableWidth - ansi.StringWidth(rightPart) - 1
	leftPart := count
	if detail != "" {
		leftPart = count + " · " + detail
	}
	if leftBudget > 0 && ansi.StringWidth(leftPart) > leftBudget {
		leftPart = ansi.Truncate(leftPart, leftBudget, "…")
	}

	gap := availableWidth - ansi.StringWidth(leftPart) - ansi.StringWidth(rightPart)
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart
	return StatusBarStyle.Width(s.width).Render(content)
}

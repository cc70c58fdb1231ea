package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Overlay renders a centered confirmation box on top of existing content.
type Overlay struct {
	title   string
	message string
	cursor  int // 0=Cancel, 1=OK
	active  bool
}

// NewConfirmOverlay creates a confirmation dialog with Cancel/OK buttons.
// The cursor starts on Cancel.
func NewConfirmOverlay(title, message string) Overlay {
	return Overlay{
		title:   title,
		message: message,
		active:  true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch key.String() {
	case "esc", "n":
		o.active = false
		return o, closeOverlay(false)
	case "y":
		o.active = false
		return o, closeOverlay(true)
	case "tab", "left", "right", "h", "l":
		o.cursor = 1 - o.cursor
	case "enter":
		o.active = false
		return o, closeOverlay(o.cursor == 1)
	}
	return o, nil
}

func closeOverlay(confirmed bool) tea.Cmd {
	return func() tea.Msg {
		return OverlayCloseMsg{Confirmed: confirmed}
	}
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	b.WriteString(o.message)
	b.WriteString("\n\n")
	b.WriteString(o.renderButtons("Cancel", "OK"))
	return OverlayStyle.Render(b.String())
}

// renderButtons draws two side-by-side buttons with the cursor on one.
func (o Overlay) renderButtons(cancel, ok string) string {
	var cancelBtn, okBtn string
	if o.cursor == 0 {
		cancelBtn = OverlayButtonActiveStyle.Render(cancel)
		okBtn = OverlayButtonInactiveStyle.Render(ok)
	} else {
		cancelBtn = OverlayButtonInactiveStyle.Render(cancel)
		okBtn = OverlayButtonActiveStyle.Render(ok)
	}
	return cancelBtn + "  " + okBtn
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)

		left := ansi.Cut(bgLine, 0, startCol)
		if pad := startCol - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}

		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.Cut(bgLine, end, bgWidth)
		}

		bgLines[row] = left + overlayLine + right
	}

	return strings.Join(bgLines[:totalHeight], "\n")
}

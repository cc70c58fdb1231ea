package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Tag row styles.
var (
	// TagStyle is used for selected items shown as tags.
	TagStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	// FocusedTagStyle is used for the tag under the cursor in tag focus.
	FocusedTagStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorRed).
			Bold(true).
			Padding(0, 1)
)

// Input and suggestion styles.
var (
	// PromptStyle is the text input prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// SuggestionStyle is used for non-highlighted suggestion rows.
	SuggestionStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)

	// HighlightStyle is used for the highlighted suggestion row.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Background(colorSurface1).
			Bold(true).
			PaddingLeft(2)

	// DimStyle is used for the empty tag row.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// EmptyStateStyle is used when no suggestion matches.
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Italic(true).
			PaddingLeft(2)

	// ScrollHintStyle is used for "more" indicators above and below the list.
	ScrollHintStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			PaddingLeft(2)

	// CountStyle is used for the selected count in the status bar.
	CountStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorSurface0).
			Bold(true)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for modal overlays.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// OverlayTitleStyle is used for the title text in overlays.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// OverlayButtonActiveStyle is used for the focused button in overlays.
	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue).
					Padding(0, 2)

	// OverlayButtonInactiveStyle is used for the unfocused button in overlays.
	OverlayButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorText).
					Background(colorSurface1).
					Padding(0, 2)
)

package tui

import "github.com/ruminaider/tagpick/internal/catalog"

// FocusZone identifies which part of the picker has keyboard focus.
type FocusZone int

const (
	FocusInput FocusZone = iota // Text input and suggestions
	FocusTags                   // Selected tags, for keyboard removal
)

// --- Inter-component messages ---

// ItemAddedMsg is emitted after a suggestion is committed.
type ItemAddedMsg struct{ Key string }

// ItemRemovedMsg is emitted after a tag is removed.
type ItemRemovedMsg struct{ Key string }

// CatalogReloadedMsg delivers a reloaded catalog from the file watcher.
type CatalogReloadedMsg struct {
	Catalog catalog.Catalog
	Err     error
}

// SubmitMsg requests that the picker finish with the current selection.
type SubmitMsg struct{}

// CancelMsg requests that the picker finish without a selection. The root
// model asks for confirmation when tags would be discarded.
type CancelMsg struct{}

// OverlayCloseMsg is emitted when the confirm overlay is dismissed.
type OverlayCloseMsg struct {
	Confirmed bool // true = OK, false = Cancel/Esc
}

// LayoutHint is derived from the terminal size and consumed by rendering
// only. It never affects selection state.
type LayoutHint struct {
	Width    int // content width
	ListRows int // suggestion rows that fit
}

// reservedRows is the tag row, the input row, two scroll hints and the
// status bar.
const reservedRows = 5

// NewLayoutHint fits the picker into a terminal of the given size. A
// positive maxWidth caps the content width; maxRows caps the list.
func NewLayoutHint(termWidth, termHeight, maxWidth, maxRows int) LayoutHint {
	w := termWidth
	if maxWidth > 0 && maxWidth < w {
		w = maxWidth
	}
	rows := termHeight - reservedRows
	if rows > maxRows {
		rows = maxRows
	}
	if rows < 1 {
		rows = 1
	}
	return LayoutHint{Width: w, ListRows: rows}
}

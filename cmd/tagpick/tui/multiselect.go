package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/ruminaider/tagpick/internal/multiselect"
)

// Row offsets of the picker parts, relative to its top line.
const (
	rowTags   = 0
	rowInput  = 1
	rowAbove  = 2 // "↑ more" hint
	rowList   = 3
	tagRemove = 3 // trailing cells of a tag that act as its × button
)

// Options configures a MultiSelect.
type Options struct {
	Placeholder string
	EmptyText   string // may contain one %s or %q verb for the typed text
	MaxRows     int
	Logger      *zap.Logger
}

// eventQueue collects controller notifications during one Update so they can
// be emitted as tea messages in order.
type eventQueue struct{ msgs []tea.Msg }

func (q *eventQueue) ItemAdded(key string)   { q.msgs = append(q.msgs, ItemAddedMsg{Key: key}) }
func (q *eventQueue) ItemRemoved(key string) { q.msgs = append(q.msgs, ItemRemovedMsg{Key: key}) }

func (q *eventQueue) drain() tea.Cmd {
	switch len(q.msgs) {
	case 0:
		return nil
	case 1:
		msg := q.msgs[0]
		q.msgs = nil
		return func() tea.Msg { return msg }
	}
	cmds := make([]tea.Cmd, len(q.msgs))
	for i, msg := range q.msgs {
		msg := msg
		cmds[i] = func() tea.Msg { return msg }
	}
	q.msgs = nil
	return tea.Sequence(cmds...)
}

// MultiSelect renders a selection controller as a tag row, a text input and
// a suggestion list, and turns keys and clicks into controller transitions.
// All selection state lives in the controller; the text input mirrors its
// query.
type MultiSelect struct {
	ctrl      *multiselect.Controller
	events    *eventQueue
	input     textinput.Model
	focus     FocusZone
	tagCursor int
	offset    int // scroll offset into the visible subset
	layout    LayoutHint
	emptyText string
	logger    *zap.Logger
}

// NewMultiSelect wraps ctrl. The component registers itself as a listener.
func NewMultiSelect(ctrl *multiselect.Controller, opts Options) MultiSelect {
	if opts.MaxRows < 1 {
		opts.MaxRows = 8
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	q := &eventQueue{}
	ctrl.AddListener(q)

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = PromptStyle
	ti.Placeholder = opts.Placeholder
	ti.Focus()

	m := MultiSelect{
		ctrl:      ctrl,
		events:    q,
		input:     ti,
		layout:    LayoutHint{Width: 60, ListRows: opts.MaxRows},
		emptyText: opts.EmptyText,
		logger:    opts.Logger,
	}
	m.SetLayout(m.layout)
	return m
}

// Controller returns the wrapped controller.
func (m MultiSelect) Controller() *multiselect.Controller {
	return m.ctrl
}

// Focus returns the focused zone.
func (m MultiSelect) Focus() FocusZone {
	return m.focus
}

// TagCursor returns the index of the focused tag in tag focus.
func (m MultiSelect) TagCursor() int {
	return m.tagCursor
}

// SetLayout applies a layout hint.
func (m *MultiSelect) SetLayout(h LayoutHint) {
	m.layout = h
	w := h.Width - ansi.StringWidth(m.input.Prompt) - 1
	if w < 10 {
		w = 10
	}
	m.input.Width = w
	m.clampScroll()
}

// Update handles key, mouse and catalog reload messages.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focus == FocusTags {
			m.updateTags(msg)
		} else {
			cmd = m.updateInput(msg)
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.logger.Warn("keeping previous catalog", zap.Error(msg.Err))
			break
		}
		m.ctrl.ReplaceItems(msg.Catalog.Items)
		m.logger.Info("catalog reloaded", zap.Int("items", len(msg.Catalog.Items)))
	default:
		m.input, cmd = m.input.Update(msg)
	}

	m.syncInput()
	m.clampTagCursor()
	m.clampScroll()
	return m, tea.Batch(cmd, m.events.drain())
}

func (m *MultiSelect) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "ctrl+p":
		m.ctrl.HighlightPrev()
		return nil
	case "down", "ctrl+n":
		m.ctrl.HighlightNext()
		return nil
	case "enter":
		return m.commit()
	case "backspace":
		if m.input.Value() == "" {
			m.ctrl.BackspaceWhileEmpty()
			return nil
		}
	case "left":
		if m.input.Value() == "" && len(m.ctrl.SelectedKeys()) > 0 {
			m.focusTags(len(m.ctrl.SelectedKeys()) - 1)
			return nil
		}
	case "esc":
		if m.ctrl.Phase() == multiselect.PhaseIdle {
			return func() tea.Msg { return CancelMsg{} }
		}
		m.ctrl.Blur()
		return nil
	case "tab":
		m.ctrl.Blur()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.ctrl.InputChange(v)
	}
	return cmd
}

// commit adds the highlighted suggestion. With no highlight it adds the
// first match while filtering, or submits when idle.
func (m *MultiSelect) commit() tea.Cmd {
	st := m.ctrl.State()
	switch {
	case st.Highlighted != "":
		if err := m.ctrl.CommitHighlighted(); err != nil {
			m.logger.Warn("rejected selection", zap.String("key", st.Highlighted), zap.Error(err))
		}
	case m.ctrl.Phase() == multiselect.PhaseIdle:
		return func() tea.Msg { return SubmitMsg{} }
	default:
		if visible := m.ctrl.Visible(); len(visible) > 0 {
			m.commitKey(visible[0].Key)
		}
	}
	return nil
}

func (m *MultiSelect) commitKey(key string) {
	if err := m.ctrl.Commit(key); err != nil {
		m.logger.Warn("rejected selection", zap.String("key", key), zap.Error(err))
	}
}

func (m *MultiSelect) updateTags(msg tea.KeyMsg) {
	selected := m.ctrl.Selected()
	switch msg.String() {
	case "left":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "right":
		if m.tagCursor >= len(selected)-1 {
			m.focusInput()
		} else {
			m.tagCursor++
		}
	case "backspace", "delete":
		if m.tagCursor < len(selected) {
			m.ctrl.Remove(selected[m.tagCursor].Key)
		}
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "esc", "tab", "down":
		m.focusInput()
	}
}

func (m *MultiSelect) updateMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.HighlightPrev()
		return
	case tea.MouseButtonWheelDown:
		m.ctrl.HighlightNext()
		return
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			m.click(msg.X, msg.Y)
		}
	}
}

func (m *MultiSelect) click(x, row int) {
	switch {
	case row == rowTags:
		for i, span := range tagSpans(m.ctrl.Selected()) {
			if x < span.start || x >= span.end {
				continue
			}
			if x >= span.end-tagRemove {
				m.ctrl.Remove(span.key)
			} else {
				m.focusTags(i)
			}
			return
		}
	case row == rowInput:
		m.focusInput()
	case row >= rowList && row < rowList+m.layout.ListRows:
		visible := m.ctrl.Visible()
		i := m.offset + row - rowList
		if i < len(visible) {
			m.commitKey(visible[i].Key)
			m.focusInput()
		}
	}
}

// focusTags moves focus to the tag row. The input loses focus, which the
// controller sees as a blur.
func (m *MultiSelect) focusTags(i int) {
	m.ctrl.Blur()
	m.input.Blur()
	m.focus = FocusTags
	m.tagCursor = i
}

func (m *MultiSelect) focusInput() {
	m.focus = FocusInput
	m.input.Focus()
}

// syncInput makes the text input show the controller's query.
func (m *MultiSelect) syncInput() {
	if q := m.ctrl.State().Query; m.input.Value() != q {
		m.input.SetValue(q)
	}
}

func (m *MultiSelect) clampTagCursor() {
	n := len(m.ctrl.SelectedKeys())
	if m.focus == FocusTags && n == 0 {
		m.focusInput()
	}
	if m.tagCursor >= n {
		m.tagCursor = n - 1
	}
	if m.tagCursor < 0 {
		m.tagCursor = 0
	}
}

func (m *MultiSelect) highlightIndex(visible []multiselect.Item) int {
	key := m.ctrl.State().Highlighted
	if key == "" {
		return -1
	}
	for i, it := range visible {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// clampScroll keeps the highlighted row inside the list viewport.
func (m *MultiSelect) clampScroll() {
	rows := m.layout.ListRows
	if rows <= 0 {
		return
	}
	visible := m.ctrl.Visible()
	if cur := m.highlightIndex(visible); cur >= 0 {
		if cur < m.offset {
			m.offset = cur
		}
		if cur >= m.offset+rows {
			m.offset = cur - rows + 1
		}
	}
	maxOffset := len(visible) - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

type tagSpan struct {
	key        string
	start, end int
}

// tagSpans returns the screen columns of every tag in the tag row. Each tag
// is " text × " and tags are separated by one space.
func tagSpans(items []multiselect.Item) []tagSpan {
	spans := make([]tagSpan, 0, len(items))
	x := 0
	for _, it := range items {
		w := ansi.StringWidth(it.Text) + 4
		spans = append(spans, tagSpan{key: it.Key, start: x, end: x + w})
		x += w + 1
	}
	return spans
}

// View renders the tag row, the input and a list area of fixed height.
func (m MultiSelect) View() string {
	lines := []string{m.viewTags(), m.input.View()}
	lines = append(lines, m.viewList()...)
	return strings.Join(lines, "\n")
}

func (m MultiSelect) viewTags() string {
	selected := m.ctrl.Selected()
	if len(selected) == 0 {
		return DimStyle.Render("No items selected")
	}
	parts := make([]string, len(selected))
	for i, it := range selected {
		style := TagStyle
		if m.focus == FocusTags && i == m.tagCursor {
			style = FocusedTagStyle
		}
		parts[i] = style.Render(it.Text + " ×")
	}
	return ansi.Truncate(strings.Join(parts, " "), m.layout.Width, "…")
}

// viewList returns exactly ListRows+2 lines: the "more" hints and the rows.
func (m MultiSelect) viewList() []string {
	rows := m.layout.ListRows
	out := make([]string, 0, rows+2)
	visible := m.ctrl.Visible()

	if m.offset > 0 {
		out = append(out, ScrollHintStyle.Render("↑ more"))
	} else {
		out = append(out, "")
	}

	if len(visible) == 0 {
		out = append(out, EmptyStateStyle.Render(m.emptyState()))
	}

	cur := m.highlightIndex(visible)
	end := m.offset + rows
	if end > len(visible) {
		end = len(visible)
	}
	for i := m.offset; i < end; i++ {
		text := ansi.Truncate(visible[i].Text, m.layout.Width-2, "…")
		if i == cur {
			out = append(out, HighlightStyle.Width(m.layout.Width).Render(text))
		} else {
			out = append(out, SuggestionStyle.Render(text))
		}
	}

	for len(out) < rows+1 {
		out = append(out, "")
	}
	if end < len(visible) {
		out = append(out, ScrollHintStyle.Render("↓ more"))
	} else {
		out = append(out, "")
	}
	return out
}

func (m MultiSelect) emptyState() string {
	query := m.ctrl.State().Query
	if query == "" {
		return "No more items"
	}
	if m.emptyText == "" {
		return "No results."
	}
	return strings.NewReplacer("%s", query, "%q", strconv.Quote(query)).Replace(m.emptyText)
}

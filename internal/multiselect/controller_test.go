package multiselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects notifications in order as "+key" / "-key".
type recorder struct {
	events []string
}

func (r *recorder) ItemAdded(key string)   { r.events = append(r.events, "+"+key) }
func (r *recorder) ItemRemoved(key string) { r.events = append(r.events, "-"+key) }

func newTestController(opts ...Option) (*Controller, *recorder) {
	rec := &recorder{}
	opts = append(opts, WithListener(rec))
	return NewController(fruit(), opts...), rec
}

func TestController_StartsIdle(t *testing.T) {
	c, _ := newTestController()
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, InteractionState{}, c.State())
	assert.Len(t, c.Visible(), 3)
	assert.Equal(t, "", c.Value())
}

func TestController_InputChangeFilters(t *testing.T) {
	c, _ := newTestController()
	c.InputChange("ap")
	assert.Equal(t, PhaseFiltering, c.Phase())
	assert.Equal(t, "ap", c.State().Query)
	assert.Equal(t, []string{"1", "2"}, keysOf(c.Visible()))
}

func TestController_ClearingInputClearsHighlight(t *testing.T) {
	c, _ := newTestController()
	c.InputChange("ap")
	require.NoError(t, c.Highlight("2"))

	c.InputChange("")
	assert.Equal(t, InteractionState{}, c.State())
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestController_InputChangeKeepsVisibleHighlight(t *testing.T) {
	c, _ := newTestController()
	c.InputChange("a")
	require.NoError(t, c.Highlight("2"))

	c.InputChange("apr")
	assert.Equal(t, "2", c.State().Highlighted)

	c.InputChange("ban")
	assert.Equal(t, "", c.State().Highlighted, "highlight must stay inside the visible subset")
}

func TestController_CommitAddsAndResets(t *testing.T) {
	c, rec := newTestController()
	c.InputChange("apr")
	require.NoError(t, c.Highlight("2"))

	require.NoError(t, c.Commit("2"))
	assert.Equal(t, []string{"2"}, c.SelectedKeys())
	assert.Equal(t, InteractionState{}, c.State())
	assert.Equal(t, []string{"1", "3"}, keysOf(c.Visible()), "query cleared, committed key excluded")
	assert.Equal(t, "2", c.Value())
	assert.Equal(t, []string{"+2"}, rec.events)
}

func TestController_FilteringExcludesSelected(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.Commit("1"))

	c.InputChange("Ap")
	assert.Equal(t, []Item{{Key: "2", Text: "Apricot"}}, c.Visible())
}

func TestController_CommitOutsideVisibleFails(t *testing.T) {
	c, rec := newTestController()
	c.InputChange("apr")
	require.Equal(t, []string{"2"}, keysOf(c.Visible()))

	err := c.Commit("5")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Empty(t, c.SelectedKeys())
	assert.Empty(t, rec.events)
	assert.Equal(t, "apr", c.State().Query, "state untouched")

	err = c.Commit("1")
	assert.ErrorIs(t, err, ErrInvalidSelection, "filtered out by the query")
	assert.Empty(t, c.SelectedKeys())
}

func TestController_CommitAlreadySelectedFails(t *testing.T) {
	c, rec := newTestController()
	require.NoError(t, c.Commit("1"))

	err := c.Commit("1")
	assert.ErrorIs(t, err, ErrInvalidSelection, "selected keys are not visible")
	assert.Equal(t, []string{"1"}, c.SelectedKeys())
	assert.Equal(t, []string{"+1"}, rec.events)
}

func TestController_CommitDuplicateInControlledListIsNoop(t *testing.T) {
	list := NewSelectedList()
	c, rec := newTestController(WithSelectedList(list))
	c.InputChange("ban")

	// The caller's list gained the key between gestures; the pool has not
	// been told yet, so the key is still visible.
	require.NoError(t, list.Append(Item{Key: "3", Text: "Banana"}))
	require.True(t, c.available.Contains("3"))

	require.NoError(t, c.Commit("3"))
	assert.Equal(t, []string{"3"}, list.Keys())
	assert.Empty(t, rec.events)
	assert.Equal(t, "ban", c.State().Query, "no-op leaves state alone")
}

func TestController_CommitHighlighted(t *testing.T) {
	c, rec := newTestController()
	c.InputChange("a")
	c.HighlightNext()
	c.HighlightNext()
	require.Equal(t, "2", c.State().Highlighted)

	require.NoError(t, c.CommitHighlighted())
	assert.Equal(t, []string{"2"}, c.SelectedKeys())
	assert.Equal(t, []string{"+2"}, rec.events)
}

func TestController_CommitHighlightedWithoutHighlight(t *testing.T) {
	c, rec := newTestController()
	c.InputChange("a")
	require.NoError(t, c.CommitHighlighted())
	assert.Empty(t, c.SelectedKeys())
	assert.Empty(t, rec.events)
}

func TestController_RemoveIsIdempotent(t *testing.T) {
	c, rec := newTestController()
	require.NoError(t, c.Commit("1"))
	require.NoError(t, c.Commit("3"))

	assert.True(t, c.Remove("1"))
	afterFirst := c.SelectedKeys()
	stateFirst := c.State()

	assert.False(t, c.Remove("1"))
	assert.Equal(t, afterFirst, c.SelectedKeys())
	assert.Equal(t, stateFirst, c.State())
	assert.Equal(t, []string{"+1", "+3", "-1"}, rec.events)
	assert.Equal(t, "3", c.Value())
}

func TestController_RemoveReturnsItemToPool(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.Commit("1"))
	c.InputChange("ap")
	require.Equal(t, []string{"2"}, keysOf(c.Visible()))

	require.True(t, c.Remove("1"))
	assert.Equal(t, InteractionState{}, c.State())
	assert.Equal(t, []string{"1", "2", "3"}, keysOf(c.Visible()))
}

func TestController_BackspaceRemovesLast(t *testing.T) {
	c, rec := newTestController()
	require.NoError(t, c.Commit("1"))
	require.NoError(t, c.Commit("2"))
	rec.events = nil

	it, ok := c.BackspaceWhileEmpty()
	require.True(t, ok)
	assert.Equal(t, "2", it.Key)
	assert.Equal(t, []string{"1"}, c.SelectedKeys())
	assert.Equal(t, []string{"-2"}, rec.events)
	assert.Equal(t, "1", c.Value())
}

func TestController_BackspaceOnEmptyListIsNoop(t *testing.T) {
	c, rec := newTestController()
	_, ok := c.BackspaceWhileEmpty()
	assert.False(t, ok)
	assert.Empty(t, c.SelectedKeys())
	assert.Empty(t, rec.events)
}

func TestController_BackspaceIgnoredWhileTyping(t *testing.T) {
	c, rec := newTestController()
	require.NoError(t, c.Commit("1"))
	rec.events = nil
	c.InputChange("b")

	_, ok := c.BackspaceWhileEmpty()
	assert.False(t, ok)
	assert.Equal(t, []string{"1"}, c.SelectedKeys())
	assert.Empty(t, rec.events)
}

func TestController_BlurDiscardsUnmatchedText(t *testing.T) {
	c, rec := newTestController()
	require.NoError(t, c.Commit("3"))
	rec.events = nil
	c.InputChange("xyz")
	require.Empty(t, c.Visible())

	c.Blur()
	assert.Equal(t, InteractionState{}, c.State())
	assert.Equal(t, []string{"3"}, c.SelectedKeys())
	assert.Equal(t, []string{"1", "2"}, keysOf(c.Visible()))
	assert.Empty(t, rec.events)
}

func TestController_BlurDiscardsHighlight(t *testing.T) {
	c, rec := newTestController()
	c.InputChange("apr")
	require.NoError(t, c.Highlight("2"))

	c.Blur()
	assert.Empty(t, c.SelectedKeys())
	assert.Empty(t, rec.events)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestController_HighlightNavigationClamps(t *testing.T) {
	c, _ := newTestController()

	c.HighlightPrev()
	assert.Equal(t, "3", c.State().Highlighted, "prev from none starts at the last")

	c.ClearHighlight()
	c.HighlightNext()
	assert.Equal(t, "1", c.State().Highlighted)
	c.HighlightPrev()
	assert.Equal(t, "1", c.State().Highlighted)
	c.HighlightNext()
	c.HighlightNext()
	c.HighlightNext()
	assert.Equal(t, "3", c.State().Highlighted)
}

func TestController_HighlightNothingVisible(t *testing.T) {
	c, _ := newTestController()
	c.InputChange("zzz")
	c.HighlightNext()
	assert.Equal(t, "", c.State().Highlighted)
}

func TestController_HighlightOutsideVisible(t *testing.T) {
	c, _ := newTestController()
	c.InputChange("ban")
	assert.ErrorIs(t, c.Highlight("1"), ErrInvalidSelection)
	assert.Equal(t, "", c.State().Highlighted)
}

func TestController_ReplaceItems(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.Commit("1"))
	c.InputChange("a")
	require.NoError(t, c.Highlight("3"))

	c.ReplaceItems([]Item{
		{Key: "1", Text: "Apple"},
		{Key: "4", Text: "Avocado"},
	})
	assert.Equal(t, []string{"4"}, keysOf(c.Visible()))
	assert.Equal(t, "", c.State().Highlighted, "stale highlight dropped")
	assert.Equal(t, "a", c.State().Query)
	assert.Equal(t, []string{"1"}, c.SelectedKeys())
}

func TestController_ReplaceItemsKeepsMissingSelections(t *testing.T) {
	c, _ := newTestController()
	require.NoError(t, c.Commit("2"))
	c.ReplaceItems([]Item{{Key: "9", Text: "Kiwi"}})
	assert.Equal(t, []string{"2"}, c.SelectedKeys())
	assert.Equal(t, "2", c.Value())
	assert.True(t, c.Remove("2"))
}

func TestController_ControlledListPreseeded(t *testing.T) {
	list := NewSelectedList(Item{Key: "2", Text: "Apricot"})
	c, _ := newTestController(WithSelectedList(list))

	assert.Equal(t, "2", c.Value())
	assert.Equal(t, []string{"1", "3"}, keysOf(c.Visible()))

	require.NoError(t, c.Commit("3"))
	assert.Equal(t, []string{"2", "3"}, list.Keys(), "controller mutates the caller's list")
}

func TestController_WithPredicate(t *testing.T) {
	exact := func(text, query string) bool { return query == "" || text == query }
	c, _ := newTestController(WithPredicate(exact))
	c.InputChange("Apple")
	assert.Equal(t, []string{"1"}, keysOf(c.Visible()))
	c.InputChange("App")
	assert.Empty(t, c.Visible())
}

func TestController_ListenerSeesConsistentState(t *testing.T) {
	c := NewController(fruit())
	var seenValue string
	var seenQuery string
	var seenVisible []string
	c.AddListener(ListenerFuncs{
		Added: func(key string) {
			seenValue = c.Value()
			seenQuery = c.State().Query
			seenVisible = keysOf(c.Visible())
		},
	})
	c.InputChange("ban")
	require.NoError(t, c.Commit("3"))

	assert.Equal(t, "3", seenValue)
	assert.Equal(t, "", seenQuery)
	assert.Equal(t, []string{"1", "2"}, seenVisible)
}

func TestListenerFuncs_NilFieldsAreSkipped(t *testing.T) {
	var removed []string
	l := ListenerFuncs{Removed: func(key string) { removed = append(removed, key) }}
	assert.NotPanics(t, func() { l.ItemAdded("a") })
	l.ItemRemoved("b")
	assert.Equal(t, []string{"b"}, removed)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "filtering", PhaseFiltering.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

package multiselect

import (
	"errors"
	"fmt"
)

// Listener is notified after a gesture changed the selected list. Calls
// happen synchronously, at most once per gesture, once the controller is
// consistent again.
type Listener interface {
	ItemAdded(key string)
	ItemRemoved(key string)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Added   func(key string)
	Removed func(key string)
}

func (f ListenerFuncs) ItemAdded(key string) {
	if f.Added != nil {
		f.Added(key)
	}
}

func (f ListenerFuncs) ItemRemoved(key string) {
	if f.Removed != nil {
		f.Removed(key)
	}
}

// InteractionState is the transient part of the field: the typed text and
// the highlighted suggestion. An empty Highlighted means nothing is
// highlighted.
type InteractionState struct {
	Query       string
	Highlighted string
}

// Phase describes what the field is doing.
type Phase int

const (
	PhaseIdle      Phase = iota // no query, no highlight
	PhaseFiltering              // query typed or a suggestion highlighted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFiltering:
		return "filtering"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithPredicate sets the filter predicate. The default is
// BaseContains(language.Und).
func WithPredicate(p Predicate) Option {
	return func(c *Controller) {
		if p != nil {
			c.predicate = p
		}
	}
}

// WithSelectedList makes the controller operate on a caller-owned list. The
// caller must not mutate it directly afterwards.
func WithSelectedList(l *SelectedList) Option {
	return func(c *Controller) {
		if l != nil {
			c.selected = l
		}
	}
}

// WithListener registers a listener at construction.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}

// Controller owns the canonical state of a multi-select field and maps each
// gesture to one transition. Within a transition the selected list is
// mutated first, then the pool is recomputed, then the serialized value, and
// only then are listeners notified.
type Controller struct {
	predicate Predicate
	available *AvailablePool
	selected  *SelectedList
	state     InteractionState
	value     string
	listeners []Listener
}

// NewController creates a controller over the candidate items.
func NewController(items []Item, opts ...Option) *Controller {
	c := &Controller{predicate: defaultPredicate}
	for _, opt := range opts {
		opt(c)
	}
	if c.selected == nil {
		c.selected = NewSelectedList()
	}
	c.available = NewAvailablePool(items, c.predicate)
	c.available.Exclude(c.selected.Keys())
	c.value = Serialize(c.selected)
	return c
}

// AddListener registers l for add/remove notifications.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// InputChange handles a change of the typed text. Clearing the text also
// clears the highlight so a stale suggestion cannot be committed.
func (c *Controller) InputChange(text string) {
	c.state.Query = text
	if text == "" {
		c.state.Highlighted = ""
	}
	c.available.SetQuery(text)
	c.syncHighlight()
}

// Commit promotes key from the visible subset into the selected list.
// A key outside the visible subset yields ErrInvalidSelection and changes
// nothing. Committing an already selected key is a silent no-op.
func (c *Controller) Commit(key string) error {
	if key == "" || !c.available.Contains(key) {
		return fmt.Errorf("commit %q: %w", key, ErrInvalidSelection)
	}
	item, err := c.available.Lookup(key)
	if err != nil {
		return fmt.Errorf("commit %q: %w", key, ErrInvalidSelection)
	}
	if err := c.selected.Append(item); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil
		}
		return err
	}
	c.settle()
	for _, l := range c.listeners {
		l.ItemAdded(key)
	}
	return nil
}

// CommitHighlighted commits the highlighted suggestion. Without a highlight
// it does nothing.
func (c *Controller) CommitHighlighted() error {
	if c.state.Highlighted == "" {
		return nil
	}
	return c.Commit(c.state.Highlighted)
}

// Remove drops key from the selected list. It reports whether anything was
// removed; removing an absent key is a no-op.
func (c *Controller) Remove(key string) bool {
	if err := c.selected.RemoveByKey(key); err != nil {
		return false
	}
	c.settle()
	for _, l := range c.listeners {
		l.ItemRemoved(key)
	}
	return true
}

// BackspaceWhileEmpty removes the most recently selected item. It only acts
// while the query is empty and reports the removed item.
func (c *Controller) BackspaceWhileEmpty() (Item, bool) {
	if c.state.Query != "" {
		return Item{}, false
	}
	item, ok := c.selected.RemoveLast()
	if !ok {
		return Item{}, false
	}
	c.settle()
	for _, l := range c.listeners {
		l.ItemRemoved(item.Key)
	}
	return item, true
}

// Blur resets the field to idle. Typed text and any highlighted suggestion
// are discarded, never committed.
func (c *Controller) Blur() {
	c.state = InteractionState{}
	c.available.SetQuery("")
}

// Highlight marks key as the pending suggestion. The key must be visible.
func (c *Controller) Highlight(key string) error {
	if !c.available.Contains(key) {
		return fmt.Errorf("highlight %q: %w", key, ErrInvalidSelection)
	}
	c.state.Highlighted = key
	return nil
}

// HighlightNext moves the highlight one suggestion down, starting at the
// first one. It stops at the last suggestion.
func (c *Controller) HighlightNext() {
	c.moveHighlight(1)
}

// HighlightPrev moves the highlight one suggestion up, starting at the last
// one. It stops at the first suggestion.
func (c *Controller) HighlightPrev() {
	c.moveHighlight(-1)
}

// ClearHighlight drops the pending suggestion without touching the query.
func (c *Controller) ClearHighlight() {
	c.state.Highlighted = ""
}

// ReplaceItems swaps the candidate set and recomputes the visible subset.
// Selected items stay selected even when the new set no longer holds them.
func (c *Controller) ReplaceItems(items []Item) {
	c.available.SetItems(items)
	c.available.Exclude(c.selected.Keys())
	c.syncHighlight()
}

// State returns the current interaction state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Phase reports whether the field is idle or filtering.
func (c *Controller) Phase() Phase {
	if c.state.Query == "" && c.state.Highlighted == "" {
		return PhaseIdle
	}
	return PhaseFiltering
}

// Visible returns the suggestions currently offered.
func (c *Controller) Visible() []Item {
	return c.available.Visible()
}

// Selected returns the selected items in order.
func (c *Controller) Selected() []Item {
	return c.selected.Items()
}

// SelectedKeys returns the selected keys in order.
func (c *Controller) SelectedKeys() []string {
	return c.selected.Keys()
}

// Value returns the serialized selection, current as of the last gesture.
func (c *Controller) Value() string {
	return c.value
}

// Lookup resolves key against the candidate set.
func (c *Controller) Lookup(key string) (Item, error) {
	return c.available.Lookup(key)
}

// settle runs after every selected list mutation: reset the interaction
// state, then recompute the pool against the new keys, then the value.
func (c *Controller) settle() {
	c.state = InteractionState{}
	c.available.Exclude(c.selected.Keys())
	c.available.SetQuery("")
	c.value = Serialize(c.selected)
}

func (c *Controller) moveHighlight(dir int) {
	visible := c.available.visible
	if len(visible) == 0 {
		c.state.Highlighted = ""
		return
	}
	i := c.available.indexOf(c.state.Highlighted)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(visible) - 1
	default:
		i += dir
		if i < 0 {
			i = 0
		}
		if i >= len(visible) {
			i = len(visible) - 1
		}
	}
	c.state.Highlighted = visible[i].Key
}

func (c *Controller) syncHighlight() {
	if c.state.Highlighted != "" && !c.available.Contains(c.state.Highlighted) {
		c.state.Highlighted = ""
	}
}

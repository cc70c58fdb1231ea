package multiselect

import "fmt"

// AvailablePool holds the full candidate set and derives the visible subset:
// every item whose key is not excluded and whose text matches the query, in
// candidate order. The visible subset is only ever recomputed from its
// inputs, never edited directly.
type AvailablePool struct {
	items     []Item
	predicate Predicate
	query     string
	excluded  map[string]struct{}
	visible   []Item
}

// NewAvailablePool creates a pool over items. A nil predicate falls back to
// BaseContains(language.Und).
func NewAvailablePool(items []Item, predicate Predicate) *AvailablePool {
	if predicate == nil {
		predicate = defaultPredicate
	}
	p := &AvailablePool{
		items:     items,
		predicate: predicate,
		excluded:  make(map[string]struct{}),
	}
	p.recompute()
	return p
}

// SetQuery replaces the query and recomputes the visible subset.
func (p *AvailablePool) SetQuery(text string) {
	p.query = text
	p.recompute()
}

// Exclude replaces the set of keys hidden from the visible subset, usually
// the keys of the selected list, and recomputes.
func (p *AvailablePool) Exclude(keys []string) {
	excluded := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		excluded[k] = struct{}{}
	}
	p.excluded = excluded
	p.recompute()
}

// SetItems swaps in a new candidate set. The visible subset is left as is
// until the next SetQuery or Exclude call.
func (p *AvailablePool) SetItems(items []Item) {
	p.items = items
}

// Lookup resolves key against the raw candidate set, ignoring the query and
// the exclusions.
func (p *AvailablePool) Lookup(key string) (Item, error) {
	for _, it := range p.items {
		if it.Key == key {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("lookup %q: %w", key, ErrNotFound)
}

// Visible returns a copy of the current visible subset.
func (p *AvailablePool) Visible() []Item {
	out := make([]Item, len(p.visible))
	copy(out, p.visible)
	return out
}

// Contains reports whether key is in the current visible subset.
func (p *AvailablePool) Contains(key string) bool {
	return p.indexOf(key) >= 0
}

// Query returns the active query.
func (p *AvailablePool) Query() string {
	return p.query
}

// Items returns the raw candidate set.
func (p *AvailablePool) Items() []Item {
	return p.items
}

func (p *AvailablePool) indexOf(key string) int {
	for i, it := range p.visible {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func (p *AvailablePool) recompute() {
	visible := make([]Item, 0, len(p.items))
	for _, it := range p.items {
		if _, skip := p.excluded[it.Key]; skip {
			continue
		}
		if p.predicate(it.Text, p.query) {
			visible = append(visible, it)
		}
	}
	p.visible = visible
}

package multiselect

import "fmt"

// SelectedList is an insertion-ordered list of items with unique keys.
// Removing an item shifts the ones after it; nothing is ever reordered.
type SelectedList struct {
	items []Item
	index map[string]struct{}
}

// NewSelectedList creates a list pre-seeded with items. Later duplicates of a
// key are dropped.
func NewSelectedList(items ...Item) *SelectedList {
	l := &SelectedList{
		items: make([]Item, 0, len(items)),
		index: make(map[string]struct{}, len(items)),
	}
	for _, it := range items {
		_ = l.Append(it)
	}
	return l
}

// Append adds item at the end.
func (l *SelectedList) Append(item Item) error {
	if l.Has(item.Key) {
		return fmt.Errorf("append %q: %w", item.Key, ErrDuplicateKey)
	}
	l.index[item.Key] = struct{}{}
	l.items = append(l.items, item)
	return nil
}

// RemoveByKey removes the item with the given key.
func (l *SelectedList) RemoveByKey(key string) error {
	if !l.Has(key) {
		return fmt.Errorf("remove %q: %w", key, ErrNotFound)
	}
	delete(l.index, key)
	for i, it := range l.items {
		if it.Key == key {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveLast removes and returns the most recently appended item. It reports
// false on an empty list.
func (l *SelectedList) RemoveLast() (Item, bool) {
	if len(l.items) == 0 {
		return Item{}, false
	}
	last := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	delete(l.index, last.Key)
	return last, true
}

// Has reports whether key is selected.
func (l *SelectedList) Has(key string) bool {
	_, ok := l.index[key]
	return ok
}

// Keys returns the selected keys in insertion order.
func (l *SelectedList) Keys() []string {
	keys := make([]string, len(l.items))
	for i, it := range l.items {
		keys[i] = it.Key
	}
	return keys
}

// Items returns a copy of the selected items in insertion order.
func (l *SelectedList) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of selected items.
func (l *SelectedList) Len() int {
	return len(l.items)
}

// Package multiselect implements the selection engine behind a multi-value
// autocomplete field: an available pool filtered by the typed query, an
// ordered list of selected items, and the controller that turns user gestures
// into state transitions on both.
//
// The engine is synchronous and single-threaded. Every method runs to
// completion and leaves the controller in a consistent state before it
// returns. Callers that receive gestures from several goroutines must
// serialize them, for example through a bubbletea update loop.
package multiselect

import "errors"

// Item is a candidate or selected entry. Key is the identity used for every
// set operation and must not contain Delimiter. The empty key is reserved for
// "no key".
type Item struct {
	Key  string
	Text string
}

var (
	// ErrDuplicateKey is returned when appending a key that is already selected.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when a key is not present in the collection.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidSelection is returned when a gesture references a key outside
	// the current visible subset. It means the renderer and the engine are out
	// of sync; the controller refuses the mutation.
	ErrInvalidSelection = errors.New("invalid selection")
)

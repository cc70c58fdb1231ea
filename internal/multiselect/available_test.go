package multiselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fruit() []Item {
	return []Item{
		{Key: "1", Text: "Apple"},
		{Key: "2", Text: "Apricot"},
		{Key: "3", Text: "Banana"},
	}
}

func keysOf(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

func TestAvailablePool_InitialVisibleIsEverything(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	assert.Equal(t, []string{"1", "2", "3"}, keysOf(p.Visible()))
	assert.Equal(t, "", p.Query())
}

func TestAvailablePool_SetQueryFilters(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	p.SetQuery("ap")
	assert.Equal(t, []string{"1", "2"}, keysOf(p.Visible()))
	assert.True(t, p.Contains("2"))
	assert.False(t, p.Contains("3"))

	p.SetQuery("")
	assert.Len(t, p.Visible(), 3)
}

func TestAvailablePool_ExcludeHidesMatchingKeys(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	p.Exclude([]string{"1"})
	p.SetQuery("Ap")
	assert.Equal(t, []Item{{Key: "2", Text: "Apricot"}}, p.Visible())
}

func TestAvailablePool_ExcludeReplacesPreviousSet(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	p.Exclude([]string{"1", "2"})
	assert.Equal(t, []string{"3"}, keysOf(p.Visible()))

	p.Exclude([]string{"3"})
	assert.Equal(t, []string{"1", "2"}, keysOf(p.Visible()))
}

func TestAvailablePool_VisibleIsPureFunctionOfInputs(t *testing.T) {
	match := func(text, query string) bool { return defaultPredicate(text, query) }
	items := fruit()
	selected := map[string]bool{"3": true}

	for _, q := range []string{"", "a", "ap", "an", "zzz", "APR"} {
		p := NewAvailablePool(items, match)
		p.Exclude([]string{"3"})
		p.SetQuery(q)
		first := p.Visible()
		p.SetQuery(q)
		second := p.Visible()
		assert.Equal(t, first, second, "query %q", q)

		var want []Item
		for _, it := range items {
			if !selected[it.Key] && match(it.Text, q) {
				want = append(want, it)
			}
		}
		if want == nil {
			want = []Item{}
		}
		assert.Equal(t, want, first, "query %q", q)
	}
}

func TestAvailablePool_SetItemsWaitsForNextRecompute(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	p.SetQuery("an")
	require.Equal(t, []string{"3"}, keysOf(p.Visible()))

	p.SetItems([]Item{{Key: "4", Text: "Mango"}, {Key: "5", Text: "Cherry"}})
	assert.Equal(t, []string{"3"}, keysOf(p.Visible()), "no implicit refresh")

	p.SetQuery("an")
	assert.Equal(t, []string{"4"}, keysOf(p.Visible()))
}

func TestAvailablePool_LookupIgnoresFilterAndExclusion(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	p.Exclude([]string{"1"})
	p.SetQuery("banana")

	it, err := p.Lookup("1")
	require.NoError(t, err)
	assert.Equal(t, "Apple", it.Text)
}

func TestAvailablePool_LookupUnknown(t *testing.T) {
	p := NewAvailablePool(fruit(), nil)
	_, err := p.Lookup("99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailablePool_CustomPredicate(t *testing.T) {
	prefix := func(text, query string) bool {
		return len(text) >= len(query) && text[:len(query)] == query
	}
	p := NewAvailablePool(fruit(), prefix)
	p.SetQuery("Ba")
	assert.Equal(t, []string{"3"}, keysOf(p.Visible()))
	p.SetQuery("an")
	assert.Empty(t, p.Visible())
}

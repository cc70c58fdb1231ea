package multiselect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Predicate decides whether an item's text matches the typed query.
// Implementations must be pure: identical inputs always give identical results.
type Predicate func(text, query string) bool

var defaultPredicate = BaseContains(language.Und)

// BaseContains returns a substring predicate that compares at base-letter
// strength: case and diacritics are ignored, so "Ap" matches "apple" and "e"
// matches "Crème". The empty query matches everything.
//
// With language.Und the comparison uses Unicode case folding. Any other tag
// lowercases with that language's rules (for example Turkish dotted and
// dotless i).
func BaseContains(tag language.Tag) Predicate {
	turkic := isTurkic(tag)
	return func(text, query string) bool {
		if query == "" {
			return true
		}
		return strings.Contains(fold(text, tag, turkic), fold(query, tag, turkic))
	}
}

// strokeBase maps lowercase letters that carry a diacritic without a
// canonical decomposition to their base letter.
var strokeBase = map[rune]rune{
	'ø': 'o',
	'ł': 'l',
	'đ': 'd',
	'ħ': 'h',
	'ŧ': 't',
	'ƀ': 'b',
	'ƶ': 'z',
}

// isTurkic reports whether dotless ı is a letter of its own in tag's
// language.
func isTurkic(tag language.Tag) bool {
	base, conf := tag.Base()
	if conf == language.No {
		return false
	}
	switch base.String() {
	case "tr", "az":
		return true
	}
	return false
}

// fold reduces s to its caseless base letters. Case mapping runs first so
// language rules still see the original marks (Turkish İ lowers to i, not ı).
// Transformers keep internal state, so a fresh chain is built per call.
func fold(s string, tag language.Tag, turkic bool) string {
	var lowered string
	if tag == language.Und {
		lowered = cases.Fold().String(s)
	} else {
		lowered = cases.Lower(tag).String(s)
	}
	base := runes.Map(func(r rune) rune {
		if b, ok := strokeBase[r]; ok {
			return b
		}
		if r == 'ı' && !turkic {
			return 'i'
		}
		return r
	})
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), base, norm.NFC)
	out, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return out
}

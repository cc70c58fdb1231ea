package multiselect

import "strings"

// Delimiter separates keys in the serialized value. Keys are not escaped.
const Delimiter = ","

// Serialize joins the keys of l in order. An empty or nil list yields "".
func Serialize(l *SelectedList) string {
	if l == nil {
		return ""
	}
	return strings.Join(l.Keys(), Delimiter)
}

// ParseKeys splits a serialized value back into keys. Empty segments are
// dropped, so "" and "," both give no keys.
func ParseKeys(value string) []string {
	var keys []string
	for _, k := range strings.Split(value, Delimiter) {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

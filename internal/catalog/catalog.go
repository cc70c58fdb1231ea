// Package catalog loads the full set of items a picker can offer.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/tagpick/internal/multiselect"
)

var (
	// ErrEmptyKey is returned for an item without a key. The empty key
	// means "no item" to the selection engine.
	ErrEmptyKey = errors.New("empty key")
	// ErrDuplicateKey is returned when two items share a key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Format identifies a catalog file encoding.
type Format int

const (
	FormatLines Format = iota
	FormatYAML
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatLines:
		return "lines"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Catalog is the superset of items plus an optional initial selection.
type Catalog struct {
	Items    []multiselect.Item
	Selected []string
}

type record struct {
	Key  string `yaml:"key" json:"key" toml:"key"`
	Text string `yaml:"text" json:"text" toml:"text"`
}

type document struct {
	Items    []record `yaml:"items" json:"items" toml:"items"`
	Selected []string `yaml:"selected" json:"selected" toml:"selected"`
}

// FormatForPath picks a format from the file extension. Unknown extensions
// are read as lines.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatLines
	}
}

// Load reads a catalog file. A path of "-" reads lines from stdin.
func Load(path string) (Catalog, error) {
	if path == "-" {
		return Read(os.Stdin, FormatLines)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data, FormatForPath(path))
}

// Read parses a catalog from r.
func Read(r io.Reader, format Format) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (Catalog, error) {
	var doc document
	var err error
	switch format {
	case FormatLines:
		doc, err = parseLines(data)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		if len(bytes.TrimSpace(data)) > 0 {
			err = json.Unmarshal(data, &doc)
		}
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog format %d", format)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("parsing %s catalog: %w", format, err)
	}

	items := make([]multiselect.Item, 0, len(doc.Items))
	for _, r := range doc.Items {
		items = append(items, multiselect.Item{Key: r.Key, Text: r.Text})
	}
	items, err = Validate(items)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Items: items, Selected: doc.Selected}, nil
}

// parseLines reads "key<TAB>text" lines. A line without a tab is both key
// and text. Blank lines and lines starting with # are skipped.
func parseLines(data []byte) (document, error) {
	var doc document
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, text, ok := strings.Cut(line, "\t")
		if !ok {
			key = strings.TrimSpace(line)
			text = key
		}
		doc.Items = append(doc.Items, record{Key: strings.TrimSpace(key), Text: strings.TrimSpace(text)})
	}
	return doc, sc.Err()
}

// Validate rejects empty and duplicate keys and fills empty text with the
// key. It returns a new slice.
func Validate(items []multiselect.Item) ([]multiselect.Item, error) {
	seen := make(map[string]bool, len(items))
	out := make([]multiselect.Item, 0, len(items))
	for i, it := range items {
		if it.Key == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyKey)
		}
		if seen[it.Key] {
			return nil, fmt.Errorf("item %d %q: %w", i, it.Key, ErrDuplicateKey)
		}
		seen[it.Key] = true
		if it.Text == "" {
			it.Text = it.Key
		}
		out = append(out, it)
	}
	return out, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/ruminaider/tagpick/cmd/tagpick/tui"
	"github.com/ruminaider/tagpick/internal/config"
)

type jsonResult struct {
	Name  string   `json:"name"`
	Value string   `json:"value"`
	Keys  []string `json:"keys"`
}

// writeResult prints a submitted selection in the configured format.
func writeResult(w io.Writer, cfg *config.Config, res tui.Result) error {
	switch cfg.Output {
	case config.OutputValue:
		_, err := fmt.Fprintln(w, res.Value)
		return err
	case config.OutputForm:
		_, err := fmt.Fprintln(w, url.Values{cfg.Name: {res.Value}}.Encode())
		return err
	case config.OutputJSON:
		keys := res.Keys
		if keys == nil {
			keys = []string{}
		}
		return json.NewEncoder(w).Encode(jsonResult{Name: cfg.Name, Value: res.Value, Keys: keys})
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output)
	}
}

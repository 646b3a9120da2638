// internal/content/load.go
//
// Loading content from the embedded defaults, optionally overridden per
// table by files on disk:
//   - Files.Words:     one word per line ('#' comments allowed).
//   - Files.Items:     JSON array of {name, backgroundColor, textColor}.
//   - Files.Farewells: one template per line.
// Any empty path falls back to the embedded table.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/robalobadob/endgame/assets"
)

// Files names optional override files for each content table.
type Files struct {
	Words     string
	Items     string
	Farewells string
}

// Default builds the catalog from embedded content only.
func Default() (*Catalog, error) {
	return Load(Files{}, 0)
}

// Load builds a catalog from files, falling back to embedded tables.
func Load(f Files, maxWrong int) (*Catalog, error) {
	words, err := loadLines(f.Words, assets.WordList)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	farewells, err := loadLines(f.Farewells, assets.FarewellList)
	if err != nil {
		return nil, fmt.Errorf("load farewells: %w", err)
	}
	items, err := loadItems(f.Items)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return New(words, items, farewells, maxWrong)
}

func loadLines(path string, fallback func() ([]string, error)) ([]string, error) {
	if path == "" {
		return fallback()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return assets.ReadLines(bytes.NewReader(b))
}

func loadItems(path string) ([]Item, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = assets.ItemsJSON()
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", nameOr(path, "items.json"), err)
	}
	return items, nil
}

func nameOr(path, def string) string {
	if path == "" {
		return def
	}
	return path
}

package variant

import (
	"fmt"
	"sort"
)

const DefaultKey = "default"

const (
	KeyMonstera   = "monstera"
	KeyFiddleLeaf = "fiddle-leaf"
	KeySnakePlant = "snake-plant"
)

func builtIn() map[string]Params {
	return map[string]Params{
		KeyMonstera: {
			StemColor: mustHex("#2d5a27"),
			LeafColor: mustHex("#4a8a3c"),
			Height:    1.2,
			LeafSize:  0.4,
			LeafCount: 6,
			Spread:    0.5,
		},
		KeyFiddleLeaf: {
			StemColor: mustHex("#2d5a27"),
			LeafColor: mustHex("#3a6a2d"),
			Height:    1.5,
			LeafSize:  0.5,
			LeafCount: 4,
			Spread:    0.6,
		},
		KeySnakePlant: {
			StemColor: mustHex("#2d5a27"),
			LeafColor: mustHex("#4a8a3c"),
			Height:    1.0,
			LeafSize:  0.3,
			LeafCount: 8,
			Spread:    0.4,
		},
		DefaultKey: {
			StemColor: mustHex("#2d5a27"),
			LeafColor: mustHex("#4a8a3c"),
			Height:    1.0,
			LeafSize:  0.3,
			LeafCount: 6,
			Spread:    0.4,
		},
	}
}

// Table is a read-only key -> Params mapping that always holds a default
// entry. Adding a species is a data change.
type Table struct {
	entries map[string]Params
}

// DefaultTable returns the built-in variants.
func DefaultTable() *Table {
	return &Table{entries: builtIn()}
}

// NewTable merges extra variants over the built-ins. Extra entries may
// override built-in keys, including default, but must be valid.
func NewTable(extra map[string]Params) (*Table, error) {
	entries := builtIn()
	for key, p := range extra {
		if key == "" {
			return nil, fmt.Errorf("variant key must not be empty")
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		entries[key] = p
	}
	return &Table{entries: entries}, nil
}

// Resolve never fails: unknown keys, including "", get the default entry.
func (t *Table) Resolve(key string) Params {
	if t == nil {
		return builtIn()[DefaultKey]
	}
	if p, ok := t.entries[key]; ok {
		return p
	}
	return t.entries[DefaultKey]
}

// Lookup reports whether key has its own entry.
func (t *Table) Lookup(key string) (Params, bool) {
	if t == nil {
		return Params{}, false
	}
	p, ok := t.entries[key]
	return p, ok
}

// ResolveID resolves the variant for a plant record id.
func (t *Table) ResolveID(id string) (string, Params) {
	key := TypeKey(id)
	if _, ok := t.Lookup(key); !ok {
		return DefaultKey, t.Resolve(key)
	}
	return key, t.Resolve(key)
}

func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

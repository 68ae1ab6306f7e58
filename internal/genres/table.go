package genres

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Mapping is one static correspondence between a TMDB genre id and the CMS
// item representing that genre.
type Mapping struct {
	TMDBID int64  `toml:"tmdb_id"`
	Name   string `toml:"name"`
	ItemID string `toml:"item_id"`
}

type mappingFile struct {
	Genres []Mapping `toml:"genre"`
}

// Table resolves TMDB genre ids to CMS item references.
type Table struct {
	mappings []Mapping
	byID     map[int64]Mapping
}

// NewTable builds a lookup table from mappings. Later duplicates of the same
// TMDB id are ignored.
func NewTable(mappings []Mapping) *Table {
	table := &Table{
		mappings: make([]Mapping, 0, len(mappings)),
		byID:     make(map[int64]Mapping, len(mappings)),
	}
	for _, mapping := range mappings {
		if _, ok := table.byID[mapping.TMDBID]; ok {
			continue
		}
		table.byID[mapping.TMDBID] = mapping
		table.mappings = append(table.mappings, mapping)
	}
	return table
}

// Load reads a mapping file produced by 'cinesync genres seed'.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("genre mapping file %s not found; run 'cinesync genres seed' first", path)
		}
		return nil, fmt.Errorf("read genre mapping: %w", err)
	}

	var file mappingFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse genre mapping: %w", err)
	}
	for _, mapping := range file.Genres {
		if mapping.TMDBID <= 0 {
			return nil, fmt.Errorf("genre mapping %q has invalid tmdb_id %d", mapping.Name, mapping.TMDBID)
		}
		if mapping.ItemID == "" {
			return nil, fmt.Errorf("genre mapping %q has no item_id", mapping.Name)
		}
	}
	return NewTable(file.Genres), nil
}

// Save writes mappings to path in the format Load expects.
func Save(path string, mappings []Mapping) error {
	data, err := toml.Marshal(mappingFile{Genres: mappings})
	if err != nil {
		return fmt.Errorf("marshal genre mapping: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create mapping directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write genre mapping: %w", err)
	}
	return nil
}

// Resolve translates genre ids into CMS item references, preserving the input
// order and dropping ids without a mapping entry.
func (t *Table) Resolve(ids []int64) []string {
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		if mapping, ok := t.byID[id]; ok {
			refs = append(refs, mapping.ItemID)
		}
	}
	return refs
}

// Lookup returns the mapping for a single genre id.
func (t *Table) Lookup(id int64) (Mapping, bool) {
	mapping, ok := t.byID[id]
	return mapping, ok
}

// Mappings returns the table's entries in file order.
func (t *Table) Mappings() []Mapping {
	cp := make([]Mapping, len(t.mappings))
	copy(cp, t.mappings)
	return cp
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.mappings)
}

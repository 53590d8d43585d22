// Package codes loads the NAICS revision crosswalk and the description table.
//
// Both tables are read once at startup and never written afterwards, so a
// Store may be shared by concurrent turns without locking.
package codes

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/naics/internal/core/model"
)

// ErrUnsupportedFormat is returned for table files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported table format")

type Store struct {
	remap        model.RemapTable
	descriptions model.DescriptionTable
}

// Load reads the 2017->2022 remap table and the 2022 description table.
func Load(remapPath, descriptionsPath string) (*Store, error) {
	remap, err := readTable(remapPath)
	if err != nil {
		return nil, fmt.Errorf("load remap table: %w", err)
	}
	desc, err := readTable(descriptionsPath)
	if err != nil {
		return nil, fmt.Errorf("load description table: %w", err)
	}
	return New(remap, desc), nil
}

// New wraps already loaded tables. The maps must not be modified afterwards.
func New(remap model.RemapTable, descriptions model.DescriptionTable) *Store {
	if remap == nil {
		remap = model.RemapTable{}
	}
	if descriptions == nil {
		descriptions = model.DescriptionTable{}
	}
	return &Store{remap: remap, descriptions: descriptions}
}

// Remap returns a copy of the remap table; the store's own tables never change after load.
func (s *Store) Remap() model.RemapTable { return maps.Clone(s.remap) }

func (s *Store) Descriptions() model.DescriptionTable { return maps.Clone(s.descriptions) }

func readTable(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(f)
	case ".toml":
		return decodeTOML(f)
	case ".csv":
		return decodeCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decodeJSON(r io.Reader) (map[string]string, error) {
	table := map[string]string{}
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return table, nil
}

func decodeTOML(r io.Reader) (map[string]string, error) {
	table := map[string]string{}
	if err := toml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return table, nil
}

// decodeCSV reads two-column rows (code, value). A first row whose code
// column is not numeric is treated as a header.
func decodeCSV(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	table := map[string]string{}
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("decode csv: line %d: expected 2 columns, got %d", line, len(rec))
		}
		key := strings.TrimSpace(rec[0])
		if line == 1 && !isCode(key) {
			continue
		}
		table[key] = strings.TrimSpace(rec[1])
	}
	return table, nil
}

func isCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

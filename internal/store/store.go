// Package store loads the ordered, immutable item sequence a coding
// session runs over.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/argcoder/internal/cache"
	"github.com/ppiankov/argcoder/internal/model"
)

// requiredColumns must be present in every item file; description and
// explanation are optional.
var requiredColumns = []string{"coding_id", "quotation"}

// Loader parses item-store CSV files, caching parsed results by content
// hash so large files are only parsed once per edit.
type Loader struct {
	cache cache.Cache
}

// NewLoader creates a loader backed by c; pass cache.Nop{} to disable
// caching.
func NewLoader(c cache.Cache) *Loader {
	if c == nil {
		c = cache.Nop{}
	}
	return &Loader{cache: c}
}

// Load reads and parses the item store at path.
func (l *Loader) Load(path string) ([]model.CodingItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item file: %w", err)
	}

	key := cache.Key(data)
	if cached, found := l.cache.Get(key); found {
		var items []model.CodingItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		// Corrupt entry; fall through to a fresh parse
		_ = l.cache.Delete(key)
	}

	items, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if encoded, err := json.Marshal(items); err == nil {
		_ = l.cache.Set(key, encoded, 0)
	}

	return items, nil
}

// Parse reads an item store from CSV. The header must include coding_id
// and quotation; description and explanation are optional. Item order
// follows row order and is stable for the session's lifetime.
func Parse(r io.Reader) ([]model.CodingItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []model.CodingItem
	seen := make(map[string]bool)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		item := model.CodingItem{
			CodingID:    field(row, "coding_id"),
			Quotation:   field(row, "quotation"),
			Description: field(row, "description"),
			Explanation: field(row, "explanation"),
		}
		if item.CodingID == "" {
			return nil, fmt.Errorf("line %d: empty coding_id", line)
		}
		if seen[item.CodingID] {
			return nil, fmt.Errorf("line %d: duplicate coding_id %q", line, item.CodingID)
		}
		if item.Quotation == "" {
			return nil, fmt.Errorf("line %d: empty quotation for %q", line, item.CodingID)
		}

		seen[item.CodingID] = true
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("item file contains no rows")
	}

	return items, nil
}

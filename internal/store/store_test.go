package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/argcoder/internal/cache"
)

const sampleCSV = `coding_id,quotation,description,explanation
Q1,"Inflation has clearly accelerated since the spring.",Staff remarks,Model saw explicit data reference
Q2,"We should wait for more information.",,
Q3,"My district contacts report hiring freezes.",,
`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].CodingID != "Q1" || items[0].Description != "Staff remarks" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Description != "" || items[1].Explanation != "" {
		t.Errorf("optional fields should be empty: %+v", items[1])
	}
}

func TestParse_RequiredColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("coding_id,description\nQ1,whatever\n"))
	if err == nil || !strings.Contains(err.Error(), "quotation") {
		t.Errorf("expected missing-column error naming quotation, got %v", err)
	}
}

func TestParse_DuplicateAndEmptyIDs(t *testing.T) {
	_, err := Parse(strings.NewReader("coding_id,quotation\nQ1,a\nQ1,b\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate id error, got %v", err)
	}

	_, err = Parse(strings.NewReader("coding_id,quotation\n,a\n"))
	if err == nil {
		t.Error("expected error for empty coding_id")
	}

	_, err = Parse(strings.NewReader("coding_id,quotation\n"))
	if err == nil {
		t.Error("expected error for an empty item file")
	}
}

func TestLoader_CachesParsedItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coding_inflation.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	loader := NewLoader(mem)

	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	// A second load of identical content is served from cache and must
	// produce the same items.
	second, err := loader.Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("cached load differs: %+v vs %+v", first, second)
	}

	// Editing the file changes the content hash, so the cache misses
	// and the new row shows up.
	edited := sampleCSV + "Q4,\"New quotation.\",,\n"
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatalf("rewrite sample: %v", err)
	}
	third, err := loader.Load(path)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if len(third) != 4 {
		t.Errorf("expected 4 items after edit, got %d", len(third))
	}
}

func TestLoader_NopCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	loader := NewLoader(cache.Nop{})
	items, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
}

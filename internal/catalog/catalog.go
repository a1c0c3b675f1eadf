// Package catalog loads the category reference tables used to populate
// the coding form's option lists.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/argcoder/internal/model"
)

// ErrUnknownCategory indicates a record references a category absent
// from the catalog.
var ErrUnknownCategory = errors.New("unknown category")

// Catalog holds the two reference tables: argument categories scoped by
// variable, and variable-independent data-source categories. Read-only
// for the whole session.
type Catalog struct {
	Arguments []model.ArgumentCategory `yaml:"argument_categories"`
	Data      []model.DataCategory     `yaml:"data_categories"`
}

// Load reads a catalog definition from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog definition.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for _, a := range c.Arguments {
		if !a.Variable.Valid() {
			return nil, fmt.Errorf("argument category %q: unsupported variable %q", a.Name, a.Variable)
		}
		if a.Name == "" {
			return nil, fmt.Errorf("argument category with empty name under %s", a.Variable)
		}
	}
	for _, d := range c.Data {
		if d.Name == "" {
			return nil, fmt.Errorf("data category with empty name")
		}
	}

	return &c, nil
}

// ArgumentsFor returns the argument categories scoped to v, in catalog
// order.
func (c *Catalog) ArgumentsFor(v model.Variable) []model.ArgumentCategory {
	var out []model.ArgumentCategory
	for _, a := range c.Arguments {
		if a.Variable == v {
			out = append(out, a)
		}
	}
	return out
}

// ArgumentOptions returns the selectable argument category names for v,
// with the escape-hatch sentinel appended last.
func (c *Catalog) ArgumentOptions(v model.Variable) []string {
	var names []string
	for _, a := range c.ArgumentsFor(v) {
		names = append(names, a.Name)
	}
	return append(names, model.OtherCategory)
}

// DataOptions returns the selectable data category names with the
// escape-hatch sentinel appended last.
func (c *Catalog) DataOptions() []string {
	var names []string
	for _, d := range c.Data {
		names = append(names, d.Name)
	}
	return append(names, model.OtherCategory)
}

// CheckRecord verifies that every category a record selects exists in
// the catalog (or is the sentinel) for the record's variable.
func (c *Catalog) CheckRecord(rec *model.CodingRecord) error {
	if rec.ArgumentCategory != "" && rec.ArgumentCategory != model.OtherCategory {
		found := false
		for _, a := range c.ArgumentsFor(rec.Variable) {
			if a.Name == rec.ArgumentCategory {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: argument category %q not defined for %s", ErrUnknownCategory, rec.ArgumentCategory, rec.Variable)
		}
	}

	for _, name := range rec.DataCategories {
		if name == model.OtherCategory {
			continue
		}
		found := false
		for _, d := range c.Data {
			if d.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: data category %q not defined", ErrUnknownCategory, name)
		}
	}

	return nil
}

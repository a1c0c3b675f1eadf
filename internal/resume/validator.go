// Package resume validates a previously exported result table against
// the currently loaded item store before it replaces the session state.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/argcoder/internal/export"
	"github.com/ppiankov/argcoder/internal/model"
)

// RequiredColumns must all be present for a resume file to be considered.
var RequiredColumns = []string{"coding_id", "coder_name", "score"}

var (
	// ErrSchemaInvalid indicates the table lacks required columns.
	ErrSchemaInvalid = errors.New("resume file schema invalid")

	// ErrNoOverlap indicates no row matches the current item store.
	ErrNoOverlap = errors.New("resume file shares no coding_ids with current items")
)

// Result is a successful validation: the accepted records in file order,
// plus a non-fatal warning when rows had to be dropped.
type Result struct {
	Accepted []model.CodingRecord
	Dropped  int    // rows whose coding_id is absent from the item store
	Warning  string // non-empty when Dropped > 0
}

// Validator checks resume tables against one item store.
type Validator struct {
	known map[string]bool
}

// NewValidator creates a validator for the given item store.
func NewValidator(items []model.CodingItem) *Validator {
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.CodingID] = true
	}
	return &Validator{known: known}
}

// Validate decides whether the table can become the new session state.
// Rows whose coding_id is not in the item store are silently dropped and
// counted; both failure modes leave the caller's session untouched.
func (v *Validator) Validate(table *export.Table) (*Result, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrSchemaInvalid, strings.Join(missing, ", "))
	}

	res := &Result{}
	for i, row := range table.Rows {
		id := strings.TrimSpace(row["coding_id"])
		if !v.known[id] {
			res.Dropped++
			continue
		}
		rec, err := export.ParseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		res.Accepted = append(res.Accepted, rec)
	}

	if len(res.Accepted) == 0 {
		return nil, fmt.Errorf("%w", ErrNoOverlap)
	}

	if res.Dropped > 0 {
		res.Warning = fmt.Sprintf("%d coding_ids in resume file not found in current data (will be ignored)", res.Dropped)
	}

	return res, nil
}

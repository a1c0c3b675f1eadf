package model

import (
	"errors"
	"fmt"
	"time"
)

// Free-text length limits, matching the coding form.
const (
	MaxOtherLen = 200 // "other" descriptions for data and argument categories
	MaxNotesLen = 500 // optional notes
)

// Score bounds for the outlook score.
const (
	MinScore = -3
	MaxScore = 3
)

// ErrIncompleteForm indicates a record is missing a field required by the
// branch it is on, or carries a field the branch forbids.
var ErrIncompleteForm = errors.New("incomplete coding form")

// CodingRecord is the full structured label set produced for one item.
// Conditional fields follow the form branches: the data-citation fields
// exist only when CitesData is true, and the "other" texts exist only when
// the corresponding sentinel category is selected.
type CodingRecord struct {
	CodingID              string          `json:"coding_id"`
	CoderName             string          `json:"coder_name"`
	Variable              Variable        `json:"variable"`
	Score                 int             `json:"score"` // Outlook score in [-3, +3]
	CitesData             bool            `json:"cites_data"`
	DataCategories        []string        `json:"data_categories,omitempty"`
	DataCategoryOther     string          `json:"data_category_other,omitempty"`
	InformationType       InformationType `json:"information_type,omitempty"`
	ArgumentCategory      string          `json:"argument_category"`
	ArgumentCategoryOther string          `json:"argument_category_other,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	CodedAt               time.Time       `json:"coded_at"`
}

// HasDataCategory reports whether name is among the selected data
// categories.
func (r *CodingRecord) HasDataCategory(name string) bool {
	for _, c := range r.DataCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Normalize clears every field whose governing branch was not taken, so a
// record never carries stale values from a branch the coder backed out of
// (e.g. switching CitesData back to No must drop the category list).
func (r *CodingRecord) Normalize() {
	if !r.CitesData {
		r.DataCategories = nil
		r.DataCategoryOther = ""
		r.InformationType = ""
	}
	if !r.HasDataCategory(OtherCategory) {
		r.DataCategoryOther = ""
	}
	if r.ArgumentCategory != OtherCategory {
		r.ArgumentCategoryOther = ""
	}
}

// Validate checks that the record satisfies every invariant of its branch.
// Callers should Normalize first; Validate treats leftover fields from an
// untaken branch as errors rather than cleaning them up.
func (r *CodingRecord) Validate() error {
	if r.CodingID == "" {
		return fmt.Errorf("%w: coding_id is required", ErrIncompleteForm)
	}
	if r.CoderName == "" {
		return fmt.Errorf("%w: coder_name is required", ErrIncompleteForm)
	}
	if !r.Variable.Valid() {
		return fmt.Errorf("%w: variable must be one of %v", ErrIncompleteForm, Variables)
	}
	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("%w: score %d outside [%d, %d]", ErrIncompleteForm, r.Score, MinScore, MaxScore)
	}

	if r.CitesData {
		if !r.InformationType.Valid() {
			return fmt.Errorf("%w: information_type is required when data is cited", ErrIncompleteForm)
		}
		if r.HasDataCategory(OtherCategory) && r.DataCategoryOther == "" {
			return fmt.Errorf("%w: data_category_other is required when %q is selected", ErrIncompleteForm, OtherCategory)
		}
		if !r.HasDataCategory(OtherCategory) && r.DataCategoryOther != "" {
			return fmt.Errorf("%w: data_category_other set without %q selected", ErrIncompleteForm, OtherCategory)
		}
	} else {
		if len(r.DataCategories) > 0 || r.DataCategoryOther != "" || r.InformationType != "" {
			return fmt.Errorf("%w: data citation fields set but cites_data is No", ErrIncompleteForm)
		}
	}

	if r.ArgumentCategory == "" {
		return fmt.Errorf("%w: argument_category is required", ErrIncompleteForm)
	}
	if r.ArgumentCategory == OtherCategory {
		if r.ArgumentCategoryOther == "" {
			return fmt.Errorf("%w: argument_category_other is required when %q is selected", ErrIncompleteForm, OtherCategory)
		}
	} else if r.ArgumentCategoryOther != "" {
		return fmt.Errorf("%w: argument_category_other set without %q selected", ErrIncompleteForm, OtherCategory)
	}

	if len(r.DataCategoryOther) > MaxOtherLen {
		return fmt.Errorf("%w: data_category_other exceeds %d characters", ErrIncompleteForm, MaxOtherLen)
	}
	if len(r.ArgumentCategoryOther) > MaxOtherLen {
		return fmt.Errorf("%w: argument_category_other exceeds %d characters", ErrIncompleteForm, MaxOtherLen)
	}
	if len(r.Notes) > MaxNotesLen {
		return fmt.Errorf("%w: notes exceed %d characters", ErrIncompleteForm, MaxNotesLen)
	}

	return nil
}

// Equivalent reports whether two records carry the same judgment,
// ignoring the save timestamp. Used for the export/resume round-trip
// contract.
func (r CodingRecord) Equivalent(o CodingRecord) bool {
	if r.CodingID != o.CodingID ||
		r.CoderName != o.CoderName ||
		r.Variable != o.Variable ||
		r.Score != o.Score ||
		r.CitesData != o.CitesData ||
		r.DataCategoryOther != o.DataCategoryOther ||
		r.InformationType != o.InformationType ||
		r.ArgumentCategory != o.ArgumentCategory ||
		r.ArgumentCategoryOther != o.ArgumentCategoryOther ||
		r.Notes != o.Notes {
		return false
	}
	if len(r.DataCategories) != len(o.DataCategories) {
		return false
	}
	for i := range r.DataCategories {
		if r.DataCategories[i] != o.DataCategories[i] {
			return false
		}
	}
	return true
}

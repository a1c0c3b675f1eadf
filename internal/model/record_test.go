package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validRecord() CodingRecord {
	return CodingRecord{
		CodingID:         "Q1",
		CoderName:        "Jane Doe",
		Variable:         VariableInflation,
		Score:            2,
		CitesData:        false,
		ArgumentCategory: "Demand Pressure",
	}
}

func TestCodingRecord_Validate_NoCitation(t *testing.T) {
	rec := validRecord()
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestCodingRecord_Validate_CitationBranch(t *testing.T) {
	rec := validRecord()
	rec.CitesData = true
	rec.DataCategories = []string{"Government Statistics"}

	// Missing information type
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm for missing information_type, got %v", err)
	}

	rec.InformationType = InformationPublic
	if err := rec.Validate(); err != nil {
		t.Errorf("expected valid citation record, got %v", err)
	}

	// "Other" selected without description
	rec.DataCategories = append(rec.DataCategories, OtherCategory)
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm for missing data_category_other, got %v", err)
	}

	rec.DataCategoryOther = "District survey of grain elevators"
	if err := rec.Validate(); err != nil {
		t.Errorf("expected valid record with other description, got %v", err)
	}
}

func TestCodingRecord_Validate_OrphanedFields(t *testing.T) {
	// Citation fields left behind after switching cites_data back to No
	rec := validRecord()
	rec.DataCategories = []string{"Surveys"}
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm for orphaned data_categories, got %v", err)
	}

	// Other text without the sentinel selected
	rec = validRecord()
	rec.ArgumentCategoryOther = "something else entirely"
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm for orphaned argument_category_other, got %v", err)
	}

	// Sentinel selected without text
	rec = validRecord()
	rec.ArgumentCategory = OtherCategory
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm for missing argument_category_other, got %v", err)
	}
}

func TestCodingRecord_Validate_ScoreBounds(t *testing.T) {
	for _, score := range []int{-3, 0, 3} {
		rec := validRecord()
		rec.Score = score
		if err := rec.Validate(); err != nil {
			t.Errorf("score %d: expected valid, got %v", score, err)
		}
	}
	for _, score := range []int{-4, 4, 100} {
		rec := validRecord()
		rec.Score = score
		if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
			t.Errorf("score %d: expected ErrIncompleteForm, got %v", score, err)
		}
	}
}

func TestCodingRecord_Validate_LengthLimits(t *testing.T) {
	rec := validRecord()
	rec.Notes = strings.Repeat("x", MaxNotesLen)
	if err := rec.Validate(); err != nil {
		t.Errorf("notes at limit: expected valid, got %v", err)
	}

	rec.Notes = strings.Repeat("x", MaxNotesLen+1)
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("notes over limit: expected ErrIncompleteForm, got %v", err)
	}

	rec = validRecord()
	rec.ArgumentCategory = OtherCategory
	rec.ArgumentCategoryOther = strings.Repeat("y", MaxOtherLen+1)
	if err := rec.Validate(); !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("other text over limit: expected ErrIncompleteForm, got %v", err)
	}
}

func TestCodingRecord_Normalize(t *testing.T) {
	rec := validRecord()
	rec.CitesData = false
	rec.DataCategories = []string{"Surveys", OtherCategory}
	rec.DataCategoryOther = "stale"
	rec.InformationType = InformationPublic
	rec.ArgumentCategoryOther = "stale too"

	rec.Normalize()

	if rec.DataCategories != nil {
		t.Errorf("expected data_categories cleared, got %v", rec.DataCategories)
	}
	if rec.DataCategoryOther != "" || rec.InformationType != "" {
		t.Errorf("expected citation fields cleared, got %q / %q", rec.DataCategoryOther, rec.InformationType)
	}
	if rec.ArgumentCategoryOther != "" {
		t.Errorf("expected argument_category_other cleared, got %q", rec.ArgumentCategoryOther)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("normalized record should validate, got %v", err)
	}
}

func TestCodingRecord_Equivalent(t *testing.T) {
	a := validRecord()
	b := a
	b.CodedAt = time.Now()
	if !a.Equivalent(b) {
		t.Error("records differing only in timestamp should be equivalent")
	}

	b.Score = -1
	if a.Equivalent(b) {
		t.Error("records with different scores should not be equivalent")
	}
}

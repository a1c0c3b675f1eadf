package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/argcoder/internal/model"
)

func testItems(ids ...string) []model.CodingItem {
	items := make([]model.CodingItem, len(ids))
	for i, id := range ids {
		items[i] = model.CodingItem{CodingID: id, Quotation: "quotation " + id}
	}
	return items
}

func testRecord(id string) model.CodingRecord {
	return model.CodingRecord{
		CodingID:         id,
		CoderName:        "Jane Doe",
		Variable:         model.VariableInflation,
		Score:            2,
		ArgumentCategory: "Demand Pressure",
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	if _, err := New(testItems("Q1", "Q1")); err == nil {
		t.Error("expected error for duplicate coding_id")
	}
	if _, err := New(nil); err == nil {
		t.Error("expected error for empty item list")
	}
}

func TestSession_CommitAndAdvance(t *testing.T) {
	// Scenario: commit score=2, cites_data=No for Q1, then advance.
	sess, err := New(testItems("Q1", "Q2", "Q3"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	total, err := sess.Commit(testRecord("Q1"))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if total != 1 {
		t.Errorf("expected coded count 1, got %d", total)
	}

	if complete := sess.Advance(); complete {
		t.Error("session should not be complete after one item")
	}
	if sess.Position() != 1 {
		t.Errorf("expected position 1, got %d", sess.Position())
	}
	if !sess.Coded("Q1") || sess.Coded("Q2") {
		t.Error("only Q1 should be coded")
	}
}

func TestSession_CommitTimestamps(t *testing.T) {
	fixed := time.Date(2026, 8, 20, 14, 15, 0, 0, time.UTC)
	saved := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = saved }()

	sess, _ := New(testItems("Q1"))
	if _, err := sess.Commit(testRecord("Q1")); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	rec, _ := sess.Record("Q1")
	if !rec.CodedAt.Equal(fixed) {
		t.Errorf("expected coded_at %v, got %v", fixed, rec.CodedAt)
	}
}

func TestSession_CommitIdempotent(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2"))

	rec := testRecord("Q1")
	if _, err := sess.Commit(rec); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	first, _ := sess.Record("Q1")

	total, err := sess.Commit(rec)
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if total != 1 {
		t.Errorf("recommit must not duplicate: expected 1 record, got %d", total)
	}

	second, _ := sess.Record("Q1")
	if !first.Equivalent(second) {
		t.Error("recommitting the same record changed its content")
	}
}

func TestSession_UpsertReplacesWholesale(t *testing.T) {
	sess, _ := New(testItems("Q1"))

	rec := testRecord("Q1")
	rec.CitesData = true
	rec.DataCategories = []string{"Surveys"}
	rec.InformationType = model.InformationPublic
	if _, err := sess.Commit(rec); err != nil {
		t.Fatalf("commit citing record: %v", err)
	}

	// Recode as not citing data: the old category list must not survive.
	recode := testRecord("Q1")
	recode.CitesData = false
	if _, err := sess.Commit(recode); err != nil {
		t.Fatalf("recommit: %v", err)
	}

	got, _ := sess.Record("Q1")
	if got.CitesData || len(got.DataCategories) != 0 || got.InformationType != "" {
		t.Errorf("stale citation fields survived the replacement: %+v", got)
	}
}

func TestSession_IdentityLocking(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2"))

	if sess.LockedCoder() != "" || sess.LockedVariable() != "" {
		t.Fatal("identity should be unset before the first commit")
	}

	if _, err := sess.Commit(testRecord("Q1")); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if sess.LockedCoder() != "Jane Doe" || sess.LockedVariable() != model.VariableInflation {
		t.Errorf("identity not locked from first commit: %q / %q", sess.LockedCoder(), sess.LockedVariable())
	}

	other := testRecord("Q2")
	other.CoderName = "John Smith"
	if _, err := sess.Commit(other); !errors.Is(err, ErrIdentityLocked) {
		t.Errorf("expected ErrIdentityLocked for a different coder, got %v", err)
	}
	if sess.Coded("Q2") {
		t.Error("rejected commit must not write a record")
	}

	wrongVar := testRecord("Q2")
	wrongVar.Variable = model.VariableEmployment
	if _, err := sess.Commit(wrongVar); !errors.Is(err, ErrIdentityLocked) {
		t.Errorf("expected ErrIdentityLocked for a different variable, got %v", err)
	}
}

func TestSession_CommitRejectsUnknownItem(t *testing.T) {
	sess, _ := New(testItems("Q1"))
	if _, err := sess.Commit(testRecord("Q9")); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
}

func TestSession_CommitRejectsIncompleteForm(t *testing.T) {
	sess, _ := New(testItems("Q1"))
	rec := testRecord("Q1")
	rec.ArgumentCategory = ""
	if _, err := sess.Commit(rec); !errors.Is(err, model.ErrIncompleteForm) {
		t.Errorf("expected ErrIncompleteForm, got %v", err)
	}
	if sess.CodedCount() != 0 {
		t.Error("rejected commit must not write a record")
	}
}

func TestSession_NavigationBounds(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2", "Q3", "Q4", "Q5"))

	// Jump to position 10 on a 5-item store is rejected, cursor unchanged.
	if err := sess.Jump(10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if sess.Position() != 0 {
		t.Errorf("failed jump moved the cursor to %d", sess.Position())
	}

	if err := sess.Jump(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for 1-based position 0, got %v", err)
	}

	if err := sess.Retreat(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange retreating at position 0, got %v", err)
	}

	if err := sess.Jump(5); err != nil {
		t.Fatalf("Jump(5): %v", err)
	}
	if sess.Position() != 4 {
		t.Errorf("expected position 4, got %d", sess.Position())
	}

	// Skip at the last item stays put.
	if sess.Skip() {
		t.Error("skip at the last item should be a no-op")
	}
	if sess.Position() != 4 {
		t.Errorf("skip at last item moved the cursor to %d", sess.Position())
	}

	// Advance from the last item parks the cursor one past the end.
	if complete := sess.Advance(); !complete {
		t.Error("advancing past the last item should report completion")
	}
	if sess.Position() != 5 || !sess.Complete() {
		t.Errorf("expected terminal position 5, got %d", sess.Position())
	}
	if _, ok := sess.Current(); ok {
		t.Error("Current should report no item in the terminal state")
	}

	// Advancing again stays a no-op.
	sess.Advance()
	if sess.Position() != 5 {
		t.Errorf("advance in terminal state moved the cursor to %d", sess.Position())
	}

	// Retreat out of the terminal state returns to the last item.
	if err := sess.Retreat(); err != nil {
		t.Fatalf("Retreat from terminal state: %v", err)
	}
	if sess.Position() != 4 {
		t.Errorf("expected position 4 after retreat, got %d", sess.Position())
	}
}

func TestSession_Reset(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2"))
	sess.Commit(testRecord("Q1"))
	sess.Advance()
	sess.Advance()

	sess.Reset()
	if sess.Position() != 0 {
		t.Errorf("expected position 0 after reset, got %d", sess.Position())
	}
	if sess.CodedCount() != 1 {
		t.Error("reset must not touch records")
	}
}

func TestSession_RecordsInStoreOrder(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2", "Q3"))

	// Commit out of order.
	for _, id := range []string{"Q3", "Q1"} {
		if _, err := sess.Commit(testRecord(id)); err != nil {
			t.Fatalf("commit %s: %v", id, err)
		}
	}

	records := sess.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CodingID != "Q1" || records[1].CodingID != "Q3" {
		t.Errorf("records not in item-store order: %s, %s", records[0].CodingID, records[1].CodingID)
	}
}

func TestSession_Restore(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2", "Q3"))

	// Type one thing into the session first; the resumed file wins.
	if _, err := sess.Commit(testRecord("Q2")); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	epochBefore := sess.FormEpoch()

	restored := testRecord("Q1")
	restored.CoderName = "John Smith"
	restored.Variable = model.VariableEmployment
	restored.ArgumentCategory = "Job Growth Momentum"
	if err := sess.Restore([]model.CodingRecord{restored}); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if sess.CodedCount() != 1 || !sess.Coded("Q1") || sess.Coded("Q2") {
		t.Error("restore must replace the record set wholesale")
	}
	if sess.LockedCoder() != "John Smith" || sess.LockedVariable() != model.VariableEmployment {
		t.Errorf("resumed identity not authoritative: %q / %q", sess.LockedCoder(), sess.LockedVariable())
	}
	if sess.FormEpoch() != epochBefore+1 {
		t.Errorf("expected form epoch bump, got %d -> %d", epochBefore, sess.FormEpoch())
	}
	if sess.Position() != 1 {
		t.Errorf("expected cursor at first uncoded item (1), got %d", sess.Position())
	}
}

func TestSession_RestoreFullyCoded(t *testing.T) {
	sess, _ := New(testItems("Q1", "Q2", "Q3"))

	records := []model.CodingRecord{testRecord("Q1"), testRecord("Q2"), testRecord("Q3")}
	if err := sess.Restore(records); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if sess.Position() != 3 || !sess.Complete() {
		t.Errorf("fully coded restore should land in the terminal state, got position %d", sess.Position())
	}
}

func TestSession_RestoreRejectsUnknownIDs(t *testing.T) {
	sess, _ := New(testItems("Q1"))
	err := sess.Restore([]model.CodingRecord{testRecord("Q9")})
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
	if err := sess.Restore(nil); err == nil {
		t.Error("expected error restoring an empty record set")
	}
}

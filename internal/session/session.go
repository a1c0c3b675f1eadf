package session

import (
	"fmt"
	"time"

	"github.com/ppiankov/argcoder/internal/model"
)

// nowFunc is the clock used to stamp saves (injectable for tests)
var nowFunc = time.Now

// Session tracks a single annotator's pass over an ordered item list.
// All transitions are synchronous and single-writer; a failed transition
// never mutates state.
type Session struct {
	items []model.CodingItem
	index map[string]int // coding_id -> position

	position int // cursor, 0 <= position <= len(items)
	records  map[string]model.CodingRecord

	// formEpoch invalidates cached form defaults after a structural
	// replacement of the record set (resume).
	formEpoch int

	lockedCoder    string
	lockedVariable model.Variable
}

// New creates a session over items. Items must have unique, non-empty
// coding ids.
func New(items []model.CodingItem) (*Session, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("session requires at least one item")
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		if item.CodingID == "" {
			return nil, fmt.Errorf("item at position %d has empty coding_id", i)
		}
		if prev, dup := index[item.CodingID]; dup {
			return nil, fmt.Errorf("duplicate coding_id %q at positions %d and %d", item.CodingID, prev, i)
		}
		index[item.CodingID] = i
	}

	return &Session{
		items:   items,
		index:   index,
		records: make(map[string]model.CodingRecord),
	}, nil
}

// Len returns the number of items in the session.
func (s *Session) Len() int { return len(s.items) }

// Position returns the 0-based cursor. A position equal to Len means
// every item has been passed and the session is in its terminal state.
func (s *Session) Position() int { return s.position }

// Complete reports whether the cursor is past the final item.
func (s *Session) Complete() bool { return s.position >= len(s.items) }

// Current returns the item under the cursor, or false when the session
// is complete.
func (s *Session) Current() (model.CodingItem, bool) {
	if s.Complete() {
		return model.CodingItem{}, false
	}
	return s.items[s.position], true
}

// Items returns the item sequence in store order.
func (s *Session) Items() []model.CodingItem { return s.items }

// FormEpoch returns the current form generation. Rendering layers that
// cache per-item defaults must discard them when the epoch changes.
func (s *Session) FormEpoch() int { return s.formEpoch }

// LockedCoder returns the coder name fixed at first save ("" before).
func (s *Session) LockedCoder() string { return s.lockedCoder }

// LockedVariable returns the variable fixed at first save ("" before).
func (s *Session) LockedVariable() model.Variable { return s.lockedVariable }

// Advance moves the cursor forward one item. Advancing from the final
// item parks the cursor one past the end; advancing again is a no-op.
// Either way the return value reports whether the session is complete.
func (s *Session) Advance() bool {
	if s.position < len(s.items) {
		s.position++
	}
	return s.Complete()
}

// Skip moves forward without writing a record. Unlike Advance it never
// leaves the item sequence: skipping the final item is a no-op and
// returns false.
func (s *Session) Skip() bool {
	if s.position >= len(s.items)-1 {
		return false
	}
	s.position++
	return true
}

// Retreat moves the cursor back one item.
func (s *Session) Retreat() error {
	if s.position == 0 {
		return fmt.Errorf("%w: already at the first item", ErrOutOfRange)
	}
	s.position--
	return nil
}

// JumpTo moves the cursor to a 0-based index within the item sequence.
func (s *Session) JumpTo(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(s.items))
	}
	s.position = index
	return nil
}

// Jump moves the cursor to a 1-based position in [1, Len], as entered in
// the jump control.
func (s *Session) Jump(pos int) error {
	if pos < 1 || pos > len(s.items) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, pos, len(s.items))
	}
	return s.JumpTo(pos - 1)
}

// Reset returns the cursor to the first item without touching records.
func (s *Session) Reset() { s.position = 0 }

// Commit validates rec, locks the session identity on the first save,
// and upserts the record by coding_id. A recommit replaces the prior
// record wholesale; no field-level merge happens. Returns the total
// number of coded items after the save.
func (s *Session) Commit(rec model.CodingRecord) (int, error) {
	if _, ok := s.index[rec.CodingID]; !ok {
		return len(s.records), fmt.Errorf("%w: %q", ErrUnknownItem, rec.CodingID)
	}

	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return len(s.records), err
	}

	if s.lockedCoder != "" {
		if rec.CoderName != s.lockedCoder || rec.Variable != s.lockedVariable {
			return len(s.records), fmt.Errorf("%w: session is %s coding %s, record is %s coding %s",
				ErrIdentityLocked, s.lockedCoder, s.lockedVariable, rec.CoderName, rec.Variable)
		}
	} else {
		s.lockedCoder = rec.CoderName
		s.lockedVariable = rec.Variable
	}

	rec.CodedAt = nowFunc()
	s.records[rec.CodingID] = rec
	return len(s.records), nil
}

// Coded reports whether the item with the given id has a saved record.
func (s *Session) Coded(codingID string) bool {
	_, ok := s.records[codingID]
	return ok
}

// Record returns the saved record for an item, if any.
func (s *Session) Record(codingID string) (model.CodingRecord, bool) {
	rec, ok := s.records[codingID]
	return rec, ok
}

// Records returns the accumulated record set in item-store order, which
// keeps exports deterministic.
func (s *Session) Records() []model.CodingRecord {
	out := make([]model.CodingRecord, 0, len(s.records))
	for _, item := range s.items {
		if rec, ok := s.records[item.CodingID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// CodedCount returns the number of items with saved records.
func (s *Session) CodedCount() int { return len(s.records) }

// Restore replaces the record set with records accepted by the resume
// validator. The resumed file is authoritative for identity: the locked
// coder and variable come from its first record regardless of what the
// session held before. The form epoch is bumped so stale per-item
// defaults are discarded, and the cursor moves to the first uncoded item
// (or past the end when everything is already coded).
func (s *Session) Restore(accepted []model.CodingRecord) error {
	if len(accepted) == 0 {
		return fmt.Errorf("restore requires at least one record")
	}
	for _, rec := range accepted {
		if _, ok := s.index[rec.CodingID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownItem, rec.CodingID)
		}
	}

	records := make(map[string]model.CodingRecord, len(accepted))
	for _, rec := range accepted {
		records[rec.CodingID] = rec // later rows supersede earlier ones
	}

	s.records = records
	s.lockedCoder = accepted[0].CoderName
	s.lockedVariable = accepted[0].Variable
	s.formEpoch++

	s.position = len(s.items)
	for i, item := range s.items {
		if _, coded := records[item.CodingID]; !coded {
			s.position = i
			break
		}
	}

	return nil
}

// Progress summarizes session completion for display.
type Progress struct {
	Coded    int
	Total    int
	Position int // 0-based cursor
	Complete bool
}

// Progress returns the current completion summary.
func (s *Session) Progress() Progress {
	return Progress{
		Coded:    len(s.records),
		Total:    len(s.items),
		Position: s.position,
		Complete: s.Complete(),
	}
}

// Package session implements the annotation session engine: the cursor
// over the item sequence, the accumulated record set, identity locking,
// and the navigation rules tying them together.
package session

import "errors"

// Sentinel errors for session transitions. Every failure leaves the
// session in its previous valid state.
var (
	// ErrOutOfRange is returned for navigation targets outside the
	// item sequence.
	ErrOutOfRange = errors.New("position out of range")

	// ErrUnknownItem is returned when a record references a coding_id
	// the item store does not contain.
	ErrUnknownItem = errors.New("unknown coding item")

	// ErrIdentityLocked is returned when a commit carries a coder name
	// or variable different from the values locked at first save.
	ErrIdentityLocked = errors.New("coder identity is locked for this session")
)

// Package form is the edit-dialog state machine shared by every screen's
// create/edit flow. A machine owns one draft record at a time; field edits
// touch only the in-memory draft, and nothing reaches the collection API
// before Submit.
package form

import (
	"context"
	"errors"
)

// State tags the machine's position in the dialog lifecycle.
type State int

const (
	StateClosed State = iota
	StateCreate
	StateEdit
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateCreate:
		return "create"
	case StateEdit:
		return "edit"
	case StateSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

var (
	// ErrNotOpen is returned by Submit when no dialog is open.
	ErrNotOpen = errors.New("form is not open")
	// ErrSubmitting is returned when a submit is already in flight.
	ErrSubmitting = errors.New("form submit already in progress")
)

// SubmitFunc sends the draft to the collection API. id is empty for a
// create and set for an edit.
type SubmitFunc[T any] func(ctx context.Context, id string, draft T) (T, error)

// Machine drives one dialog. The id discriminator distinguishes create
// (empty) from edit (set); the clone function keeps the draft a private
// deep copy of whatever record it was opened from.
type Machine[T any] struct {
	state State
	draft T
	id    string
	clone func(T) T
}

// NewMachine creates a closed machine. clone may be nil for records with no
// reference fields.
func NewMachine[T any](clone func(T) T) *Machine[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Machine[T]{clone: clone}
}

func (m *Machine[T]) State() State { return m.state }

// ID is the draft's discriminator: empty means create, set means edit.
func (m *Machine[T]) ID() string { return m.id }

// Draft returns a copy of the current draft.
func (m *Machine[T]) Draft() T { return m.clone(m.draft) }

// OpenCreate opens the dialog on a blank template.
func (m *Machine[T]) OpenCreate(blank T) {
	m.state = StateCreate
	m.draft = m.clone(blank)
	m.id = ""
}

// OpenEdit opens the dialog on a deep copy of an existing record.
func (m *Machine[T]) OpenEdit(id string, record T) {
	m.state = StateEdit
	m.draft = m.clone(record)
	m.id = id
}

// Update applies a field edit to the draft. Ignored while closed or
// submitting.
func (m *Machine[T]) Update(mutate func(*T)) {
	if m.state != StateCreate && m.state != StateEdit {
		return
	}
	mutate(&m.draft)
}

// Submit sends the draft through submit. On success the machine returns to
// Closed and the draft is discarded; the caller re-fetches the collection.
// On failure the machine falls back to Create or Edit with the draft
// preserved so the user can retry.
func (m *Machine[T]) Submit(ctx context.Context, submit SubmitFunc[T]) (T, error) {
	var zero T
	switch m.state {
	case StateCreate, StateEdit:
	case StateSubmitting:
		return zero, ErrSubmitting
	default:
		return zero, ErrNotOpen
	}

	prev := m.state
	m.state = StateSubmitting

	result, err := submit(ctx, m.id, m.clone(m.draft))
	if err != nil {
		m.state = prev
		return zero, err
	}

	m.Close()
	return result, nil
}

// Close discards the draft unconditionally.
func (m *Machine[T]) Close() {
	var zero T
	m.state = StateClosed
	m.draft = zero
	m.id = ""
}

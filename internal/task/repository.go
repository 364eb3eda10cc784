package task

import (
	"log"

	"github.com/google/uuid"
)

// Persister holds the durable copy of AppState. Set writes through; its
// error reports degraded durability only.
type Persister interface {
	Get() AppState
	Set(AppState) error
}

// Repository is the single writer of AppState. Every mutation replaces
// the whole state and writes it through before returning.
type Repository struct {
	store   Persister
	state   AppState
	rev     uint64
	derive  Deriver
	newID   func() string
	lastErr error
}

type RepoOption func(*Repository)

// WithIDGenerator overrides uuid-based task ids.
func WithIDGenerator(fn func() string) RepoOption {
	return func(r *Repository) { r.newID = fn }
}

func NewRepository(store Persister, opts ...RepoOption) *Repository {
	r := &Repository{
		store: store,
		state: store.Get(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a copy; changing it does not touch the repository.
func (r *Repository) State() AppState {
	s := r.state
	s.Items = cloneItems(r.state.Items)
	return s
}

// Rev changes every time Items is replaced.
func (r *Repository) Rev() uint64 { return r.rev }

// LastWriteError is the error from the most recent write, if it failed.
func (r *Repository) LastWriteError() error { return r.lastErr }

func (r *Repository) Visible() []Task { return cloneItems(r.derive.Visible(r.state, r.rev)) }

func (r *Repository) Summary() Summary { return r.derive.Summary(r.state, r.rev) }

// Find returns the task with id from the current state.
func (r *Repository) Find(id string) (Task, bool) {
	for _, t := range r.state.Items {
		if t.ID == id {
			return cloneTask(t), true
		}
	}
	return Task{}, false
}

// Add returns the new task id, or "" when rawInput was blank or the task
// was rejected. A due date that is not YYYY-MM-DD is dropped.
func (r *Repository) Add(rawInput, due string, p Priority) string {
	id := r.newID()
	next := AddTask(r.state, id, rawInput, due, p)
	if len(next.Items) == len(r.state.Items) {
		return ""
	}
	if !r.commit(next, true) {
		return ""
	}
	return id
}

// Toggle, Delete and Update ignore ids that are no longer present.

func (r *Repository) Toggle(id string) {
	if _, ok := r.Find(id); ok {
		r.commit(ToggleTask(r.state, id), true)
	}
}

func (r *Repository) Delete(id string) {
	if _, ok := r.Find(id); ok {
		r.commit(DeleteTask(r.state, id), true)
	}
}

// Update also ignores a patch that carries nothing usable, such as a blank
// title.
func (r *Repository) Update(id string, patch Patch) {
	if _, ok := r.Find(id); !ok || patch.clean().empty() {
		return
	}
	r.commit(UpdateTask(r.state, id, patch), true)
}

func (r *Repository) ClearCompleted() { r.commit(ClearCompleted(r.state), true) }

func (r *Repository) SetFilter(f Filter) { r.commit(SetFilter(r.state, f), false) }

func (r *Repository) SetSearch(text string) { r.commit(SetSearch(r.state, text), false) }

// SeedIfEmpty inserts the starter tasks when there are none.
func (r *Repository) SeedIfEmpty(tasks []Task) bool {
	if len(r.state.Items) > 0 || len(tasks) == 0 {
		return false
	}
	next := r.state
	next.Items = cloneItems(tasks)
	return r.commit(next, true)
}

// commit refuses a state the loader would reject, so a saved record is
// always one that reloads.
func (r *Repository) commit(next AppState, itemsChanged bool) bool {
	if err := Validate(next); err != nil {
		log.Printf("tasks: change rejected: %v", err)
		return false
	}
	r.state = next
	if itemsChanged {
		r.rev++
	}
	if err := r.store.Set(next); err != nil {
		log.Printf("tasks: state not saved: %v", err)
		r.lastErr = err
		return true
	}
	r.lastErr = nil
	return true
}

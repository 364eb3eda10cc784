package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Persisted is a single value mirrored to a Backend under a fixed key.
// The value is read once at construction; every Set writes through.
type Persisted[T any] struct {
	backend  Backend
	key      string
	value    T
	validate func(T) error
}

// Option customizes a Persisted cell.
type Option[T any] func(*Persisted[T])

// WithValidator rejects decoded values that are structurally invalid.
func WithValidator[T any](fn func(T) error) Option[T] {
	return func(p *Persisted[T]) { p.validate = fn }
}

// NewPersisted loads key from backend, falling back to def when the record
// is missing, unreadable, undecodable or rejected by the validator.
func NewPersisted[T any](backend Backend, key string, def T, opts ...Option[T]) *Persisted[T] {
	p := &Persisted[T]{backend: backend, key: key}
	for _, opt := range opts {
		opt(p)
	}
	p.value = p.load(def)
	return p
}

func (p *Persisted[T]) load(def T) T {
	raw, err := p.backend.Get(p.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("storage: read %q: %v; using default", p.key, err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("storage: decode %q: %v; using default", p.key, err)
		return def
	}
	if p.validate != nil {
		if err := p.validate(v); err != nil {
			log.Printf("storage: invalid %q: %v; using default", p.key, err)
			return def
		}
	}
	return v
}

func (p *Persisted[T]) Get() T {
	return p.value
}

// Set replaces the in-memory value and writes it through. A write failure
// is returned for reporting but never rolls back the in-memory value.
func (p *Persisted[T]) Set(v T) error {
	p.value = v
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", p.key, err)
	}
	if err := p.backend.Put(p.key, data); err != nil {
		return fmt.Errorf("write %q: %w", p.key, err)
	}
	return nil
}

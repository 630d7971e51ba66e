package bplustree

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the engine. Use errors.Is to test for them;
// operations that fail on a specific key wrap one of these in a *KeyError.
var (
	ErrInvalidCapacity        = errors.New("bplustree: invalid capacity")
	ErrNotFound               = errors.New("bplustree: key not found")
	ErrEmpty                  = errors.New("bplustree: tree is empty")
	ErrConcurrentModification = errors.New("bplustree: concurrent modification")
	ErrInvariantViolation     = errors.New("bplustree: invariant violation")
)

// KeyError reports a per-key failure (NotFound today) without exposing any
// internal node pointer or index.
type KeyError[K any] struct {
	Key K
	Err error
}

func (e *KeyError[K]) Error() string {
	return fmt.Sprintf("%s: key %v", e.Err, e.Key)
}

func (e *KeyError[K]) Unwrap() error {
	return e.Err
}

// InvariantError reports which structural invariant the checker found
// violated, and where. It is raised only by CheckInvariants, never by
// normal tree operations.
type InvariantError struct {
	Invariant string // e.g. "I1".."I8"
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant %s violated: %s", ErrInvariantViolation, e.Invariant, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

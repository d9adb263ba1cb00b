package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// ErrNotFound is returned by Get when no document exists for the key.
var ErrNotFound = errors.New("session document not found")

// TransientError wraps a store I/O failure (network, timeout). Callers can
// detect it with IsTransient and surface it as a retryable condition,
// distinct from domain errors like ErrNotFound.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a store I/O failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Store is the session document store contract. Put is a full-document
// overwrite: there is no partial-update primitive, so mutation is always an
// explicit read-modify-write on the caller's side, last writer wins at
// document granularity.
type Store interface {
	// Get returns the document for key, or ErrNotFound.
	Get(ctx context.Context, key model.SessionKey) ([]model.QuestionAttempt, error)
	// Put overwrites the document for key.
	Put(ctx context.Context, key model.SessionKey, attempts []model.QuestionAttempt) error
	// Delete removes the document for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key model.SessionKey) error
	// ScanForReference reports whether any stored document holds an attempt
	// matching (questionID, qtype). Full-store scan; stale the moment it
	// returns, so callers must treat it as a best-effort guard only.
	ScanForReference(ctx context.Context, questionID int64, qtype model.QuestionType) (bool, error)
}

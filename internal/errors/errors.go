// Package errors defines the domain error vocabulary shared by the wallet
// workflows. Every failure a caller can act on is a *DomainError carrying a
// stable code and a Kind; anything else reaching a retrying workflow is
// treated as transient storage trouble.
package errors

import (
	"errors"
)

// Kind classifies a domain error for propagation decisions.
type Kind int

const (
	// KindValidation: malformed or missing input. Surfaced, never retried.
	KindValidation Kind = iota + 1
	// KindNotFound: a referenced record does not exist. Surfaced, never retried.
	KindNotFound
	// KindConflict: duplicate reference, insufficient balance, or a state the
	// caller must correct before resubmitting. Surfaced, never retried.
	KindConflict
	// KindTransient: storage-layer contention; eligible for bounded retry.
	KindTransient
)

type DomainError struct {
	Code    string
	Message string
	Kind    Kind
}

func (e *DomainError) Error() string { return e.Message }

// IsKind reports whether err is (or wraps) a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// IsDomain reports whether err is any DomainError.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }

package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so the request layer can translate them
// without knowing every concrete error value.
type ErrorKind string

const (
	KindDuplicateKey    ErrorKind = "DUPLICATE_KEY"
	KindBusinessRule    ErrorKind = "BUSINESS_RULE"
	KindInvalidArgument ErrorKind = "INVALID_ARGUMENT"
	KindNotFound        ErrorKind = "NOT_FOUND"
)

// Kind sentinels. errors.Is(err, ErrBusinessRule) is true for every
// DomainError of that kind, whatever its code.
var (
	ErrDuplicateKey    = &DomainError{Kind: KindDuplicateKey}
	ErrBusinessRule    = &DomainError{Kind: KindBusinessRule}
	ErrInvalidArgument = &DomainError{Kind: KindInvalidArgument}
	ErrNotFound        = &DomainError{Kind: KindNotFound}
)

// DomainError is the typed failure returned by the catalog and the ledger.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels (no code) and errors with the same kind and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Code == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Wrap returns a copy of e carrying cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	cp := *e
	cp.Err = cause
	return &cp
}

// ========================================
// CONSTRUCTORS
// ========================================

func NewDuplicateKeyError(code, message string) *DomainError {
	return &DomainError{Kind: KindDuplicateKey, Code: code, Message: message}
}

func NewBusinessRuleError(code, message string) *DomainError {
	return &DomainError{Kind: KindBusinessRule, Code: code, Message: message}
}

func NewInvalidArgumentError(code, message string) *DomainError {
	return &DomainError{Kind: KindInvalidArgument, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

// KindOf reports the kind of the first DomainError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorKind is the closed set of failure categories the services
// produce. Handlers map kinds to HTTP statuses; the French user-facing
// text lives on the error itself so it is rendered in one place.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindInsufficientBalance
)

// DomainError carries a kind plus the structured fields callers need
// (field name for validation, available balance for withdrawals).
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string

	// Set for KindInsufficientBalance.
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *DomainError) Error() string {
	return e.Message
}

func validationf(field, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func insufficientBalance(available, requested decimal.Decimal) *DomainError {
	return &DomainError{
		Kind:      KindInsufficientBalance,
		Available: available,
		Requested: requested,
		Message:   fmt.Sprintf("Solde insuffisant. Disponible : %s XAF", available.String()),
	}
}

// KindOf extracts the error kind, or zero for unclassified errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

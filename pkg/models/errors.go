package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every problem the engine can report.
type ErrorKind string

const (
	KindClassification      ErrorKind = "classification"
	KindInsufficientPeriods ErrorKind = "insufficient_periods"
	KindImbalance           ErrorKind = "imbalance"
	KindReconciliation      ErrorKind = "reconciliation"
	KindDivisionSentinel    ErrorKind = "division_sentinel"
	KindInternal            ErrorKind = "internal"
)

// ErrInsufficientPeriods is matched by errors.Is for every
// InsufficientPeriodsError.
var ErrInsufficientPeriods = errors.New("insufficient periods")

// ClassificationError rejects a ledger entry. It aborts the whole run.
type ClassificationError struct {
	EntryID string
	Field   string
	Reason  string
}

func (e *ClassificationError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("classification: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("classification: entry %s: %s: %s", e.EntryID, e.Field, e.Reason)
}

// InsufficientPeriodsError means a component needs more years than were given.
type InsufficientPeriodsError struct {
	Component string
	Need      int
	Have      int
}

func (e *InsufficientPeriodsError) Error() string {
	return fmt.Sprintf("%s: se necesitan al menos %d años, hay %d", e.Component, e.Need, e.Have)
}

func (e *InsufficientPeriodsError) Unwrap() error { return ErrInsufficientPeriods }

// Warning is a non-fatal problem attached to the analysis package.
type Warning struct {
	Kind      ErrorKind `json:"kind" yaml:"kind"`
	Component string    `json:"component" yaml:"component"`
	Year      int       `json:"year,omitempty" yaml:"year,omitempty"`
	Message   string    `json:"message" yaml:"message"`
}

// Problem is the structured error object returned by the API and CLI.
type Problem struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	EntryID string    `json:"entry_id,omitempty" yaml:"entry_id,omitempty"`
}

// ProblemFrom converts an error into its structured form.
func ProblemFrom(err error) Problem {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return Problem{Kind: KindClassification, Message: ce.Error(), EntryID: ce.EntryID}
	}
	var ip *InsufficientPeriodsError
	if errors.As(err, &ip) {
		return Problem{Kind: KindInsufficientPeriods, Message: ip.Error()}
	}
	return Problem{Kind: KindInternal, Message: err.Error()}
}

// Package diagnostics implements the semantic analyzer's error taxonomy
// (spec.md §7). Errors are collected, never fatal: each pass records what it
// finds and continues where recovery is safe.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anzen-lang/anzen/internal/ast"
)

// ErrorCode enumerates the error kinds spec.md §7 requires.
type ErrorCode string

const (
	ErrDuplicateDecl         ErrorCode = "E001" // DuplicateDeclaration
	ErrUndefinedSymbol       ErrorCode = "E002" // UndefinedSymbol
	ErrInvalidTypeIdentifier ErrorCode = "E003" // InvalidTypeIdentifier
	ErrIncompatibleQualifier ErrorCode = "E004" // IncompatibleQualifiers
	ErrInference             ErrorCode = "E005" // InferenceError
	ErrAmbiguousType         ErrorCode = "E006" // AmbiguousType
	ErrNoMember              ErrorCode = "E007" // NoMember
	ErrNoInitializer         ErrorCode = "E008" // NoInitializer
)

var templates = map[ErrorCode]string{
	ErrDuplicateDecl:         "duplicate declaration of '%s'",
	ErrUndefinedSymbol:       "undefined symbol '%s'",
	ErrInvalidTypeIdentifier: "'%s' does not denote a type",
	ErrIncompatibleQualifier: "incompatible type qualifiers",
	ErrInference:             "couldn't infer the type of %s",
	ErrAmbiguousType:         "ambiguous type for %s: candidates %v",
	ErrNoMember:              "type %s has no member named '%s'",
	ErrNoInitializer:         "type %s has no initializer",
}

// DiagnosticError is a single recorded diagnostic.
type DiagnosticError struct {
	Code  ErrorCode
	Range ast.Range
	Args  []interface{}
}

func (e *DiagnosticError) Error() string {
	template, ok := templates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code: %s", e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)
	return fmt.Sprintf("%d:%d: [%s] %s", e.Range.Start.Line, e.Range.Start.Column, e.Code, message)
}

// New constructs a DiagnosticError at the given range.
func New(code ErrorCode, r ast.Range, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Range: r, Args: args}
}

// Bag accumulates diagnostics produced by a single run of the pipeline over
// one module. Each Bag is stamped with a run id so a driver running many
// modules concurrently (spec.md §5) can correlate which diagnostics vector
// came from which Analyze call without the core depending on any particular
// reporting sink.
type Bag struct {
	RunID  uuid.UUID
	errors []error
}

// NewBag creates an empty, freshly-identified diagnostics bag.
func NewBag() *Bag {
	return &Bag{RunID: uuid.New()}
}

// Add records an error. It is never fatal: the caller must continue.
func (b *Bag) Add(err error) {
	b.errors = append(b.errors, err)
}

// Addf is a convenience wrapper around New + Add.
func (b *Bag) Addf(code ErrorCode, r ast.Range, args ...interface{}) {
	b.Add(New(code, r, args...))
}

// Errors returns all collected diagnostics, in recording order.
func (b *Bag) Errors() []error {
	return b.errors
}

// HasErrors reports whether any diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return len(b.errors) > 0
}

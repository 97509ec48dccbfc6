// Package errors provides standardized error types and helpers for the
// enzymeml-go codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrReference indicates a dangling or unknown identifier
	ErrReference = errors.New("unresolved reference")
	// ErrDuplicateIdentifier indicates an explicit id collision
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrUnknownPrefix indicates an unsupported unit prefix magnitude
	ErrUnknownPrefix = errors.New("unknown unit prefix")
	// ErrUnitKind indicates an unsupported base unit kind
	ErrUnitKind = errors.New("unknown unit kind")
	// ErrMalformedDocument indicates a structurally invalid wire tree
	ErrMalformedDocument = errors.New("malformed document")
	// ErrDataLengthMismatch indicates inconsistent time/data series
	ErrDataLengthMismatch = errors.New("data length mismatch")
	// ErrValidation indicates a schema or business-rule violation
	ErrValidation = errors.New("validation failed")
	// ErrIO indicates a filesystem or archive I/O failure
	ErrIO = errors.New("io failure")
)

// ReferenceError represents a dangling or unknown identifier with context.
type ReferenceError struct {
	Kind  string // Entity kind being referenced (e.g., "species", "vessel", "unit")
	ID    string // The identifier that failed to resolve
	Field string // Field holding the reference (e.g., "r0.reactants"), may be empty
	Err   error  // Underlying error, if any
}

func (e *ReferenceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %q referenced by %s not found", e.Kind, e.ID, e.Field)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrReference
}

// DuplicateIdentifierError represents an explicit id collision.
type DuplicateIdentifierError struct {
	Kind string // Entity kind (e.g., "small_molecule")
	ID   string // The colliding identifier
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s id %q already present in document", e.Kind, e.ID)
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// UnknownPrefixError represents an unsupported unit prefix or scale.
type UnknownPrefixError struct {
	Prefix string // The offending prefix string (e.g., "da")
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown unit prefix %q", e.Prefix)
}

func (e *UnknownPrefixError) Unwrap() error {
	return ErrUnknownPrefix
}

// UnitKindError represents an unsupported base unit kind.
type UnitKindError struct {
	Kind string // The offending kind string
}

func (e *UnitKindError) Error() string {
	return fmt.Sprintf("unknown unit kind %q", e.Kind)
}

func (e *UnitKindError) Unwrap() error {
	return ErrUnitKind
}

// MalformedDocumentError represents a structurally invalid wire tree.
type MalformedDocumentError struct {
	Path    string // Element path of the offending node (e.g., "model/listOfSpecies/species[2]")
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *MalformedDocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed document at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed document: %s", e.Message)
}

func (e *MalformedDocumentError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedDocument
}

// DataLengthMismatchError represents inconsistent measurement series.
type DataLengthMismatchError struct {
	MeasurementID string // Owning measurement, may be empty during construction
	SpeciesID     string // Observed species
	Message       string // Details (lengths involved, initial value disagreement)
}

func (e *DataLengthMismatchError) Error() string {
	if e.MeasurementID != "" {
		return fmt.Sprintf("measurement %s, species %s: %s", e.MeasurementID, e.SpeciesID, e.Message)
	}
	return fmt.Sprintf("species %s: %s", e.SpeciesID, e.Message)
}

func (e *DataLengthMismatchError) Unwrap() error {
	return ErrDataLengthMismatch
}

// ValidationError represents a business-rule violation surfaced to a
// caller-supplied validator.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// IOError represents an I/O operation error with context.
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrIO
}

// Helper functions for creating common errors

// NewReference creates a ReferenceError.
func NewReference(kind, id, field string) *ReferenceError {
	return &ReferenceError{Kind: kind, ID: id, Field: field}
}

// NewDuplicateIdentifier creates a DuplicateIdentifierError.
func NewDuplicateIdentifier(kind, id string) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{Kind: kind, ID: id}
}

// NewUnknownPrefix creates an UnknownPrefixError.
func NewUnknownPrefix(prefix string) *UnknownPrefixError {
	return &UnknownPrefixError{Prefix: prefix}
}

// NewUnitKind creates a UnitKindError.
func NewUnitKind(kind string) *UnitKindError {
	return &UnitKindError{Kind: kind}
}

// NewMalformed creates a MalformedDocumentError.
func NewMalformed(path, message string) *MalformedDocumentError {
	return &MalformedDocumentError{Path: path, Message: message}
}

// NewDataLengthMismatch creates a DataLengthMismatchError.
func NewDataLengthMismatch(measurementID, speciesID, message string) *DataLengthMismatchError {
	return &DataLengthMismatchError{
		MeasurementID: measurementID,
		SpeciesID:     speciesID,
		Message:       message,
	}
}

// NewValidation creates a ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewIO creates an IOError.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

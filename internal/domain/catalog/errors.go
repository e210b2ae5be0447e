package catalog

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known catalog error categories.
type ErrorCode string

const (
	ErrCodeEmptyCatalog         ErrorCode = "EMPTY_CATALOG"
	ErrCodeEntryNotFound        ErrorCode = "ENTRY_NOT_FOUND"
	ErrCodeNoMoreResults        ErrorCode = "NO_MORE_RESULTS"
	ErrCodeInvalidEntry         ErrorCode = "INVALID_ENTRY"
	ErrCodeInvalidPageSize      ErrorCode = "INVALID_PAGE_SIZE"
	ErrCodeTransitionInProgress ErrorCode = "TRANSITION_IN_PROGRESS"
)

// DomainError represents a typed catalog error enriched with contextual data.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches any DomainError carrying the same code, so the sentinel values
// below work with errors.Is regardless of context.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) || e == nil {
		return false
	}
	return e.Code == domainErr.Code
}

// WithContext clones the error with additional contextual metadata.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

var (
	// ErrEmptyCatalog is returned by Store.Initialize when no entries are supplied.
	ErrEmptyCatalog = &DomainError{Code: ErrCodeEmptyCatalog, Message: "catalog contains no entries"}
	// ErrEntryNotFound is returned when an id is absent from the backing set.
	ErrEntryNotFound = &DomainError{Code: ErrCodeEntryNotFound, Message: "entry not found"}
	// ErrNoMoreResults signals that load-more produced an empty slice.
	ErrNoMoreResults = &DomainError{Code: ErrCodeNoMoreResults, Message: "no more results"}
	// ErrInvalidEntry is returned by Entry.Validate.
	ErrInvalidEntry = &DomainError{Code: ErrCodeInvalidEntry, Message: "invalid entry"}
	// ErrInvalidPageSize is returned by NewStore for non-positive page sizes.
	ErrInvalidPageSize = &DomainError{Code: ErrCodeInvalidPageSize, Message: "page size must be positive"}
	// ErrTransitionInProgress rejects a transition requested while another one runs.
	ErrTransitionInProgress = &DomainError{Code: ErrCodeTransitionInProgress, Message: "transition already in progress"}
)

func newNotFoundError(id string) *DomainError {
	return ErrEntryNotFound.WithContext(map[string]interface{}{"id": id})
}

func newInvalidEntryError(id, field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidEntry,
		Message: fmt.Sprintf("missing required field %q", field),
		Context: map[string]interface{}{"id": id, "field": field},
	}
}

// CodeOf extracts the ErrorCode from err, returning an empty code when err is
// not a DomainError.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Category represents the type of error.
type Category string

const (
	CategoryFetch   Category = "fetch"
	CategoryPayload Category = "payload"
	CategoryRender  Category = "render"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// SSRError is a structured error with a registry code, a category and a fix hint.
type SSRError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (fetch, payload, render, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// StatusCode is the upstream HTTP status, when the error came from one.
	StatusCode int

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SSRError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SSRError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *SSRError with the same code.
func (e *SSRError) Is(target error) bool {
	t, ok := target.(*SSRError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *SSRError) WithDetail(d string) *SSRError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *SSRError) WithDetailf(format string, args ...any) *SSRError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SSRError) WithSuggestion(s string) *SSRError {
	e.Suggestion = s
	return e
}

// WithStatus records the upstream HTTP status code.
func (e *SSRError) WithStatus(code int) *SSRError {
	e.StatusCode = code
	return e
}

// Wrap wraps another error.
func (e *SSRError) Wrap(err error) *SSRError {
	e.Wrapped = err
	return e
}

// HTTPStatus is the status the render server answers with for this error.
// Every failure of a page request is a 500; nothing is partially rendered.
func (e *SSRError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// New creates an SSRError from a registered error code.
func New(code string) *SSRError {
	template, ok := registry[code]
	if !ok {
		return &SSRError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SSRError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new SSRError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SSRError {
	return &SSRError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an SSRError.
// Errors that already carry an SSRError in their chain are returned as that SSRError.
func FromError(err error, code string) *SSRError {
	if err == nil {
		return nil
	}
	var se *SSRError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// As returns the first SSRError in err's chain.
func As(err error) (*SSRError, bool) {
	var se *SSRError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCategory reports whether err carries an SSRError of the given category.
func IsCategory(err error, category Category) bool {
	se, ok := As(err)
	return ok && se.Category == category
}

// CategoryOf returns the category of err, or "unknown" when err is not an SSRError.
func CategoryOf(err error) Category {
	if se, ok := As(err); ok && se.Category != "" {
		return se.Category
	}
	return "unknown"
}

// IsFetch reports whether err is a FetchError (network failure or non-2xx upstream).
func IsFetch(err error) bool { return IsCategory(err, CategoryFetch) }

// IsMalformedPayload reports whether err is a MalformedPayloadError.
func IsMalformedPayload(err error) bool { return IsCategory(err, CategoryPayload) }

// IsRender reports whether err is a RenderError.
func IsRender(err error) bool { return IsCategory(err, CategoryRender) }

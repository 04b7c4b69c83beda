package macro

import (
	"fmt"
	"strings"
)

// LookupError reports a failed network lookup. It never escapes Expand; the
// engine logs it and substitutes the fallback label.
type LookupError struct {
	Service string
	URL     string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s lookup via %s failed: %v", e.Service, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s lookup failed: %v", e.Service, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// NewLookupError creates a new lookup error
func NewLookupError(service, url string, cause error) error {
	return &LookupError{
		Service: service,
		URL:     url,
		Cause:   cause,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

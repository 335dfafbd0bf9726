package extract

import "fmt"

// ValidationError rejects an upload before any extraction stage runs:
// missing, oversized or unreadable input. Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// ExtractionError means every applicable stage was exhausted or the final
// text failed the acceptance threshold. The caller may offer a re-upload but
// must not retry automatically.
type ExtractionError struct {
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func NewExtractionError(reason string, cause error) error {
	return &ExtractionError{Reason: reason, Cause: cause}
}

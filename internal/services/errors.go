package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the canonical failure category shared by every upstream surface.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindRemoteNotFound    ErrorKind = "remote-not-found"
	KindAccessRestricted  ErrorKind = "access-restricted"
	KindRateLimited       ErrorKind = "rate-limited"
	KindTransientNetwork  ErrorKind = "transient-network"
	KindProcessingFailure ErrorKind = "processing-failure"
	KindAIUnavailable     ErrorKind = "ai-unavailable"
	KindAIQuotaExceeded   ErrorKind = "ai-quota-exceeded"
	KindAIContentTooLarge ErrorKind = "ai-content-too-large"
	KindUnknown           ErrorKind = "unknown"
)

// Kinds lists every ErrorKind in declaration order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindValidation,
		KindRemoteNotFound,
		KindAccessRestricted,
		KindRateLimited,
		KindTransientNetwork,
		KindProcessingFailure,
		KindAIUnavailable,
		KindAIQuotaExceeded,
		KindAIContentTooLarge,
		KindUnknown,
	}
}

// Sentinel markers, one per kind. A *ClassifiedError matches the marker for
// its kind with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrAccessRestricted  = errors.New("access restricted")
	ErrRateLimited       = errors.New("rate limited")
	ErrTransient         = errors.New("transient failure")
	ErrProcessing        = errors.New("processing failure")
	ErrAIUnavailable     = errors.New("ai service unavailable")
	ErrAIQuotaExceeded   = errors.New("ai quota exceeded")
	ErrAIContentTooLarge = errors.New("ai content too large")
	ErrUnknown           = errors.New("unknown failure")
)

var kindMarkers = map[ErrorKind]error{
	KindValidation:        ErrValidation,
	KindRemoteNotFound:    ErrNotFound,
	KindAccessRestricted:  ErrAccessRestricted,
	KindRateLimited:       ErrRateLimited,
	KindTransientNetwork:  ErrTransient,
	KindProcessingFailure: ErrProcessing,
	KindAIUnavailable:     ErrAIUnavailable,
	KindAIQuotaExceeded:   ErrAIQuotaExceeded,
	KindAIContentTooLarge: ErrAIContentTooLarge,
	KindUnknown:           ErrUnknown,
}

// Marker returns the sentinel error associated with kind.
func (k ErrorKind) Marker() error {
	if marker, ok := kindMarkers[k]; ok {
		return marker
	}
	return ErrUnknown
}

// Variants refine a kind without widening the closed taxonomy.
const (
	VariantAuthInvalid = "auth-invalid"
	VariantServiceDown = "service-down"
	VariantPrivate     = "private"
	VariantAgeGated    = "age-restricted"
	VariantGeoBlocked  = "geo-restricted"
)

// ClassifiedError is the canonical failure value surfaced to callers. It is
// built once by Classify (or Invalid/Wrap) and never mutated afterwards.
// Classify hands back an already classified error as the same pointer, so
// the exported fields are read-only: callers that need a different kind or
// message build a new value with Wrap.
type ClassifiedError struct {
	Kind      ErrorKind // read-only
	Surface   Surface   // read-only
	Variant   string    // read-only
	Operation string    // read-only
	Message   string    // read-only
	Cause     error     // read-only

	remediations []string
}

func newClassified(kind ErrorKind, surface Surface, variant, operation, message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Kind:         kind,
		Surface:      surface,
		Variant:      variant,
		Operation:    operation,
		Message:      message,
		Cause:        cause,
		remediations: remediationsFor(kind, variant),
	}
}

func (e *ClassifiedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Kind == KindUnknown {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ClassifiedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is the sentinel marker for this error's kind.
func (e *ClassifiedError) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == e.Kind.Marker()
}

// Remediations returns a copy of the ordered suggestions for this failure.
func (e *ClassifiedError) Remediations() []string {
	if e == nil || len(e.remediations) == 0 {
		return nil
	}
	out := make([]string, len(e.remediations))
	copy(out, e.remediations)
	return out
}

// UserMessage renders the message followed by numbered suggestions. Unknown
// failures surface the raw message only.
func (e *ClassifiedError) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindUnknown || len(e.remediations) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteString("\nSuggestions:")
	for i, hint := range e.remediations {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, hint)
	}
	return b.String()
}

// AsClassified extracts the first *ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if errors.As(err, &classified) && classified != nil {
		return classified, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindUnknown when err carries none.
func KindOf(err error) ErrorKind {
	if classified, ok := AsClassified(err); ok {
		return classified.Kind
	}
	return KindUnknown
}

// Invalid builds a validation failure for bad caller input.
func Invalid(format string, args ...any) *ClassifiedError {
	return newClassified(KindValidation, "", "", "", fmt.Sprintf(format, args...), nil)
}

// Wrap tags err with an explicit kind and operation when the caller already
// knows the category and does not need keyword classification.
func Wrap(kind ErrorKind, surface Surface, operation, message string, err error) *ClassifiedError {
	detail := buildDetail(operation, message)
	if err != nil {
		detail = fmt.Sprintf("%s: %v", detail, err)
	}
	return newClassified(kind, surface, "", strings.TrimSpace(operation), detail, err)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

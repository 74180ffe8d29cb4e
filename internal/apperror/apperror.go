package apperror

import "errors"

// Kind classifies an error for callers that need to react to it (the HTTP
// layer maps kinds to status codes).
type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindNotFound         Kind = "not_found"
	KindInvalidState     Kind = "invalid_state"
	KindPermissionDenied Kind = "permission_denied"
	KindConflict         Kind = "conflict"
	KindUnauthenticated  Kind = "unauthenticated"
	KindRateLimited      Kind = "rate_limited"
	KindInternal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a kinded error. Package sentinels are declared with New so that
// errors.Is keeps working on the sentinel itself.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user facing message for err. Internal errors are
// never exposed verbatim.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

package types

import "errors"

// ErrorKind is the taxonomy every backend failure is normalised into.
type ErrorKind string

const (
	ErrNetwork           ErrorKind = "network"
	ErrAuthExpired       ErrorKind = "auth_expired"
	ErrValidation        ErrorKind = "validation"
	ErrInsufficientFunds ErrorKind = "insufficient_funds"
	ErrServerRejected    ErrorKind = "server_rejected"
	ErrUnknown           ErrorKind = "unknown"
)

// ClassifiedError is the single error shape the rest of the client sees.
// Raw transport errors and unparsed response bodies never cross a component
// boundary.
type ClassifiedError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
}

func (e *ClassifiedError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// ValidationError builds a locally-detected Validation failure (no HTTP
// status; no network call was made).
func ValidationError(message string) *ClassifiedError {
	return &ClassifiedError{Kind: ErrValidation, Message: message}
}

// AsClassified unwraps err into a ClassifiedError if it is one.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// KindOf reports the taxonomy kind of err, ErrUnknown for anything that is
// not a ClassifiedError.
func KindOf(err error) ErrorKind {
	if ce, ok := AsClassified(err); ok {
		return ce.Kind
	}
	return ErrUnknown
}

// internal/util/errors.go
// Standard application error values.

package util

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    string // e.g., "bad_input", "not_found", "store_unavailable", "internal"
	Message string
}

func (e AppError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func BadInput(msg string) AppError { return AppError{Code: "bad_input", Message: msg} }
func NotFound(msg string) AppError { return AppError{Code: "not_found", Message: msg} }
func Internal(msg string) AppError { return AppError{Code: "internal", Message: msg} }

// StoreUnavailable marks a failed persistence boundary. Callers treat it as
// recoverable: the pipeline keeps serving whatever snapshot is in memory or
// in the local fallback store.
func StoreUnavailable(msg string) AppError {
	return AppError{Code: "store_unavailable", Message: msg}
}

// IsStoreUnavailable reports whether err carries the store_unavailable code.
func IsStoreUnavailable(err error) bool {
	var ae AppError
	return errors.As(err, &ae) && ae.Code == "store_unavailable"
}

// IsBadInput reports whether err carries the bad_input code.
func IsBadInput(err error) bool {
	var ae AppError
	return errors.As(err, &ae) && ae.Code == "bad_input"
}

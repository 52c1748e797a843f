package exceptions

import (
	"errors"
	"fmt"
	"provider-directory/internal/pkg/constvars"
	"runtime"
)

// Kind classifies a failure so callers can branch without matching on messages.
type Kind string

const (
	KindUnauthenticated       Kind = "UNAUTHENTICATED"
	KindNotFound              Kind = "NOT_FOUND"
	KindRemoteRejected        Kind = "REMOTE_REJECTED"
	KindPatchRejected         Kind = "PATCH_REJECTED"
	KindDuplicatePractitioner Kind = "DUPLICATE_PRACTITIONER"
	KindInvalidCode           Kind = "INVALID_CODE"
	KindPaginationFailed      Kind = "PAGINATION_FAILED"
	KindRemoteUnavailable     Kind = "REMOTE_UNAVAILABLE"
	KindInvalidInput          Kind = "INVALID_INPUT"
	KindRateLimited           Kind = "RATE_LIMITED"
	KindInternal              Kind = "INTERNAL"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          Kind       `json:"kind,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"-"`
	Locations     []Location `json:"-"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err (which may be nil) and records the caller location.
// When err is itself a CustomError its locations are carried over so the trail survives rewrapping.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		Kind:          KindInternal,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Err:           err,
		Locations:     []Location{getLocation(2)},
	}
	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())

		var inner *CustomError
		if errors.As(err, &inner) {
			customErr.Locations = append(customErr.Locations, inner.Locations...)
		}
	}
	return customErr
}

func buildKindError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Err:           err,
		Locations:     []Location{getLocation(3)},
	}
	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return customErr
}

// KindOf returns the Kind of the outermost CustomError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	for err != nil {
		var customErr *CustomError
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Kind == kind {
			return true
		}
		err = customErr.Err
	}
	return false
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

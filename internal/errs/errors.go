// Package errs provides the unified error type used across the gateway.
//
// Every subsystem (store driver, HTTP handlers, …) wraps its native errors
// into *errs.Error before returning them to callers. The Code is a closed
// enumeration with a fixed HTTP status mapping, so the client-facing contract
// never depends on provider-specific error shapes.
//
// Usage:
//
//	// In the store driver — wrap native errors:
//	return errs.Wrap(errs.CodeServiceTimeout, "list timed out", err)
//
//	// At the handler boundary — classify any error:
//	e := errs.From(err)
//	w.WriteHeader(e.HTTPStatus())
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code categorises an error without exposing provider-specific identifiers.
// The store driver maps every native error to exactly one Code; codes are
// stable strings and serialize as-is in error responses.
type Code string

const (
	CodeBucketNotFound         Code = "BucketNotFound"
	CodeObjectNotFound         Code = "ObjectNotFound"
	CodeAuthInvalidCredentials Code = "AuthInvalidCredentials"
	CodeAuthMissingCredentials Code = "AuthMissingCredentials"
	CodeAuthPermissionDenied   Code = "AuthPermissionDenied"
	CodeValidationInvalidKey   Code = "ValidationInvalidKey"
	CodeValidationMissingQuery Code = "ValidationMissingQuery"
	CodeValidationInvalidRange Code = "ValidationInvalidRange"
	CodeValidationInvalidParam Code = "ValidationInvalidParam"
	CodeValidationFileTooLarge Code = "ValidationFileTooLarge"
	CodeResourceConflict       Code = "ResourceConflict"
	CodeServiceError           Code = "ServiceError"
	CodeServiceTimeout         Code = "ServiceTimeout"
	CodeServiceRateLimited     Code = "ServiceRateLimited"
	CodeNetworkError           Code = "NetworkError"
	CodeInternalError          Code = "InternalError"
)

// HTTPStatus returns the fixed HTTP status for a code. Unknown codes fall
// back to 500 so a taxonomy gap can never produce a misleading success status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBucketNotFound, CodeObjectNotFound:
		return http.StatusNotFound
	case CodeAuthInvalidCredentials, CodeAuthMissingCredentials:
		return http.StatusUnauthorized
	case CodeAuthPermissionDenied:
		return http.StatusForbidden
	case CodeValidationInvalidKey, CodeValidationMissingQuery, CodeValidationInvalidParam:
		return http.StatusBadRequest
	case CodeValidationFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeValidationInvalidRange:
		return http.StatusRequestedRangeNotSatisfiable
	case CodeResourceConflict:
		return http.StatusConflict
	case CodeServiceRateLimited:
		return http.StatusTooManyRequests
	case CodeServiceError, CodeNetworkError:
		return http.StatusBadGateway
	case CodeServiceTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single error type returned by all gateway subsystems.
// Message is always safe to echo to a client; Cause carries the original
// provider-level error and is used for logging only.
type Error struct {
	Code    Code
	Message string
	Details map[string]string // optional diagnostic context (bucket, key, …)
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status for this error's code.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetail returns e with an extra diagnostic key/value attached.
// Empty values are skipped so callers can pass optional context unconditionally.
func (e *Error) WithDetail(key, value string) *Error {
	if value == "" {
		return e
	}
	if e.Details == nil {
		e.Details = make(map[string]string, 2)
	}
	e.Details[key] = value
	return e
}

// --- Constructors ---

// New creates an *Error with the given code and message and no cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given code, message, and underlying cause.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// From extracts the *Error from err's chain, or classifies err as an
// InternalError with a generic message. The original error text is kept in
// Cause for logging but never placed in Message, so unclassified provider
// errors cannot leak detail to clients.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeInternalError,
		Message: "an unexpected internal error occurred",
		Cause:   err,
	}
}

// --- Predicates ---

// IsNotFound reports whether err represents a missing bucket or object.
func IsNotFound(err error) bool {
	c := codeOf(err)
	return c == CodeBucketNotFound || c == CodeObjectNotFound
}

// IsAuth reports whether err is a credential or permission failure.
func IsAuth(err error) bool {
	switch codeOf(err) {
	case CodeAuthInvalidCredentials, CodeAuthMissingCredentials, CodeAuthPermissionDenied:
		return true
	}
	return false
}

// IsValidation reports whether err was caused by bad input from the caller.
func IsValidation(err error) bool {
	switch codeOf(err) {
	case CodeValidationInvalidKey, CodeValidationMissingQuery,
		CodeValidationInvalidRange, CodeValidationInvalidParam,
		CodeValidationFileTooLarge:
		return true
	}
	return false
}

// IsTransient reports whether err is a retryable service-side condition.
// The gateway itself never retries; this is advisory for callers.
func IsTransient(err error) bool {
	switch codeOf(err) {
	case CodeServiceError, CodeServiceTimeout, CodeServiceRateLimited, CodeNetworkError:
		return true
	}
	return false
}

// codeOf extracts the Code from any error in the chain.
func codeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

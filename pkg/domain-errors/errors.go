// Package domainerrors provides coded errors that flow from services and
// validators up to the HTTP layer, where codes map onto status codes and a
// JSON error envelope. Stores return sentinel errors instead; services
// translate them into these.
package domainerrors

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeBadRequest          Code = "bad_request"
	CodeValidation          Code = "validation_failed"
	CodeNotFound            Code = "not_found"
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"
	CodeInternal            Code = "internal_error"
	CodeEmailExists         Code = "email_exists"
	CodePersonalIDExists    Code = "personal_id_exists"
	CodeAccountNumberExists Code = "account_number_exists"
	CodeNegativeBalance     Code = "negative_balance"
)

// Error carries a machine-readable code plus a human-readable description.
// Field is set for validation failures to point at the offending input.
type Error struct {
	Code        Code
	Description string
	Field       string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return string(e.Code) + ": " + e.Field + ": " + e.Description
	}
	return string(e.Code) + ": " + e.Description
}

func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// WithField returns a validation error annotated with the failing field name.
func WithField(code Code, field, description string) *Error {
	return &Error{Code: code, Description: description, Field: field}
}

// Is reports whether err is (or wraps) a domain error with the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps an error code to the status the HTTP layer should write.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeNegativeBalance:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeEmailExists, CodePersonalIDExists, CodeAccountNumberExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

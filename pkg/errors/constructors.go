package errors

import "fmt"

// New creates a new Error with the given code and message.
//
// Example:
//
//	err := errors.New(errors.CodeValidationRequired, "email is required")
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with the given code and a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeNotFoundUser, "user %q not found", email)
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a code and message; the wrapped error
// becomes the Cause. Returns nil if err is nil.
//
// Example:
//
//	row := db.QueryRow(ctx, sql, email)
//	if err := row.Scan(&u.ID); err != nil {
//	    return nil, errors.Wrap(err, errors.CodeInternalDatabase, "users: scan failed")
//	}
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with a code and a formatted message.
// Returns nil if err is nil.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Validation creates a new validation error (CodeValidation).
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a new validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Unauthorized creates a new authentication error (CodeAuthentication).
// Use for rejected credentials and any failure that should read as
// "authentication failed" without revealing which step failed.
func Unauthorized(message string) *Error {
	return New(CodeAuthentication, message)
}

// Forbidden creates a new authorization error (CodeAuthorizationDenied).
// Use when an authenticated principal lacks a required authority.
func Forbidden(message string) *Error {
	return New(CodeAuthorizationDenied, message)
}

// NotFound creates a new not found error (CodeNotFound).
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// Conflict creates a new conflict error (CodeConflictAlreadyExists).
func Conflict(message string) *Error {
	return New(CodeConflictAlreadyExists, message)
}

// Internal creates a new internal error (CodeInternal).
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

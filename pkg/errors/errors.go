// Package errors provides the structured error types used throughout the
// StricklySoft user service. It defines error codes grouped by category,
// a single Error type carrying code, message, and cause, and helpers for
// creating, wrapping, and inspecting errors at the HTTP boundary.
//
// # Error Categories
//
// Categories map directly onto the failure modes of an authentication gate:
//
//   - Validation errors: malformed registration or login payloads
//   - Authentication errors: bad credentials, expired or malformed tokens
//   - Authorization errors: authenticated principal lacks an authority
//   - NotFound errors: user lookup miss in the store
//   - Conflict errors: duplicate email at registration
//   - Internal errors: unexpected failures (signing, database, config)
//   - Unavailable errors: the user database cannot be reached
//   - Timeout errors: a store operation exceeded its deadline
//
// # Error Codes
//
// Every error carries a machine-readable code (e.g. "AUTH_003") following
// the pattern CATEGORY_XXX. Codes are stable and are the only thing the
// HTTP layer switches on; messages are free to change.
//
// # Usage
//
// Create a new error:
//
//	err := errors.New(errors.CodeAuthenticationInvalid, "auth: token is malformed")
//
// Wrap an underlying cause:
//
//	err := errors.Wrap(err, errors.CodeInternalDatabase, "users: lookup failed")
//
// Branch on category at the boundary:
//
//	if errors.IsAuthentication(err) {
//	    // respond 401
//	}
package errors

package errors

import "strings"

// Code is a machine-readable error code in CATEGORY_XXX form, where
// CATEGORY is a short identifier (VAL, AUTH, AUTHZ, ...) and XXX is a
// three-digit number. Codes are stable once assigned; client-side error
// handling and alerting key off of them.
type Code string

// Error code catalog for the user service. Code ranges and their HTTP
// mapping (see [Error.HTTPStatus]):
//
//	VAL_xxx     - Validation errors (400 Bad Request)
//	AUTH_xxx    - Authentication errors (401 Unauthorized)
//	AUTHZ_xxx   - Authorization errors (403 Forbidden)
//	NF_xxx      - Not found errors (404 Not Found)
//	CONF_xxx    - Conflict errors (409 Conflict)
//	INT_xxx     - Internal errors (500 Internal Server Error)
//	UNAVAIL_xxx - Service unavailable (503 Service Unavailable)
//	TIMEOUT_xxx - Timeout errors (504 Gateway Timeout)
const (
	// Validation errors (VAL_xxx) - HTTP 400
	// Returned when a registration or login payload fails validation.

	// CodeValidation indicates a general validation failure.
	CodeValidation Code = "VAL_001"

	// CodeValidationRequired indicates a required field is missing.
	CodeValidationRequired Code = "VAL_002"

	// CodeValidationFormat indicates a field has an invalid format
	// (e.g. a malformed email address or an unknown role name).
	CodeValidationFormat Code = "VAL_003"

	// Authentication errors (AUTH_xxx) - HTTP 401
	// Returned for bad login credentials and unusable bearer tokens.
	// Token errors deliberately collapse malformed, bad-signature, and
	// expired into this one category: callers only need to distinguish
	// "usable" from "not usable".

	// CodeAuthentication indicates a general authentication failure,
	// including rejected login credentials.
	CodeAuthentication Code = "AUTH_001"

	// CodeAuthenticationExpired indicates the bearer token has expired.
	CodeAuthenticationExpired Code = "AUTH_002"

	// CodeAuthenticationInvalid indicates the bearer token is malformed
	// or its signature does not verify.
	CodeAuthenticationInvalid Code = "AUTH_003"

	// Authorization errors (AUTHZ_xxx) - HTTP 403
	// Returned when an authenticated principal lacks a required authority.

	// CodeAuthorization indicates a general authorization failure.
	CodeAuthorization Code = "AUTHZ_001"

	// CodeAuthorizationDenied indicates access to a route is denied by
	// the route rule table.
	CodeAuthorizationDenied Code = "AUTHZ_002"

	// Not found errors (NF_xxx) - HTTP 404

	// CodeNotFound indicates a general not found error.
	CodeNotFound Code = "NF_001"

	// CodeNotFoundUser indicates the user lookup by email missed.
	// The authentication pipeline normalizes this to CodeAuthentication
	// before it reaches a client, to avoid user enumeration.
	CodeNotFoundUser Code = "NF_002"

	// Conflict errors (CONF_xxx) - HTTP 409

	// CodeConflict indicates a general conflict error.
	CodeConflict Code = "CONF_001"

	// CodeConflictAlreadyExists indicates a registration attempt with an
	// email that is already taken.
	CodeConflictAlreadyExists Code = "CONF_002"

	// Internal errors (INT_xxx) - HTTP 500

	// CodeInternal indicates a general internal error.
	CodeInternal Code = "INT_001"

	// CodeInternalDatabase indicates a user store operation failed.
	CodeInternalDatabase Code = "INT_002"

	// CodeInternalConfiguration indicates a configuration error, such as
	// a signing secret that is not valid base64.
	CodeInternalConfiguration Code = "INT_003"

	// Unavailable errors (UNAVAIL_xxx) - HTTP 503

	// CodeUnavailable indicates a general service unavailable error.
	CodeUnavailable Code = "UNAVAIL_001"

	// CodeUnavailableDependency indicates the user database is unreachable.
	CodeUnavailableDependency Code = "UNAVAIL_002"

	// Timeout errors (TIMEOUT_xxx) - HTTP 504

	// CodeTimeout indicates a general timeout error.
	CodeTimeout Code = "TIMEOUT_001"

	// CodeTimeoutDatabase indicates a user store operation timed out.
	CodeTimeoutDatabase Code = "TIMEOUT_002"
)

// Category returns the category portion of the code (the part before the
// underscore), e.g. "AUTH" for "AUTH_002". Returns the whole code if it
// has no underscore.
func (c Code) Category() string {
	if i := strings.IndexByte(string(c), '_'); i >= 0 {
		return string(c[:i])
	}
	return string(c)
}

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

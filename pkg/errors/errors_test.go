package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     Code
		category string
	}{
		{CodeValidation, "VAL"},
		{CodeAuthenticationExpired, "AUTH"},
		{CodeAuthorizationDenied, "AUTHZ"},
		{CodeNotFoundUser, "NF"},
		{CodeConflictAlreadyExists, "CONF"},
		{CodeInternalDatabase, "INT"},
		{CodeUnavailableDependency, "UNAVAIL"},
		{CodeTimeoutDatabase, "TIMEOUT"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, tt.code.Category(), "code %s", tt.code)
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := goerrors.New("connection refused")
	err := Wrap(cause, CodeInternalDatabase, "failed to load user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INT_002")
	assert.Contains(t, err.Error(), "failed to load user")
	assert.True(t, goerrors.Is(err, cause))
}

func TestWrapNilReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, CodeInternal, "ignored %d", 1))
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		code   Code
		status int
	}{
		{"validation maps to 400", CodeValidationRequired, http.StatusBadRequest},
		{"authentication maps to 401", CodeAuthenticationInvalid, http.StatusUnauthorized},
		{"authorization maps to 403", CodeAuthorizationDenied, http.StatusForbidden},
		{"not found maps to 404", CodeNotFoundUser, http.StatusNotFound},
		{"conflict maps to 409", CodeConflictAlreadyExists, http.StatusConflict},
		{"internal maps to 500", CodeInternalDatabase, http.StatusInternalServerError},
		{"unavailable maps to 503", CodeUnavailableDependency, http.StatusServiceUnavailable},
		{"timeout maps to 504", CodeTimeoutDatabase, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := New(tt.code, "boom")
			assert.Equal(t, tt.status, err.HTTPStatus())
		})
	}
}

func TestWithDetail(t *testing.T) {
	t.Parallel()

	err := New(CodeValidationFormat, "bad email").
		WithDetail("field", "email").
		WithDetail("value", "not-an-address")

	assert.Equal(t, "email", err.Details["field"])
	assert.Equal(t, "not-an-address", err.Details["value"])
}

func TestAsErrorAndGetCode(t *testing.T) {
	t.Parallel()

	plain := goerrors.New("plain")
	_, ok := AsError(plain)
	assert.False(t, ok)
	assert.Equal(t, Code(""), GetCode(plain))
	assert.Equal(t, Code(""), GetCode(nil))

	err := New(CodeNotFoundUser, "missing")
	wrapped := fmt.Errorf("outer: %w", err)

	serr, ok := AsError(wrapped)
	require.True(t, ok)
	require.NotNil(t, serr)
	assert.Equal(t, CodeNotFoundUser, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeNotFoundUser))
	assert.False(t, HasCode(wrapped, CodeConflict))
}

func TestCategoryPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAuthentication(New(CodeAuthenticationExpired, "expired")))
	assert.True(t, IsAuthorization(New(CodeAuthorizationDenied, "denied")))
	assert.True(t, IsNotFound(New(CodeNotFoundUser, "missing")))
	assert.True(t, IsConflict(New(CodeConflictAlreadyExists, "dup")))
	assert.True(t, IsValidation(New(CodeValidationRequired, "required")))
	assert.True(t, IsTimeout(New(CodeTimeoutDatabase, "slow")))

	assert.False(t, IsAuthentication(New(CodeAuthorizationDenied, "denied")))
	assert.False(t, IsNotFound(goerrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

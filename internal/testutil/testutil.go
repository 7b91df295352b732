// Package testutil holds shared test helpers.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// RequireErrorCode fails the test immediately unless err carries the
// expected code.
func RequireErrorCode(t *testing.T, err error, code sserr.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, code, sserr.GetCode(err),
		"expected error code %s, got %s (error: %v)", code, sserr.GetCode(err), err)
}

// AssertErrorCode records a failure unless err carries the expected
// code, but lets the test continue.
func AssertErrorCode(t *testing.T, err error, code sserr.Code) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	assert.Equalf(t, code, sserr.GetCode(err),
		"expected error code %s, got %s (error: %v)", code, sserr.GetCode(err), err)
}

// TestSigningSecret is a standard base64 encoded 32 byte secret usable
// with the token codec. Test fixtures only.
const TestSigningSecret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

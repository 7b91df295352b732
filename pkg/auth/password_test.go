package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/StricklySoft/stricklysoft-userservice/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

func TestPasswordHashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "s3cret")

	assert.NoError(t, hasher.Compare(hash, "s3cret"))

	err = hasher.Compare(hash, "wrong")
	testutil.RequireErrorCode(t, err, sserr.CodeAuthentication)
}

func TestPasswordHashRejectsEmpty(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	_, err := hasher.Hash("")
	testutil.RequireErrorCode(t, err, sserr.CodeValidationRequired)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	a, err := hasher.Hash("same-password")
	require.NoError(t, err)
	b, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordCompareCorruptHash(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	err := hasher.Compare("not-a-bcrypt-hash", "anything")
	testutil.RequireErrorCode(t, err, sserr.CodeInternal)
}

func TestNewPasswordHasherCostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}

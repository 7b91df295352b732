package auth

import (
	goerrors "errors"

	"golang.org/x/crypto/bcrypt"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// PasswordHasher hashes and verifies passwords with bcrypt. The zero
// value is not usable; construct with [NewPasswordHasher].
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. A cost
// outside bcrypt's supported range falls back to the library default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of the password. Empty passwords are
// rejected before hashing.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", sserr.New(sserr.CodeValidationRequired, "password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", sserr.Wrap(err, sserr.CodeInternal, "failed to hash password")
	}
	return string(hash), nil
}

// Compare checks the password against a stored bcrypt hash. A mismatch
// returns an authentication error; corrupt hashes surface as internal
// errors.
func (h *PasswordHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if goerrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return sserr.Wrap(err, sserr.CodeAuthentication, "password does not match")
	}
	return sserr.Wrap(err, sserr.CodeInternal, "failed to compare password hash")
}

package auth

import (
	"context"
	"log/slog"
	"net/mail"

	"github.com/google/uuid"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// msgInvalidCredentials is the single message returned for every login
// failure. Unknown email and wrong password are indistinguishable to
// the caller, so the login endpoint cannot be used to enumerate
// registered addresses.
const msgInvalidCredentials = "Invalid username or password"

// RegisterRequest carries the fields of a registration call.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

// Validate checks the request fields before any work is done.
func (r *RegisterRequest) Validate() error {
	switch {
	case r.FirstName == "":
		return sserr.New(sserr.CodeValidationRequired, "firstName is required")
	case r.LastName == "":
		return sserr.New(sserr.CodeValidationRequired, "lastName is required")
	case r.Email == "":
		return sserr.New(sserr.CodeValidationRequired, "email is required")
	case r.Password == "":
		return sserr.New(sserr.CodeValidationRequired, "password is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return sserr.New(sserr.CodeValidationFormat, "email is not a valid address")
	}
	if !r.Role.Valid() {
		return sserr.Newf(sserr.CodeValidationFormat, "role must be one of %s, %s", RoleAdmin, RoleMember)
	}
	return nil
}

// LoginRequest carries the credentials of an authentication call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserStore persists and resolves principals. ByEmail follows the
// [PrincipalResolver] contract; Create returns an error carrying
// errors.CodeConflictAlreadyExists when the email is taken.
type UserStore interface {
	PrincipalResolver
	Create(ctx context.Context, p *Principal) error
}

// Service implements registration and login on top of a user store, a
// password hasher, and a token codec.
type Service struct {
	store  UserStore
	codec  *TokenCodec
	hasher *PasswordHasher
}

// NewService builds the authentication service.
func NewService(store UserStore, codec *TokenCodec, hasher *PasswordHasher) *Service {
	return &Service{store: store, codec: codec, hasher: hasher}
}

// Register creates a user from the request and returns a freshly issued
// token for it. The password is hashed before the principal ever
// reaches the store. Duplicate emails surface as a conflict error.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", err
	}

	principal := &Principal{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.store.Create(ctx, principal); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "registered user",
		slog.String("email", principal.Email),
		slog.String("role", string(principal.Role)))

	return s.codec.Issue(ctx, principal)
}

// Authenticate verifies the credentials and returns a freshly issued
// token. Lookup misses and password mismatches are both reported as the
// same generic authentication error; nothing is written during login.
func (s *Service) Authenticate(ctx context.Context, req *LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", sserr.New(sserr.CodeAuthentication, msgInvalidCredentials)
	}

	principal, err := s.store.ByEmail(ctx, req.Email)
	if err != nil {
		if sserr.IsNotFound(err) || sserr.IsAuthentication(err) {
			return "", sserr.New(sserr.CodeAuthentication, msgInvalidCredentials)
		}
		return "", err
	}

	if err := s.hasher.Compare(principal.PasswordHash, req.Password); err != nil {
		if sserr.IsAuthentication(err) {
			return "", sserr.New(sserr.CodeAuthentication, msgInvalidCredentials)
		}
		return "", err
	}

	return s.codec.Issue(ctx, principal)
}

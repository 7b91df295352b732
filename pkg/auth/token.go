package auth

import (
	"context"
	"encoding/base64"
	goerrors "errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

const tracerName = "stricklysoft.userservice.auth"

const (
	// DefaultTokenValidity is the issued token lifetime when the codec
	// is constructed with a zero validity.
	DefaultTokenValidity = 24 * time.Hour

	// minSecretLen is the minimum decoded signing secret length. HS256
	// keys shorter than the hash output weaken the MAC.
	minSecretLen = 32

	// maxTokenSize bounds the token length accepted for parsing,
	// guarding against oversized header payloads.
	maxTokenSize = 8192

	// authoritiesClaim carries the caller's flattened authority list as
	// a comma-joined string.
	authoritiesClaim = "authorities"
)

// signingMethod is the only accepted JWT algorithm. Tokens declaring
// any other algorithm, including "none", fail validation.
var signingMethod = jwt.SigningMethodHS256

// TokenCodec issues and validates the service's HS256 access tokens.
// The signing secret is decoded once at construction and shared by both
// directions, so a token the codec issues is always one it accepts.
// TokenCodec is safe for concurrent use.
type TokenCodec struct {
	key      []byte
	validity time.Duration
	tracer   trace.Tracer
	now      func() time.Time
}

// NewTokenCodec builds a codec from a standard base64 encoded signing
// secret. The decoded secret must be at least 32 bytes. A zero validity
// selects [DefaultTokenValidity].
func NewTokenCodec(base64Secret string, validity time.Duration) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, sserr.Wrap(err, sserr.CodeInternalConfiguration, "signing secret is not valid base64")
	}
	if len(key) < minSecretLen {
		return nil, sserr.Newf(sserr.CodeInternalConfiguration,
			"signing secret must decode to at least %d bytes, got %d", minSecretLen, len(key))
	}
	if validity < 0 {
		return nil, sserr.New(sserr.CodeInternalConfiguration, "token validity must not be negative")
	}
	if validity == 0 {
		validity = DefaultTokenValidity
	}

	return &TokenCodec{
		key:      key,
		validity: validity,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}, nil
}

// Issue signs a token for the principal. The subject is the principal's
// email, the authorities claim is the comma-joined authority list, and
// the expiry is issuance time plus the configured validity.
func (c *TokenCodec) Issue(ctx context.Context, p *Principal) (string, error) {
	_, span := c.tracer.Start(ctx, "auth.Issue",
		trace.WithAttributes(attribute.String("auth.subject", p.Email)))
	defer span.End()

	now := c.now()
	claims := jwt.MapClaims{
		"sub":            p.Email,
		authoritiesClaim: strings.Join(p.Authorities(), ","),
		"iat":            jwt.NewNumericDate(now),
		"exp":            jwt.NewNumericDate(now.Add(c.validity)),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token signing failed")
		return "", sserr.Wrap(err, sserr.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// ExtractSubject validates the token's signature and expiry and returns
// its subject. Malformed tokens, wrong algorithms, bad signatures, and
// expired tokens all fail; expiry is distinguished by its own code so
// callers can log it separately.
func (c *TokenCodec) ExtractSubject(ctx context.Context, token string) (string, error) {
	_, span := c.tracer.Start(ctx, "auth.ExtractSubject")
	defer span.End()

	subject, err := c.extractSubject(token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token validation failed")
		return "", err
	}
	span.SetAttributes(attribute.String("auth.subject", subject))
	return subject, nil
}

func (c *TokenCodec) extractSubject(token string) (string, error) {
	if token == "" {
		return "", sserr.New(sserr.CodeAuthenticationInvalid, "token is empty")
	}
	if len(token) > maxTokenSize {
		return "", sserr.New(sserr.CodeAuthenticationInvalid, "token exceeds maximum size")
	}

	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return "", sserr.Wrap(err, sserr.CodeAuthenticationExpired, "token has expired")
		}
		return "", sserr.Wrap(err, sserr.CodeAuthenticationInvalid, "token is invalid")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", sserr.New(sserr.CodeAuthenticationInvalid, "token has no subject")
	}
	return subject, nil
}

// Verify reports whether the token is valid and bound to the expected
// subject. Any validation failure, including expiry, yields false.
func (c *TokenCodec) Verify(ctx context.Context, token, expectedSubject string) bool {
	subject, err := c.ExtractSubject(ctx, token)
	if err != nil {
		return false
	}
	return subject == expectedSubject
}

// Validity returns the configured token lifetime.
func (c *TokenCodec) Validity() time.Duration {
	return c.validity
}

// Package users implements persistence for registered users on top of
// the PostgreSQL client.
package users

import (
	"context"
	goerrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/StricklySoft/stricklysoft-userservice/pkg/auth"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/clients/postgres"
	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// Schema creates the users table. Applied by migrations in deployment
// and by the integration tests directly.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL
)`

// uniqueViolation is the PostgreSQL error code raised when an insert
// hits the unique index on email.
const uniqueViolation = "23505"

const (
	selectByEmailSQL = `SELECT id, email, first_name, last_name, password_hash, role
FROM users WHERE email = $1`

	insertSQL = `INSERT INTO users (id, email, first_name, last_name, password_hash, role)
VALUES ($1, $2, $3, $4, $5, $6)`
)

// PostgresStore is the production [auth.UserStore]. It is safe for
// concurrent use.
type PostgresStore struct {
	client *postgres.Client
}

// NewPostgresStore wraps a connected client.
func NewPostgresStore(client *postgres.Client) *PostgresStore {
	return &PostgresStore{client: client}
}

// ByEmail returns the user registered under the email. A miss carries
// errors.CodeNotFoundUser so callers can distinguish it from database
// failures.
func (s *PostgresStore) ByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	row := s.client.QueryRow(ctx, selectByEmailSQL, email)

	var (
		p    auth.Principal
		role string
	)
	err := row.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.PasswordHash, &role)
	if err != nil {
		if goerrors.Is(err, pgx.ErrNoRows) {
			return nil, sserr.Newf(sserr.CodeNotFoundUser, "no user registered under %s", email)
		}
		return nil, sserr.Wrap(err, sserr.CodeInternalDatabase, "failed to load user by email")
	}
	p.Role = auth.Role(role)
	return &p, nil
}

// Create inserts the user. A duplicate email surfaces as a conflict
// error.
func (s *PostgresStore) Create(ctx context.Context, p *auth.Principal) error {
	_, err := s.client.Exec(ctx, insertSQL,
		p.ID, p.Email, p.FirstName, p.LastName, p.PasswordHash, string(p.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if goerrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sserr.Newf(sserr.CodeConflictAlreadyExists, "user %s already exists", p.Email)
		}
		return sserr.Wrap(err, sserr.CodeInternalDatabase, "failed to create user")
	}
	return nil
}

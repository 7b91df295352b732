// Package postgres provides the PostgreSQL client used by the user
// service to persist registered users.
//
// The client wraps a pgxpool.Pool behind the [Pool] interface so that
// store tests can substitute a pgxmock pool via [NewFromPool]. Every
// query is wrapped in an OpenTelemetry span carrying the database
// semantic attributes and a truncated copy of the SQL text.
//
// Usage:
//
//	cfg := postgres.DefaultConfig()
//	cfg.Password = postgres.Secret(os.Getenv("POSTGRES_PASSWORD"))
//	client, err := postgres.NewClient(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package postgres

import (
	"context"
	goerrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

const tracerName = "stricklysoft.userservice.postgres"

// Pool is the subset of pgxpool.Pool the client depends on. It matches
// the interface implemented by pgxmock, so unit tests can run against a
// mock pool without a running database.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Client is a PostgreSQL client scoped to a single database. It is safe
// for concurrent use.
type Client struct {
	pool     Pool
	database string
	tracer   trace.Tracer
}

// NewClient connects to PostgreSQL using the given configuration and
// verifies the connection with a ping. The context bounds the initial
// connection attempt.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, sserr.New(sserr.CodeInternalConfiguration, "postgres config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, sserr.Wrap(err, sserr.CodeInternalConfiguration, "invalid postgres config")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, sserr.Wrap(err, sserr.CodeInternalConfiguration, "failed to parse postgres connection string")
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, sserr.Wrap(err, sserr.CodeUnavailableDependency, "failed to create postgres connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, wrapError(err, "failed to ping postgres")
	}

	return &Client{
		pool:     pool,
		database: cfg.Database,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// NewFromPool wraps an existing pool. Intended for tests that inject a
// pgxmock pool.
func NewFromPool(pool Pool, database string) *Client {
	return &Client{
		pool:     pool,
		database: database,
		tracer:   otel.Tracer(tracerName),
	}
}

// Query executes a query that returns rows. The caller must close the
// returned rows.
func (c *Client) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ctx, span := c.startSpan(ctx, "postgres.Query", sql)
	defer span.End()

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, c.finishSpan(span, err, "query failed")
	}
	return rows, nil
}

// QueryRow executes a query expected to return at most one row. Errors
// are deferred to the row's Scan.
func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, span := c.startSpan(ctx, "postgres.QueryRow", sql)
	defer span.End()

	return c.pool.QueryRow(ctx, sql, args...)
}

// Exec executes a statement that returns no rows, such as INSERT or
// UPDATE.
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, span := c.startSpan(ctx, "postgres.Exec", sql)
	defer span.End()

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return pgconn.CommandTag{}, c.finishSpan(span, err, "exec failed")
	}
	return tag, nil
}

// Begin starts a transaction. The caller is responsible for committing
// or rolling it back.
func (c *Client) Begin(ctx context.Context) (pgx.Tx, error) {
	ctx, span := c.startSpan(ctx, "postgres.Begin", "")
	defer span.End()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, c.finishSpan(span, err, "begin transaction failed")
	}
	return tx, nil
}

// Health pings the database. When the context carries no deadline a
// default timeout applies.
func (c *Client) Health(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultHealthTimeout)
		defer cancel()
	}

	ctx, span := c.startSpan(ctx, "postgres.Health", "")
	defer span.End()

	if err := c.pool.Ping(ctx); err != nil {
		return c.finishSpan(span, err, "health check failed")
	}
	return nil
}

// Close releases all pooled connections. The client must not be used
// afterwards.
func (c *Client) Close() {
	c.pool.Close()
}

// Pool exposes the underlying pool for callers that need pgx features
// the client does not wrap, such as CopyFrom.
func (c *Client) Pool() Pool {
	return c.pool
}

// ---- tracing and error helpers ----

func (c *Client) startSpan(ctx context.Context, name, sql string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.name", c.database),
	}
	if sql != "" {
		attrs = append(attrs, attribute.String("db.statement", truncateSQL(sql)))
	}
	return c.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func (c *Client) finishSpan(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return wrapError(err, msg)
}

// wrapError classifies a pgx error: context deadline and cancellation
// become database timeouts, everything else an internal database error.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.Is(err, context.DeadlineExceeded) || goerrors.Is(err, context.Canceled) {
		return sserr.Wrap(err, sserr.CodeTimeoutDatabase, msg)
	}
	return sserr.Wrap(err, sserr.CodeInternalDatabase, msg)
}

// Command userservice runs the user service: registration and login
// endpoints that mint JWT access tokens, and the authentication gate
// protecting the management endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/StricklySoft/stricklysoft-userservice/pkg/auth"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/clients/postgres"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/config"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/httpapi"
	"github.com/StricklySoft/stricklysoft-userservice/pkg/users"
)

// Config is the full service configuration. Environment variables are
// prefixed with USERSERVICE_.
type Config struct {
	// ListenAddr is the address the HTTP server binds.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080" yaml:"listen_addr"`

	// SigningSecret is the standard base64 encoded JWT signing secret,
	// redacted in all output.
	SigningSecret auth.Secret `env:"JWT_SECRET" yaml:"-" required:"true"`

	// TokenValidity is the lifetime of issued access tokens.
	TokenValidity time.Duration `env:"TOKEN_VALIDITY" envDefault:"24h" yaml:"token_validity"`

	// BcryptCost is the bcrypt work factor for password hashing. Zero
	// selects the library default.
	BcryptCost int `env:"BCRYPT_COST" yaml:"bcrypt_cost"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT or SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s" yaml:"shutdown_timeout"`

	// Postgres configures the user store database.
	Postgres postgres.Config `yaml:"postgres"`
}

// Validate delegates to the database config after the tag checks run.
func (c *Config) Validate() error {
	return c.Postgres.Validate()
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("userservice exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad[Config](
		config.New().
			WithEnvPrefix("USERSERVICE").
			WithFile(os.Getenv("USERSERVICE_CONFIG")),
	)

	codec, err := auth.NewTokenCodec(cfg.SigningSecret.Value(), cfg.TokenValidity)
	if err != nil {
		return err
	}

	client, err := postgres.NewClient(ctx, &cfg.Postgres)
	if err != nil {
		return err
	}
	defer client.Close()

	store := users.NewPostgresStore(client)
	svc := auth.NewService(store, codec, auth.NewPasswordHasher(cfg.BcryptCost))
	server := httpapi.NewServer(svc)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Handler(codec, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("userservice listening", slog.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

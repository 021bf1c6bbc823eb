package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/gatehouse-dev/gatehouse/api"
	"github.com/gatehouse-dev/gatehouse/auth"
	"github.com/gatehouse-dev/gatehouse/internal/config"
	"github.com/gatehouse-dev/gatehouse/internal/redact"
	bboltstore "github.com/gatehouse-dev/gatehouse/store/bbolt"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gatehouse server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitViper(configFile)
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		logger := slog.New(redact.NewHandler(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Server.LogLevel),
		})))

		db, err := bboltstore.NewStoreFromFile(cfg.Storage.Path, nil)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer db.Close()

		hasher, err := selectHasher(cfg.Auth.PasswordHasher)
		if err != nil {
			return err
		}

		strategy, err := selectStrategy(cfg, db, hasher)
		if err != nil {
			return err
		}

		svc := auth.NewService(db, hasher)
		a := api.New(db, svc, strategy,
			api.WithLogger(logger),
			api.WithCookieName(cfg.Session.CookieName),
		)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})
		r.Handle("/metrics", a.MetricsHandler())

		r.Mount("/api/v1", a.Router())
		r.Mount("/", a.AccountRouter())

		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		logger.Info("server started",
			"addr", cfg.Server.Addr,
			"auth_type", cfg.Auth.Type,
			"storage", cfg.Storage.Path,
		)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// selectStrategy builds the gate strategy from the configured auth type. The
// session variants differ only in the store composition behind them.
func selectStrategy(cfg *config.Config, db *bboltstore.Store, hasher auth.Hasher) (auth.Strategy, error) {
	excluded := cfg.Auth.ExcludedPaths
	cookieName := cfg.Session.CookieName

	switch cfg.Auth.Type {
	case "null":
		return auth.NullStrategy{}, nil
	case "basic":
		return auth.NewBasicStrategy(db, hasher, excluded), nil
	case "session":
		return auth.NewSessionStrategy(db, auth.NewMemorySessionStore(), cookieName, excluded), nil
	case "session_exp":
		sessions := auth.NewExpiringSessionStore(auth.NewMemorySessionStore(), cfg.Session.TTL())
		return auth.NewSessionStrategy(db, sessions, cookieName, excluded), nil
	case "session_db":
		sessions := auth.NewExpiringSessionStore(auth.NewPersistentSessionStore(db), cfg.Session.TTL())
		return auth.NewSessionStrategy(db, sessions, cookieName, excluded), nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}
}

func selectHasher(name string) (auth.Hasher, error) {
	switch name {
	case "", "bcrypt":
		return auth.BcryptHasher{}, nil
	case "argon2id":
		return auth.Argon2idHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

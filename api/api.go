package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/gatehouse-dev/gatehouse/auth"
	"github.com/gatehouse-dev/gatehouse/store"
)

// defaultCookieName is the session cookie name used when none is configured.
const defaultCookieName = "gatehouse_session"

// API holds the dependencies needed by the REST handlers.
type API struct {
	users      store.UserStore
	service    *auth.Service
	strategy   auth.Strategy
	sessions   *auth.SessionStrategy
	cookieName string
	audit      *auditLogger
	metrics    *metricsCollector
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithSessionStrategy sets the session strategy used by the session login and
// logout endpoints. When the gate strategy itself is a session strategy it is
// picked up automatically and this option is not needed.
func WithSessionStrategy(s *auth.SessionStrategy) Option {
	return func(a *API) {
		a.sessions = s
	}
}

// WithCookieName overrides the session cookie name written by the
// account-facing login endpoints.
func WithCookieName(name string) Option {
	return func(a *API) {
		a.cookieName = name
	}
}

// New creates a new API instance. strategy guards the gated router; pass an
// auth.NullStrategy (or nil) to leave every route open.
func New(users store.UserStore, service *auth.Service, strategy auth.Strategy, opts ...Option) *API {
	a := &API{
		users:    users,
		service:  service,
		strategy: strategy,
		metrics:  newMetricsCollector(),
	}
	if ss, ok := strategy.(*auth.SessionStrategy); ok {
		a.sessions = ss
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	if a.cookieName == "" {
		if a.sessions != nil && a.sessions.CookieName() != "" {
			a.cookieName = a.sessions.CookieName()
		} else {
			a.cookieName = defaultCookieName
		}
	}
	return a
}

// Router returns the gated API surface. Every route passes through the
// request gate; which of them actually require a principal is decided by the
// strategy's exclusion list.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(a.RequestGate)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Get("/status", a.Status)
	r.Get("/unauthorized", a.Unauthorized)
	r.Get("/forbidden", a.Forbidden)
	r.Get("/users/me", a.Me)
	r.Post("/auth_session/login", a.SessionLogin)
	r.Delete("/auth_session/logout", a.SessionLogout)

	return r
}

// AccountRouter returns the account lifecycle surface: registration, login,
// logout, profile, and the password-reset flow. These routes sit outside the
// request gate; each handler decides access from the session cookie itself.
func (a *API) AccountRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/", a.Welcome)
	r.Post("/users", a.Register)
	r.Post("/sessions", a.Login)
	r.Delete("/sessions", a.Logout)
	r.Get("/profile", a.Profile)
	r.Post("/reset_password", a.ResetToken)
	r.Put("/reset_password", a.UpdatePassword)

	return r
}

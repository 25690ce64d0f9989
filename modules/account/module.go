// Package account exposes the HTTP surface for authentication: sign-in and
// registration forms, logout, and the OAuth redirect/callback pair. Handlers
// render fragments; the response negotiation middleware decides whether a
// fragment ships bare (htmx) or wrapped in the document chrome.
package account

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/i18n"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/svc/auth"
)

// Module bundles the dependencies of the account routes.
type Module struct {
	svc        *auth.Service
	issuer     *auth.TokenIssuer
	sessions   *session.Manager
	translator *i18n.Translator
	providers  map[string]auth.ProviderAdapter
	logger     *slog.Logger
	secure     bool
}

// Option configures the Module.
type Option func(*Module)

// WithLogger sets the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithProvider registers an OAuth provider adapter under its provider ID.
func WithProvider(p auth.ProviderAdapter) Option {
	return func(m *Module) {
		m.providers[p.ProviderID()] = p
	}
}

// WithSecureCookies marks transient cookies Secure, for TLS deployments.
func WithSecureCookies(secure bool) Option {
	return func(m *Module) { m.secure = secure }
}

// NewModule wires the account module.
func NewModule(
	svc *auth.Service,
	issuer *auth.TokenIssuer,
	sessions *session.Manager,
	translator *i18n.Translator,
	opts ...Option,
) *Module {
	m := &Module{
		svc:        svc,
		issuer:     issuer,
		sessions:   sessions,
		translator: translator,
		providers:  make(map[string]auth.ProviderAdapter),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router returns the module's routes, ready to mount at the site root.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", m.home)
	r.Get("/login", m.loginPage)
	r.Post("/login", m.login)
	r.Get("/register", m.registerPage)
	r.Post("/register", m.register)
	r.Post("/logout", m.logout)

	r.Get("/auth/{provider}", m.oauthRedirect)
	r.Get("/auth/{provider}/callback", m.oauthCallback)

	return r
}

func (m *Module) provider(r *http.Request) (auth.ProviderAdapter, bool) {
	p, ok := m.providers[chi.URLParam(r, "provider")]
	return p, ok
}

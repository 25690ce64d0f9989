package account

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authkit"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/views"
)

// TokenCookieName is the cookie carrying the signed session token.
const TokenCookieName = "access_token"

const minPasswordLength = 8

func (m *Module) home(w http.ResponseWriter, r *http.Request) {
	if s, err := m.sessions.Resolve(r.Context(), r); err == nil && s.IsAuthenticated() {
		m.render(w, r, http.StatusOK, views.Profile(m.translator, s.Email, s.Name))
		return
	}
	m.render(w, r, http.StatusOK, views.Home(m.translator))
}

func (m *Module) loginPage(w http.ResponseWriter, r *http.Request) {
	m.render(w, r, http.StatusOK, views.LoginForm(m.translator, ""))
}

func (m *Module) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		m.render(w, r, http.StatusBadRequest, views.LoginForm(m.translator, m.t(r, "auth.errors.bad_request")))
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		m.render(w, r, http.StatusUnprocessableEntity, views.LoginForm(m.translator, m.t(r, "auth.errors.missing_fields")))
		return
	}

	cred, err := m.svc.Authenticate(r.Context(), email, password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		m.render(w, r, http.StatusUnauthorized, views.LoginForm(m.translator, m.t(r, "auth.errors.invalid_credentials")))
		return
	default:
		m.serverError(w, r, err)
		return
	}

	m.signIn(w, r, cred)
}

func (m *Module) registerPage(w http.ResponseWriter, r *http.Request) {
	m.render(w, r, http.StatusOK, views.RegisterForm(m.translator, ""))
}

func (m *Module) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		m.render(w, r, http.StatusBadRequest, views.RegisterForm(m.translator, m.t(r, "auth.errors.bad_request")))
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	switch {
	case email == "" || !strings.Contains(email, "@"):
		m.render(w, r, http.StatusUnprocessableEntity, views.RegisterForm(m.translator, m.t(r, "auth.errors.invalid_email")))
		return
	case len(password) < minPasswordLength:
		m.render(w, r, http.StatusUnprocessableEntity, views.RegisterForm(m.translator, m.t(r, "auth.errors.weak_password")))
		return
	}

	cred, err := m.svc.Register(r.Context(), email, password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		m.render(w, r, http.StatusConflict, views.RegisterForm(m.translator, m.t(r, "auth.errors.email_taken")))
		return
	default:
		m.serverError(w, r, err)
		return
	}

	m.signIn(w, r, cred)
}

func (m *Module) logout(w http.ResponseWriter, r *http.Request) {
	if err := m.sessions.Clear(r.Context(), w, r); err != nil {
		m.logger.ErrorContext(r.Context(), "failed to clear session", logger.Error(err))
	}
	clearTokenCookie(w, m.secure)
	authkit.Redirect(w, r, "/login")
}

// signIn issues the signed session token and the server-side session, then
// redirects to the landing page.
func (m *Module) signIn(w http.ResponseWriter, r *http.Request, cred *auth.CredentialWithUser) {
	token, err := m.issuer.Issue(cred)
	if err != nil {
		m.serverError(w, r, err)
		return
	}

	if _, err := m.sessions.Issue(r.Context(), w, cred.User.ID, cred.User.Email, cred.User.Name); err != nil {
		m.serverError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.issuer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.InfoContext(r.Context(), "user signed in", logger.UserID(cred.User.ID))
	authkit.Redirect(w, r, "/")
}

func clearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Module) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		m.logger.ErrorContext(r.Context(), "failed to render fragment", logger.Error(err))
	}
}

func (m *Module) serverError(w http.ResponseWriter, r *http.Request, err error) {
	m.logger.ErrorContext(r.Context(), "account handler failed", logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (m *Module) t(r *http.Request, key string) string {
	return m.translator.Tc(r.Context(), key)
}

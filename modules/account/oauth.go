package account

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/views"
)

const stateCookieName = "oauth_state"

// oauthRedirect sends the browser to the provider's consent screen. The
// random state lands in a short-lived cookie for the callback to verify.
func (m *Module) oauthRedirect(w http.ResponseWriter, r *http.Request) {
	provider, ok := m.provider(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	state, err := generateState()
	if err != nil {
		m.serverError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthURL(state), http.StatusFound)
}

// oauthCallback exchanges the code for an identity and reconciles it into a
// user account.
func (m *Module) oauthCallback(w http.ResponseWriter, r *http.Request) {
	provider, ok := m.provider(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if !m.validState(r) {
		m.oauthFailed(w, r, errors.New("oauth state mismatch"))
		return
	}
	clearStateCookie(w, m.secure)

	code := r.URL.Query().Get("code")
	if code == "" {
		m.oauthFailed(w, r, auth.ErrInvalidCode)
		return
	}

	identity, err := provider.ResolveIdentity(r.Context(), code)
	if err != nil {
		m.oauthFailed(w, r, err)
		return
	}

	cred, err := m.svc.OAuthSignIn(r.Context(), identity)
	if err != nil {
		m.oauthFailed(w, r, err)
		return
	}

	m.signIn(w, r, cred)
}

func (m *Module) validState(r *http.Request) bool {
	c, err := r.Cookie(stateCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	got := r.URL.Query().Get("state")
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(got)) == 1
}

func (m *Module) oauthFailed(w http.ResponseWriter, r *http.Request, err error) {
	m.logger.ErrorContext(r.Context(), "oauth sign-in failed",
		logger.Provider(chi.URLParam(r, "provider")), logger.Error(err))
	m.render(w, r, http.StatusUnauthorized, views.LoginForm(m.translator, m.t(r, "auth.errors.oauth_failed")))
}

func clearStateCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/i18n"
)

func localeMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()

	tr, err := i18n.NewTranslator(context.Background(), staticAdapter{
		"en": {"greeting": "Hello"},
		"uk": {"greeting": "Привіт"},
	})
	require.NoError(t, err)
	return i18n.Middleware(tr)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	mw := localeMiddleware(t)

	serve := func(r *http.Request) string {
		var got string
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = i18n.GetLocale(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), r)
		return got
	}

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "uk"})
		r.Header.Set("Accept-Language", "en")
		assert.Equal(t, "uk", serve(r))
	})

	t.Run("cookie with unsupported language is ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "fr"})
		r.Header.Set("Accept-Language", "uk")
		assert.Equal(t, "uk", serve(r))
	})

	t.Run("accept-language header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "uk-UA,uk;q=0.9,en;q=0.8")
		assert.Equal(t, "uk", serve(r))
	})

	t.Run("region variant resolves to base language", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "en-GB")
		assert.Equal(t, "en", serve(r))
	})

	t.Run("unmatched header falls back to default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "ja")
		assert.Equal(t, i18n.DefaultLanguage, serve(r))
	})

	t.Run("no signal falls back to default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, i18n.DefaultLanguage, serve(r))
	})
}

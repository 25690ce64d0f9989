package authkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit"
)

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, authkit.IsHTMX(r))

	r.Header.Set(authkit.HXRequest, "true")
	assert.True(t, authkit.IsHTMX(r))

	r.Header.Set(authkit.HXRequest, "false")
	assert.False(t, authkit.IsHTMX(r))
}

func TestIsBoosted(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, authkit.IsBoosted(r))

	r.Header.Set(authkit.HXBoosted, "true")
	assert.True(t, authkit.IsBoosted(r))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular request gets a 303", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()

		authkit.Redirect(w, r, "/dashboard")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.Header.Set(authkit.HXRequest, "true")
		w := httptest.NewRecorder()

		authkit.Redirect(w, r, "/dashboard")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get(authkit.HXRedirect))
		assert.Empty(t, w.Header().Get("Location"))
	})
}

package views_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/i18n"
	"github.com/dmitrymomot/authkit/views"
)

type staticAdapter map[string]map[string]any

func (a staticAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	return a, nil
}

func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), staticAdapter{
		"en": {
			"main": map[string]any{
				"title": "Authkit",
				"links": map[string]any{
					"about":   "About us",
					"contact": "Contact",
					"tou":     "Terms of use",
					"privacy": "Privacy policy",
				},
			},
			"auth": map[string]any{
				"login": map[string]any{
					"title": "Sign in",
				},
				"profile": map[string]any{
					"greeting": "Hello, %{name}!",
					"logout":   "Log out",
				},
			},
		},
	})
	require.NoError(t, err)
	return tr
}

func TestLayoutWrapsFragment(t *testing.T) {
	t.Parallel()
	tr := testTranslator(t)

	var sb strings.Builder
	page := views.Layout(tr)(views.LoginForm(tr, ""))
	require.NoError(t, page.Render(context.Background(), &sb))
	out := sb.String()

	assert.True(t, strings.HasPrefix(strings.ToLower(out), "<!doctype html>"))
	assert.Contains(t, out, "Sign in")
	assert.Contains(t, out, "About us")
	assert.Contains(t, out, "Terms of use")
	assert.Contains(t, out, "Privacy policy")
	assert.Contains(t, out, `hx-post="/login"`)
}

func TestLayoutUsesContextLocale(t *testing.T) {
	t.Parallel()
	tr := testTranslator(t)

	var sb strings.Builder
	ctx := i18n.SetLocale(context.Background(), "uk")
	page := views.Layout(tr)(views.Home(tr))
	require.NoError(t, page.Render(ctx, &sb))

	assert.Contains(t, sb.String(), `<html lang="uk">`)
}

func TestLoginFormError(t *testing.T) {
	t.Parallel()
	tr := testTranslator(t)

	var sb strings.Builder
	require.NoError(t, views.LoginForm(tr, "Invalid credentials").Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), `class="form-error"`)
	assert.Contains(t, sb.String(), "Invalid credentials")
}

func TestLoginFormEscapesError(t *testing.T) {
	t.Parallel()
	tr := testTranslator(t)

	var sb strings.Builder
	require.NoError(t, views.LoginForm(tr, `<script>alert(1)</script>`).Render(context.Background(), &sb))
	assert.NotContains(t, sb.String(), "<script>alert(1)</script>")
}

func TestProfileGreeting(t *testing.T) {
	t.Parallel()
	tr := testTranslator(t)

	var sb strings.Builder
	require.NoError(t, views.Profile(tr, "user@example.com", "Olena").Render(context.Background(), &sb))
	out := sb.String()

	assert.Contains(t, out, "Hello, Olena!")
	assert.Contains(t, out, "Log out")
}

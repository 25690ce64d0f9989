package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/i18n"
)

type staticAdapter map[string]map[string]any

func (a staticAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	return a, nil
}

func newTestTranslator(t *testing.T) *i18n.Translator {
	t.Helper()

	tr, err := i18n.NewTranslator(context.Background(), staticAdapter{
		"en": {
			"welcome": "Hello, %{name}!",
			"main": map[string]any{
				"links": map[string]any{
					"about":   "About",
					"contact": "Contact",
				},
			},
		},
		"uk": {
			"welcome": "Привіт, %{name}!",
		},
	})
	require.NoError(t, err)
	return tr
}

func TestTranslatorT(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	t.Run("simple key", func(t *testing.T) {
		assert.Equal(t, "Hello, John!", tr.T("en", "welcome", "name", "John"))
	})

	t.Run("nested key with dot notation", func(t *testing.T) {
		assert.Equal(t, "About", tr.T("en", "main.links.about"))
	})

	t.Run("other language", func(t *testing.T) {
		assert.Equal(t, "Привіт, Олено!", tr.T("uk", "welcome", "name", "Олено"))
	})

	t.Run("missing key falls back to the key, never errors", func(t *testing.T) {
		assert.Equal(t, "main.links.missing", tr.T("en", "main.links.missing"))
	})

	t.Run("unknown language falls back to default language", func(t *testing.T) {
		assert.Equal(t, "About", tr.T("fr", "main.links.about"))
	})

	t.Run("missing placeholder stays in place", func(t *testing.T) {
		assert.Equal(t, "Hello, %{name}!", tr.T("en", "welcome"))
	})
}

func TestTranslatorTc(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	ctx := i18n.SetLocale(context.Background(), "uk")
	assert.Equal(t, "Привіт, Тарасе!", tr.Tc(ctx, "welcome", "name", "Тарасе"))

	// No locale in context resolves through the default.
	assert.Equal(t, "Hello, %{name}!", tr.Tc(context.Background(), "welcome"))
}

func TestSupportedLanguages(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	assert.Equal(t, []string{"en", "uk"}, tr.SupportedLanguages())
}

func TestGetLocale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	assert.Equal(t, "uk", i18n.GetLocale(i18n.SetLocale(context.Background(), "uk")))
}

func TestYAMLAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yml": &fstest.MapFile{Data: []byte("main:\n  title: NestJsx\n  links:\n    about: About\n")},
		"uk.yml": &fstest.MapFile{Data: []byte("main:\n  title: NestJsx\n")},
		"notes":  &fstest.MapFile{Data: []byte("not a translation")},
	}

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewYAMLAdapter(fsys))
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "uk"}, tr.SupportedLanguages())
	assert.Equal(t, "About", tr.T("en", "main.links.about"))
}

func TestYAMLAdapterInvalidFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yml": &fstest.MapFile{Data: []byte("main: [unclosed")},
	}

	_, err := i18n.NewTranslator(context.Background(), i18n.NewYAMLAdapter(fsys))
	require.Error(t, err)
}

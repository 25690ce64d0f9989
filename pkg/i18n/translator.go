// Package i18n resolves message keys to locale strings for the document
// chrome and view fragments. Lookups never fail hard: a missing key renders
// as the key itself, so a translation gap degrades the copy, not the page.
package i18n

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// DefaultLanguage is the fallback locale when nothing usable is resolved
// from the request.
const DefaultLanguage = "en"

// TranslationAdapter loads translations from some source: embedded files,
// disk, a remote service. Keyed first by language code, then by nested
// message maps.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// Translator answers key lookups for a set of loaded languages. Safe for
// concurrent use; translations are read-only after construction.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]any
	defaultLang  string
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage overrides the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger enables logging of missing translations.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTranslator loads translations through the adapter and builds the
// translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if translations == nil {
		translations = make(map[string]map[string]any)
	}
	t.translations = translations

	return t, nil
}

// SupportedLanguages lists the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// T translates key for lang, substituting %{name} placeholders from
// key-value argument pairs. Unknown languages and missing keys fall back to
// the key itself - lookups never fail.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		langMap, ok = t.translations[t.defaultLang]
	}
	if !ok {
		return substitute(key, args)
	}

	val, found := lookup(langMap, key)
	if !found {
		t.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
		return substitute(key, args)
	}

	str, ok := val.(string)
	if !ok {
		return substitute(key, args)
	}
	return substitute(str, args)
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// lookup traverses nested maps with dot-separated keys, e.g.
// "main.links.about" resolves m["main"]["links"]["about"].
func lookup(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		if i == len(parts)-1 {
			val, ok := current[part]
			return val, ok
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// paramRe finds named placeholders in the form %{name}.
var paramRe = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders from key-value argument pairs.
// Unmatched placeholders stay in place.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	return paramRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

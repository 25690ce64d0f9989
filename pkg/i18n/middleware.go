package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// CookieName is the cookie carrying an explicit locale preference. The
// cookie wins over Accept-Language so a user's in-app choice sticks.
const CookieName = "lang"

// Middleware resolves the request locale and stores it in the context for
// handlers, views, and the negotiation layer to read via GetLocale.
//
// Resolution order: locale cookie, then Accept-Language matched against the
// translator's loaded languages, then the default.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	supported := t.SupportedLanguages()

	tags := make([]language.Tag, 0, len(supported)+1)
	// The matcher returns the first tag on no match, so the default leads.
	tags = append(tags, language.Make(DefaultLanguage))
	for _, lang := range supported {
		if lang == DefaultLanguage {
			continue
		}
		if tag, err := language.Parse(lang); err == nil {
			tags = append(tags, tag)
		}
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r, supported, matcher)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), locale)))
		})
	}
}

func resolveLocale(r *http.Request, supported []string, matcher language.Matcher) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if lang := normalizeLang(c.Value, supported); lang != "" {
			return lang
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		if prefs, _, err := language.ParseAcceptLanguage(header); err == nil && len(prefs) > 0 {
			tag, _, _ := matcher.Match(prefs...)
			base, _ := tag.Base()
			if lang := normalizeLang(base.String(), supported); lang != "" {
				return lang
			}
		}
	}

	return DefaultLanguage
}

// normalizeLang lowercases the code and checks it against the loaded
// languages, trying the base language when a region variant misses.
func normalizeLang(lang string, supported []string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return ""
	}

	for _, s := range supported {
		if s == lang {
			return s
		}
	}
	if idx := strings.Index(lang, "-"); idx > 0 {
		return normalizeLang(lang[:idx], supported)
	}
	return ""
}

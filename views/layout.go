// Package views renders the HTML surface: the document chrome shared by
// every full page load and the fragments that htmx swaps in place.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authkit/pkg/i18n"
)

// Layout returns the document chrome renderer. It wraps a fragment into a
// complete page: doctype, head with the htmx runtime, header, and a footer
// whose links are translated for the request locale.
func Layout(t *i18n.Translator) func(fragment templ.Component) templ.Component {
	return func(fragment templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			title := t.Tc(ctx, "main.title")

			if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang=%q>
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="stylesheet" href="/static/styles.css"/>
</head>
<body>
<header><a href="/">%s</a></header>
<main id="content">`,
				i18n.GetLocale(ctx),
				templ.EscapeString(title),
				templ.EscapeString(title),
			); err != nil {
				return err
			}

			if err := fragment.Render(ctx, w); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, `</main>
<footer>
<nav>
<a href="/about">%s</a>
<a href="/contact">%s</a>
<a href="/tou">%s</a>
<a href="/privacy">%s</a>
</nav>
</footer>
</body>
</html>`,
				templ.EscapeString(t.Tc(ctx, "main.links.about")),
				templ.EscapeString(t.Tc(ctx, "main.links.contact")),
				templ.EscapeString(t.Tc(ctx, "main.links.tou")),
				templ.EscapeString(t.Tc(ctx, "main.links.privacy")),
			); err != nil {
				return err
			}

			return nil
		})
	}
}

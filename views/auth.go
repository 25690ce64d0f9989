package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authkit/pkg/i18n"
)

// LoginForm renders the sign-in form fragment. errMsg, when non-empty, is an
// already-translated message shown above the form.
func LoginForm(t *i18n.Translator, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeFormError(w, errMsg); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<section class="auth-form">
<h1>%s</h1>
<form hx-post="/login" hx-target="#content" method="post" action="/login">
<label>%s<input type="email" name="email" required autocomplete="email"/></label>
<label>%s<input type="password" name="password" required autocomplete="current-password"/></label>
<button type="submit">%s</button>
</form>
<div class="oauth-links">
<a href="/auth/google">%s</a>
<a href="/auth/github">%s</a>
</div>
<p><a href="/register">%s</a></p>
</section>`,
			templ.EscapeString(t.Tc(ctx, "auth.login.title")),
			templ.EscapeString(t.Tc(ctx, "auth.login.email")),
			templ.EscapeString(t.Tc(ctx, "auth.login.password")),
			templ.EscapeString(t.Tc(ctx, "auth.login.submit")),
			templ.EscapeString(t.Tc(ctx, "auth.login.google")),
			templ.EscapeString(t.Tc(ctx, "auth.login.github")),
			templ.EscapeString(t.Tc(ctx, "auth.login.register_link")),
		)
		return err
	})
}

// RegisterForm renders the sign-up form fragment.
func RegisterForm(t *i18n.Translator, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeFormError(w, errMsg); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<section class="auth-form">
<h1>%s</h1>
<form hx-post="/register" hx-target="#content" method="post" action="/register">
<label>%s<input type="email" name="email" required autocomplete="email"/></label>
<label>%s<input type="password" name="password" required minlength="8" autocomplete="new-password"/></label>
<button type="submit">%s</button>
</form>
<p><a href="/login">%s</a></p>
</section>`,
			templ.EscapeString(t.Tc(ctx, "auth.register.title")),
			templ.EscapeString(t.Tc(ctx, "auth.register.email")),
			templ.EscapeString(t.Tc(ctx, "auth.register.password")),
			templ.EscapeString(t.Tc(ctx, "auth.register.submit")),
			templ.EscapeString(t.Tc(ctx, "auth.register.login_link")),
		)
		return err
	})
}

// Profile renders the signed-in landing fragment.
func Profile(t *i18n.Translator, email, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		display := name
		if display == "" {
			display = email
		}

		_, err := fmt.Fprintf(w, `<section class="profile">
<h1>%s</h1>
<p>%s</p>
<form hx-post="/logout" method="post" action="/logout">
<button type="submit">%s</button>
</form>
</section>`,
			templ.EscapeString(t.Tc(ctx, "auth.profile.greeting", "name", display)),
			templ.EscapeString(email),
			templ.EscapeString(t.Tc(ctx, "auth.profile.logout")),
		)
		return err
	})
}

// Home renders the anonymous landing fragment.
func Home(t *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="home">
<h1>%s</h1>
<p><a href="/login">%s</a></p>
</section>`,
			templ.EscapeString(t.Tc(ctx, "main.welcome")),
			templ.EscapeString(t.Tc(ctx, "auth.login.title")),
		)
		return err
	})
}

func writeFormError(w io.Writer, errMsg string) error {
	if errMsg == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="form-error" role="alert">%s</p>`, templ.EscapeString(errMsg))
	return err
}

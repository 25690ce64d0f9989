// Package authkit provides the HTTP response layer for server-rendered
// applications that progressively enhance pages with htmx.
//
// The package answers two questions for every outgoing response: what shape
// is the body (HTML fragment, full HTML document, or something opaque), and
// what shape does the client expect. Handlers always render the smallest
// useful unit - a fragment - and the Negotiate middleware wraps it into the
// application's document chrome when the request came from a regular browser
// navigation rather than an htmx partial swap.
//
// Body classification is a deliberate heuristic, not an HTML validator. It
// mirrors the behavior clients rely on: a body is a fragment when it contains
// at least one element tag and does not start with a doctype declaration, and
// a document when it contains a tag and does start with one. Plain text and
// non-HTML payloads classify as neither and pass through untouched.
//
// Typical wiring:
//
//	r := chi.NewRouter()
//	r.Use(i18n.Middleware(translator))
//	r.Use(authkit.Negotiate(views.Layout(translator), authkit.WithLogger(log)))
//	r.Mount("/", accountModule.Router())
package authkit

package authkit

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ChromeFunc wraps a fragment into the application's full-document chrome.
// The returned component is rendered with the request context, so request
// scoped values such as the active locale are available at render time.
type ChromeFunc func(fragment templ.Component) templ.Component

// NegotiateOption configures the negotiation middleware.
type NegotiateOption func(*negotiator)

// WithLogger sets the logger used for shape-mismatch diagnostics.
func WithLogger(l *slog.Logger) NegotiateOption {
	return func(n *negotiator) {
		if l != nil {
			n.logger = l
		}
	}
}

type negotiator struct {
	chrome ChromeFunc
	logger *slog.Logger
}

// Negotiate returns middleware that reshapes success-path responses based on
// the request origin and the detected body shape:
//
//   - non-HTML bodies (JSON, plain text, binary) pass through unchanged
//   - htmx requests receive the body as produced; a full document here is a
//     handler bug and is logged, not corrected
//   - fragments answered to regular browser requests are wrapped into the
//     document chrome
//   - complete documents pass through unchanged
//
// Error responses (status >= 400) are never reshaped.
func Negotiate(chrome ChromeFunc, opts ...NegotiateOption) func(http.Handler) http.Handler {
	n := &negotiator{
		chrome: chrome,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(n)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newRecorder()
			next.ServeHTTP(rec, r)
			n.finish(w, r, rec)
		})
	}
}

func (n *negotiator) finish(w http.ResponseWriter, r *http.Request, rec *recorder) {
	body := rec.body.String()

	if rec.status() >= http.StatusBadRequest || body == "" || !htmlCandidate(rec.header) {
		rec.flush(w)
		return
	}

	shape := DetectShape(body)

	switch {
	case shape == ShapeOpaque:
		if strings.Contains(body, "<") {
			n.logger.Debug("response body looks like html but has no detectable element",
				slog.String("path", r.URL.Path),
			)
		}
		rec.flush(w)
	case IsHTMX(r):
		if shape == ShapeDocument {
			n.logger.Warn("full document returned to an htmx request",
				slog.String("path", r.URL.Path),
				slog.String("target", Target(r)),
			)
		}
		rec.flush(w)
	case shape == ShapeFragment:
		n.wrap(w, r, rec, body)
	default: // document to a regular request
		rec.flush(w)
	}
}

// wrap renders the fragment inside the document chrome. On render failure the
// original fragment is sent unchanged: a half-written page is worse than an
// unwrapped one.
func (n *negotiator) wrap(w http.ResponseWriter, r *http.Request, rec *recorder, body string) {
	var buf bytes.Buffer
	if err := n.chrome(templ.Raw(body)).Render(r.Context(), &buf); err != nil {
		n.logger.Error("failed to wrap fragment into document chrome",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		rec.flush(w)
		return
	}

	copyHeader(w.Header(), rec.header)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(rec.status())
	_, _ = io.Copy(w, &buf)
}

// htmlCandidate reports whether the response could carry HTML worth
// classifying. Handlers that set an explicit non-HTML content type opt out
// of negotiation entirely.
func htmlCandidate(h http.Header) bool {
	ct := h.Get("Content-Type")
	return ct == "" || strings.Contains(ct, "text/html")
}

// recorder buffers a downstream response so its body can be classified
// before anything reaches the client.
type recorder struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header)}
}

func (rec *recorder) Header() http.Header { return rec.header }

func (rec *recorder) WriteHeader(code int) {
	if rec.code == 0 {
		rec.code = code
	}
}

func (rec *recorder) Write(p []byte) (int, error) {
	if rec.code == 0 {
		rec.code = http.StatusOK
	}
	return rec.body.Write(p)
}

func (rec *recorder) status() int {
	if rec.code == 0 {
		return http.StatusOK
	}
	return rec.code
}

// flush replays the recorded response verbatim.
func (rec *recorder) flush(w http.ResponseWriter) {
	copyHeader(w.Header(), rec.header)
	w.WriteHeader(rec.status())
	_, _ = w.Write(rec.body.Bytes())
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

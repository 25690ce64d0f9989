package authkit

import (
	"regexp"
	"strings"
)

// Shape is the detected form of a response body.
type Shape int

const (
	// ShapeOpaque marks bodies that are not recognizably HTML: JSON, plain
	// text, binary payloads, or HTML-ish text without a detectable element.
	ShapeOpaque Shape = iota
	// ShapeFragment marks an HTML snippet without document-level wrapping.
	ShapeFragment
	// ShapeDocument marks a complete page starting with a doctype.
	ShapeDocument
)

func (s Shape) String() string {
	switch s {
	case ShapeFragment:
		return "fragment"
	case ShapeDocument:
		return "document"
	default:
		return "opaque"
	}
}

// doctypePrefix is the full-document declaration marker. Comparison is
// case-insensitive and anchored at the very start of the body.
const doctypePrefix = "<!doctype html>"

// openTag matches the first element tag in a body: captures the tag name and
// everything up to the closing angle bracket.
var openTag = regexp.MustCompile(`(?i)<([a-z][a-z0-9]*)([^>]*)>`)

// containsElement reports whether the body contains at least one detectable
// HTML element: either a self-closing tag, or an opening tag with a matching
// closing tag for the same name somewhere after it. Only the first tag found
// is correlated; this is a heuristic for shaping responses, not a parser.
func containsElement(body string) bool {
	m := openTag.FindStringSubmatchIndex(body)
	if m == nil {
		return false
	}

	name := body[m[2]:m[3]]
	attrs := body[m[4]:m[5]]
	if strings.HasSuffix(strings.TrimRight(attrs, " \t\r\n"), "/") {
		return true
	}

	closing := regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(name) + `\s*>`)
	return closing.MatchString(body[m[1]:])
}

// IsDocument reports whether body is a complete HTML document: it contains
// an element tag and begins with a doctype declaration.
func IsDocument(body string) bool {
	return hasDoctype(body) && containsElement(body)
}

// IsFragment reports whether body is an HTML fragment: it contains an
// element tag but does not begin with a doctype declaration. A fragment with
// no detectable element (plain text) is neither fragment nor document.
func IsFragment(body string) bool {
	return !hasDoctype(body) && containsElement(body)
}

// DetectShape classifies a body once so callers can thread the verdict
// instead of re-inspecting the payload at every decision point.
func DetectShape(body string) Shape {
	if !containsElement(body) {
		return ShapeOpaque
	}
	if hasDoctype(body) {
		return ShapeDocument
	}
	return ShapeFragment
}

func hasDoctype(body string) bool {
	if len(body) < len(doctypePrefix) {
		return false
	}
	return strings.EqualFold(body[:len(doctypePrefix)], doctypePrefix)
}

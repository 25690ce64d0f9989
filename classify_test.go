package authkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit"
)

func TestIsFragment(t *testing.T) {
	t.Parallel()

	t.Run("self-closing tag", func(t *testing.T) {
		assert.True(t, authkit.IsFragment("<div/>"))
		assert.False(t, authkit.IsDocument("<div/>"))
	})

	t.Run("self-closing tag with attributes", func(t *testing.T) {
		assert.True(t, authkit.IsFragment(`<input type="text" name="email" />`))
	})

	t.Run("matching open and close pair", func(t *testing.T) {
		assert.True(t, authkit.IsFragment("<div>x</div>"))
	})

	t.Run("case-insensitive tag names", func(t *testing.T) {
		assert.True(t, authkit.IsFragment("<DIV>x</div>"))
		assert.True(t, authkit.IsFragment("<span>x</SPAN>"))
	})

	t.Run("nested markup correlates only the first tag", func(t *testing.T) {
		assert.True(t, authkit.IsFragment(`<form id="login"><input type="email" /></form>`))
	})

	t.Run("plain text is not a fragment", func(t *testing.T) {
		assert.False(t, authkit.IsFragment("hello"))
	})

	t.Run("unclosed tag is not detected", func(t *testing.T) {
		assert.False(t, authkit.IsFragment("<br>some text"))
	})

	t.Run("full document is not a fragment", func(t *testing.T) {
		assert.False(t, authkit.IsFragment("<!doctype html><html><body>x</body></html>"))
	})

	t.Run("empty body", func(t *testing.T) {
		assert.False(t, authkit.IsFragment(""))
	})
}

func TestIsDocument(t *testing.T) {
	t.Parallel()

	t.Run("doctype plus markup", func(t *testing.T) {
		body := "<!doctype html><html><body>x</body></html>"
		assert.True(t, authkit.IsDocument(body))
		assert.False(t, authkit.IsFragment(body))
	})

	t.Run("doctype marker is case-insensitive", func(t *testing.T) {
		assert.True(t, authkit.IsDocument("<!DOCTYPE HTML><html><body>x</body></html>"))
	})

	t.Run("doctype must lead the body", func(t *testing.T) {
		assert.False(t, authkit.IsDocument("\n<!doctype html><html></html>"))
	})

	t.Run("doctype without any element", func(t *testing.T) {
		body := "<!doctype html>"
		assert.False(t, authkit.IsDocument(body))
		assert.False(t, authkit.IsFragment(body))
	})

	t.Run("fragment is not a document", func(t *testing.T) {
		assert.False(t, authkit.IsDocument("<div>x</div>"))
	})
}

func TestDetectShape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want authkit.Shape
	}{
		{"fragment", "<div>x</div>", authkit.ShapeFragment},
		{"self-closing fragment", "<hr/>", authkit.ShapeFragment},
		{"document", "<!doctype html><html><body></body></html>", authkit.ShapeDocument},
		{"plain text", "hello world", authkit.ShapeOpaque},
		{"json", `{"ok":true}`, authkit.ShapeOpaque},
		{"empty", "", authkit.ShapeOpaque},
		{"angle brackets without element", "a < b > c", authkit.ShapeOpaque},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authkit.DetectShape(tc.body))
		})
	}
}

func TestShapeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fragment", authkit.ShapeFragment.String())
	assert.Equal(t, "document", authkit.ShapeDocument.String())
	assert.Equal(t, "opaque", authkit.ShapeOpaque.String())
}

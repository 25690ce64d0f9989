// Package locales embeds the translation files.
package locales

import "embed"

//go:embed *.yml
var FS embed.FS

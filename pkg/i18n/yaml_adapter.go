package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLAdapter loads translations from YAML files in a filesystem, typically
// an embed.FS. Each file holds one language; the language code is the file
// name without extension (en.yml, uk.yml, ...).
type YAMLAdapter struct {
	fsys fs.FS
}

// NewYAMLAdapter creates an adapter over the given filesystem.
func NewYAMLAdapter(fsys fs.FS) *YAMLAdapter {
	return &YAMLAdapter{fsys: fsys}
}

var _ TranslationAdapter = (*YAMLAdapter)(nil)

// Load parses every .yml/.yaml file in the filesystem root.
func (a *YAMLAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read translations dir: %w", err)
	}

	out := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		data, err := fs.ReadFile(a.fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		var messages map[string]any
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		lang := strings.ToLower(strings.TrimSuffix(entry.Name(), ext))
		out[lang] = messages
	}

	return out, nil
}

package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads message files from an fs.FS. Each file holds the
// messages for one language and is named after it: en.yaml, de.yml.
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return loadDir(c, fsys, isYAML, yaml.Unmarshal)
	}
}

// WithJSONDir loads message files from an fs.FS, one {lang}.json file per
// language.
func WithJSONDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return loadDir(c, fsys, isJSON, json.Unmarshal)
	}
}

func isYAML(ext string) bool { return ext == ".yaml" || ext == ".yml" }
func isJSON(ext string) bool { return ext == ".json" }

func loadDir(c *Catalog, fsys fs.FS, match func(string) bool, unmarshal func([]byte, any) error) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(filePath))
		if !match(ext) {
			return nil
		}

		lang := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
		if lang == "" {
			return fmt.Errorf("%w: %q has no language name", ErrInvalidFile, filePath)
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("i18n: reading %q: %w", filePath, err)
		}

		var messages map[string]any
		if err := unmarshal(data, &messages); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		for key, value := range flatten(messages, "") {
			c.messages[lang+":"+key] = value
		}
		return nil
	})
}

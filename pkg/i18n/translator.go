package i18n

// Translator is a Catalog handle bound to a single language, so callers
// don't have to thread the language through every lookup.
type Translator struct {
	catalog  *Catalog
	language string
}

// T resolves key in the translator's language.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.catalog.T(t.language, key, placeholders...)
}

// Has reports whether key resolves in the translator's language.
func (t *Translator) Has(key string) bool {
	return t.catalog.Has(t.language, key)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.language
}

// Catalog returns the underlying catalog.
func (t *Translator) Catalog() *Catalog {
	return t.catalog
}

package i18n

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// M carries placeholder values for message interpolation.
type M = map[string]any

// Catalog holds localized messages. It is immutable after New returns and
// therefore safe for concurrent use.
type Catalog struct {
	// Flattened messages, keyed "lang:key.path".
	messages map[string]string

	// Called when a key is missing in every consulted language. Useful for
	// spotting untranslated keys during development.
	missing func(lang, key string)

	defaultLang string
	languages   []string
	matcher     language.Matcher
	matchLangs  []string
}

// Option configures a Catalog during construction.
type Option func(*Catalog) error

// New builds a Catalog from the given options. All configuration happens
// here; the returned instance is immutable.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		messages:    make(map[string]string),
		defaultLang: DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("i18n: applying option: %w", err)
		}
	}
	c.languages = c.collectLanguages()
	c.matcher, c.matchLangs = buildMatcher(c.languages)
	return c, nil
}

// WithDefaultLanguage sets the fallback language. Defaults to "en".
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.defaultLang = lang
		return nil
	}
}

// WithMessages registers messages for a language. Nested maps are flattened
// into dotted keys. Later registrations for the same key win.
func WithMessages(lang string, messages map[string]any) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		for key, value := range flatten(messages, "") {
			c.messages[lang+":"+key] = value
		}
		return nil
	}
}

// WithMissingHandler installs a callback invoked when a key cannot be
// resolved in any language.
func WithMissingHandler(fn func(lang, key string)) Option {
	return func(c *Catalog) error {
		c.missing = fn
		return nil
	}
}

// T resolves key in lang, interpolating placeholders. Falls back to the base
// language of a regional tag, then to the default language, and finally to
// the key itself.
func (c *Catalog) T(lang, key string, placeholders ...M) string {
	for _, l := range c.lookupChain(lang) {
		if msg, ok := c.messages[l+":"+key]; ok {
			return Interpolate(msg, mergeMaps(placeholders))
		}
	}
	if c.missing != nil {
		c.missing(lang, key)
	}
	return key
}

// Has reports whether key resolves in lang without fallback to the key
// itself.
func (c *Catalog) Has(lang, key string) bool {
	for _, l := range c.lookupChain(lang) {
		if _, ok := c.messages[l+":"+key]; ok {
			return true
		}
	}
	return false
}

// Translator returns a handle bound to lang. An empty lang binds the default
// language.
func (c *Catalog) Translator(lang string) *Translator {
	if lang == "" {
		lang = c.defaultLang
	}
	return &Translator{catalog: c, language: lang}
}

// Match resolves a requested language tag (for example from an
// Accept-Language header) against the catalog's languages and returns the
// best supported one.
func (c *Catalog) Match(requested string) string {
	if requested == "" || c.matcher == nil {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, index, _ := c.matcher.Match(tags...)
	if index < 0 || index >= len(c.matchLangs) {
		return c.defaultLang
	}
	return c.matchLangs[index]
}

// Languages returns the languages the catalog carries messages for, default
// language first.
func (c *Catalog) Languages() []string {
	return c.languages
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

func (c *Catalog) lookupChain(lang string) []string {
	if lang == "" {
		lang = c.defaultLang
	}
	chain := []string{lang}
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if lang != c.defaultLang && baseLanguage(lang) != c.defaultLang {
		chain = append(chain, c.defaultLang)
	}
	return chain
}

func (c *Catalog) collectLanguages() []string {
	seen := map[string]bool{c.defaultLang: true}
	for key := range c.messages {
		if i := strings.IndexByte(key, ':'); i > 0 {
			seen[key[:i]] = true
		}
	}
	delete(seen, c.defaultLang)
	others := make([]string, 0, len(seen))
	for lang := range seen {
		others = append(others, lang)
	}
	sort.Strings(others)
	return append([]string{c.defaultLang}, others...)
}

func buildMatcher(langs []string) (language.Matcher, []string) {
	tags := make([]language.Tag, 0, len(langs))
	matched := make([]string, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		matched = append(matched, l)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return language.NewMatcher(tags), matched
}

func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string, len(data))
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			maps.Copy(out, flatten(v, full))
		case map[string]string:
			for sub, msg := range v {
				out[full+"."+sub] = msg
			}
		default:
			out[full] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

func mergeMaps(placeholders []M) M {
	switch len(placeholders) {
	case 0:
		return nil
	case 1:
		return placeholders[0]
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}

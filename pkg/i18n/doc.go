// Package i18n provides immutable, thread-safe message catalogs for
// localized form and validation messages.
//
// A Catalog is fully configured at construction time and never mutated
// afterwards, so a single instance can be shared across requests without
// locking. Lookups are flat map accesses keyed by "lang:key"; nested message
// maps are flattened with dotted keys when loaded.
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithMessages("en", map[string]any{
//			"required": "This field is required",
//			"greeting": "Hello, {{name}}!",
//		}),
//		i18n.WithMessages("de", map[string]any{
//			"required": "Dieses Feld ist erforderlich",
//		}),
//	)
//
//	tr := catalog.Translator("de")
//	msg := tr.T("required") // "Dieses Feld ist erforderlich"
//
// Placeholders use the {{name}} form and are replaced from i18n.M maps.
// Lookup falls back from a regional tag ("de-AT") to its base language
// ("de") and finally to the catalog's default language; an unknown key is
// returned verbatim so missing translations stay visible instead of failing.
package i18n

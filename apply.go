package formhandler

import (
	"strings"

	"github.com/augensalat/html-formhandler/pkg/i18n"
	"github.com/augensalat/html-formhandler/pkg/sanitizer"
)

// Step is one stage of a field's declared check/transform pipeline. Steps
// run in declaration order inside the field type's validate hook; the first
// failing step records its message on the field and stops the pipeline.
type Step interface {
	// Apply inspects or rewrites the working value. On failure it records an
	// error on the field and returns false.
	Apply(f *Field, v any) (any, bool)
}

type checkStep struct {
	fn           func(any) bool
	key          string
	placeholders []i18n.M
}

// Check builds a predicate step. When fn returns false, messageKey is
// resolved through the field's translator and recorded.
func Check(fn func(v any) bool, messageKey string, placeholders ...i18n.M) Step {
	return checkStep{fn: fn, key: messageKey, placeholders: placeholders}
}

func (s checkStep) Apply(f *Field, v any) (any, bool) {
	if !s.fn(v) {
		f.AddError(s.key, s.placeholders...)
		return nil, false
	}
	return v, true
}

type transformStep struct {
	fn  func(any) (any, error)
	key string
}

// Transform builds a rewriting step. When fn fails, messageKey is recorded
// with the error text available as the {{error}} placeholder.
func Transform(fn func(v any) (any, error), messageKey string) Step {
	return transformStep{fn: fn, key: messageKey}
}

func (s transformStep) Apply(f *Field, v any) (any, bool) {
	out, err := s.fn(v)
	if err != nil {
		f.AddError(s.key, i18n.M{"error": err.Error()})
		return nil, false
	}
	return out, true
}

// StripHTML is a transform that removes all markup from string values.
// Non-string values pass through unchanged.
func StripHTML() Step {
	return Transform(func(v any) (any, error) {
		switch x := v.(type) {
		case string:
			return sanitizer.Strip(x), nil
		case []string:
			out := make([]string, len(x))
			for i, s := range x {
				out[i] = sanitizer.Strip(s)
			}
			return out, nil
		}
		return v, nil
	}, "")
}

// Trim is a transform that trims surrounding whitespace from string values.
func Trim() Step {
	return Transform(func(v any) (any, error) {
		switch x := v.(type) {
		case string:
			return strings.TrimSpace(x), nil
		case []string:
			out := make([]string, len(x))
			for i, s := range x {
				out[i] = strings.TrimSpace(s)
			}
			return out, nil
		}
		return v, nil
	}, "")
}

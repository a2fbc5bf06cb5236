package formhandler

import (
	"context"
	"log/slog"

	"github.com/augensalat/html-formhandler/pkg/i18n"
	"github.com/augensalat/html-formhandler/pkg/model"
)

// Option configures a form. Options are applied at construction and again
// by Process, so the same type carries both the schema configuration and
// per-cycle arguments (parameters, item, item id).
type Option func(*Form)

// WithFields declares the form's schema as an ordered field list.
func WithFields(decls ...*FieldDecl) Option {
	return func(f *Form) {
		f.decls = append(f.decls, decls...)
	}
}

// WithTranslator injects the message-formatting handle used for all error
// messages. Defaults to a process-wide English translator carrying
// DefaultMessages.
func WithTranslator(tr *i18n.Translator) Option {
	return func(f *Form) {
		if tr != nil {
			f.translator = tr
		}
	}
}

// WithAdapter injects the model adapter used to load and persist the
// backing object.
func WithAdapter(adapter model.Adapter) Option {
	return func(f *Form) {
		f.adapter = adapter
	}
}

// WithPrefix namespaces all HTML field names under the form's own name;
// submitted parameters are expected below that prefix and FIF keys carry
// it.
func WithPrefix() Option {
	return func(f *Form) {
		f.prefixed = true
	}
}

// WithDependency declares a dependency group: as soon as one named field
// carries a non-blank submitted value, the whole group becomes required for
// that validation pass. Groups need at least two names.
func WithDependency(fieldNames ...string) Option {
	return func(f *Form) {
		f.dependency = append(f.dependency, fieldNames)
	}
}

// WithCrossValidation installs the hook run after all field-level
// validation. It sees every field's post-validation value and may add
// form-level or field-targeted errors.
func WithCrossValidation(fn func(*Form)) Option {
	return func(f *Form) {
		f.crossValidation = fn
	}
}

// WithModelValidation installs the model-specific validation hook, e.g.
// uniqueness checks against a backing store. A returned error is treated as
// an infrastructure failure; user-level findings belong in the error lists.
func WithModelValidation(fn func(context.Context, *Form) error) Option {
	return func(f *Form) {
		f.modelValidation = fn
	}
}

// WithLogger sets the form's logger. Defaults to a discarding slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithParams supplies the submitted parameters, flat or already nested.
func WithParams(p map[string]any) Option {
	return func(f *Form) {
		f.rawParams = p
	}
}

// WithItem supplies the backing object directly.
func WithItem(item any) Option {
	return func(f *Form) {
		f.item = item
	}
}

// WithItemID supplies the backing object's id; Process loads the object
// through the model adapter.
func WithItemID(id any) Option {
	return func(f *Form) {
		f.itemID = id
	}
}

// WithInit supplies a plain initialization mapping used to populate fields
// when no backing object is available.
func WithInit(init map[string]any) Option {
	return func(f *Form) {
		f.initObj = init
	}
}

// WithParentField nests the form inside a field of an outer form; errors
// recorded by this form's fields surface on that field.
func WithParentField(parent *Field) Option {
	return func(f *Form) {
		f.parentField = parent
	}
}

package formhandler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/augensalat/html-formhandler/pkg/i18n"
	"github.com/augensalat/html-formhandler/pkg/model"
	"github.com/augensalat/html-formhandler/pkg/params"
)

// Form owns an ordered tree of fields and drives the validation cycle:
// parameter distribution, per-field validation, cross-field validation, and
// model synchronization. A Form instance handles one request's validation
// cycle at a time; it is not safe for concurrent Process calls.
type Form struct {
	name        string
	prefixed    bool
	fields      []*Field
	index       map[string]*Field
	decls       []*FieldDecl
	dependency  [][]string
	translator  *i18n.Translator
	adapter     model.Adapter
	logger      *slog.Logger
	parentField *Field

	crossValidation func(*Form)
	modelValidation func(context.Context, *Form) error

	rawParams map[string]any
	params    params.Map
	item      any
	itemID    any
	initObj   map[string]any

	formErrs      []string
	ranValidation bool
	validated     bool
	processed     bool
}

// New builds a form from its schema. Unknown type tags, duplicate field
// names, and malformed dependency groups are schema errors reported here,
// not deferred to validation.
func New(name string, opts ...Option) (*Form, error) {
	f := &Form{
		name:   name,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	order := 0
	f.index = make(map[string]*Field, len(f.decls))
	for _, d := range f.decls {
		fl, err := d.buildField(f, nil, &order)
		if err != nil {
			return nil, err
		}
		if _, dup := f.index[fl.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, fl.name)
		}
		f.fields = append(f.fields, fl)
		f.index[fl.name] = fl
	}

	for _, group := range f.dependency {
		if len(group) < 2 {
			return nil, fmt.Errorf("%w: %v", ErrBadDependency, group)
		}
	}
	return f, nil
}

// Name returns the form's name.
func (f *Form) Name() string { return f.name }

// Fields returns the ordered top-level fields.
func (f *Form) Fields() []*Field { return f.fields }

// Field resolves a dotted path through intermediate compound fields.
// Returns nil when the path does not resolve.
func (f *Form) Field(path string) *Field {
	name, rest, nested := splitPath(path)
	fl := f.index[name]
	if fl == nil || !nested {
		return fl
	}
	return fl.Field(rest)
}

// MustField is Field for callers that treat a lookup failure as a broken
// schema: it panics on a miss.
func (f *Form) MustField(path string) *Field {
	fl := f.Field(path)
	if fl == nil {
		panic(fmt.Sprintf("%s: %q", ErrFieldNotFound, path))
	}
	return fl
}

// Params returns the normalized parameters of the current cycle.
func (f *Form) Params() params.Map { return f.params }

// Item returns the backing object, if any.
func (f *Form) Item() any { return f.item }

// Validated reports whether the last validation pass succeeded.
func (f *Form) Validated() bool { return f.validated }

// RanValidation reports whether the last Process call reached validation at
// all; the initial-display path leaves it false.
func (f *Form) RanValidation() bool { return f.ranValidation }

// Processed reports whether Process ran since construction or the last
// Clear.
func (f *Form) Processed() bool { return f.processed }

// Clear resets the form to a pristine state: errors, cached fill-in,
// computed values, and the normalized parameters of the last cycle are
// dropped. The field schema and the merged Process arguments survive, so a
// subsequent Process without arguments reruns the previous cycle.
func (f *Form) Clear() {
	for _, fl := range f.fields {
		fl.clearState()
	}
	f.params = nil
	f.formErrs = nil
	f.ranValidation = false
	f.validated = false
	f.processed = false
}

// Process runs one validation cycle. Arguments are merged into the form's
// attributes; a form that already processed clears itself first, so Process
// may be invoked repeatedly on the same instance.
//
// Without submitted parameters Process only populates the fields from the
// backing object (or the explicit init mapping). This is the
// initial-display path:
// RanValidation stays false and the returned flag is false without meaning
// failure.
//
// With parameters the full pipeline runs: dependency resolution, input
// distribution, per-field validation, the cross-field hook, the model
// validation hook, and, when everything validated, model
// synchronization. The returned error reports infrastructure failures only;
// user input problems land in the error lists.
func (f *Form) Process(ctx context.Context, opts ...Option) (bool, error) {
	if f.processed {
		f.Clear()
	}
	for _, opt := range opts {
		opt(f)
	}
	f.processed = true

	f.params = f.normalizedParams()
	submitted := len(f.params) > 0

	if !submitted && (f.item != nil || f.itemID != nil || f.initObj != nil) {
		if err := f.initFromObject(ctx); err != nil {
			return false, err
		}
	} else {
		for _, fl := range f.fields {
			fl.clearValues()
		}
	}

	if err := f.loadChoices(ctx); err != nil {
		return false, err
	}

	if !submitted {
		f.logger.DebugContext(ctx, "form displayed without input", "form", f.name)
		return false, nil
	}

	if err := f.validateForm(ctx); err != nil {
		return false, err
	}

	if f.validated {
		if err := f.syncModel(ctx); err != nil {
			return false, err
		}
	}

	f.logger.DebugContext(ctx, "form processed",
		"form", f.name, "validated", f.validated, "errors", f.NumErrors())
	return f.validated, nil
}

// validateForm is the two-phase validation pass over submitted parameters.
func (f *Form) validateForm(ctx context.Context) error {
	forced := f.resolveDependencies()

	for _, fl := range f.fields {
		if v, ok := f.params[fl.name]; ok {
			fl.SetInput(v)
			fl.involved = true
		} else if fl.useFallback {
			fl.SetInput(fl.fallback)
			fl.involved = true
		}
	}

	for _, fl := range f.fields {
		if fl.involved {
			fl.ValidateField()
		}
	}

	if f.crossValidation != nil {
		f.crossValidation(f)
	}
	if f.modelValidation != nil {
		if err := f.modelValidation(ctx, f); err != nil {
			return fmt.Errorf("formhandler: model validation: %w", err)
		}
	}

	revertForced(forced)

	f.validated = len(f.ErrorFields()) == 0 && len(f.formErrs) == 0
	f.ranValidation = true
	return nil
}

// initFromObject populates field values from the backing object, loading it
// by id first when necessary.
func (f *Form) initFromObject(ctx context.Context) error {
	obj := f.item
	if obj == nil && f.itemID != nil {
		if f.adapter == nil {
			return ErrNoAdapter
		}
		loaded, err := f.adapter.Load(ctx, f.itemID)
		if err != nil {
			return fmt.Errorf("formhandler: loading item: %w", err)
		}
		f.item = loaded
		obj = loaded
	}
	if obj == nil && f.initObj != nil {
		obj = f.initObj
	}
	if obj == nil {
		return nil
	}

	read := model.ReadFieldValue
	if f.adapter != nil {
		read = f.adapter.ReadField
	}
	for _, fl := range f.fields {
		fl.initFrom(obj, read)
	}
	return nil
}

// loadChoices refreshes dynamic choice lists. Runs after object population
// so loaders can depend on loaded data.
func (f *Form) loadChoices(ctx context.Context) error {
	var walk func(fields []*Field) error
	walk = func(fields []*Field) error {
		for _, fl := range fields {
			if fl.choicesLoader != nil {
				choices, err := fl.choicesLoader(ctx, fl)
				if err != nil {
					return fmt.Errorf("formhandler: loading choices for %q: %w", fl.QualifiedName(), err)
				}
				fl.choices = choices
			}
			if err := walk(fl.children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(f.fields)
}

// syncModel persists the validated values through the model adapter. A form
// without an adapter validates standalone and skips persistence.
func (f *Form) syncModel(ctx context.Context) error {
	if f.adapter == nil {
		return nil
	}
	stored, err := f.adapter.Persist(ctx, f.item, f.Values())
	if err != nil {
		return fmt.Errorf("formhandler: persisting item: %w", err)
	}
	f.item = stored
	return nil
}

// FIF builds the flat fill-in mapping from qualified field name to each
// field's fill-in representation, for re-rendering the form. Password
// fields and fields with nothing to fill in are skipped. Returns nil, not
// an empty map, when no field contributed anything.
func (f *Form) FIF() map[string]any {
	prefix := ""
	if f.prefixed {
		prefix = f.name + "."
	}
	out := make(map[string]any)
	fifWalk(prefix, f.fields, out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func fifWalk(prefix string, fields []*Field, out map[string]any) {
	for _, fl := range fields {
		if fl.password {
			continue
		}
		if len(fl.children) > 0 {
			fifWalk(prefix+fl.name+".", fl.children, out)
			continue
		}
		v := fl.fill
		if fifEmpty(v) {
			continue
		}
		if expanded, ok := v.(map[string]string); ok {
			for sub, s := range expanded {
				if s != "" {
					out[prefix+fl.name+"."+sub] = s
				}
			}
			continue
		}
		out[prefix+fl.name] = v
	}
}

// Values builds the mapping from persistence accessor to validated value.
// Fields marked noupdate are skipped, fields without a value are skipped
// unless flagged clear, and clear fields emit an explicit nil. Only
// top-level fields surface here; a compound field contributes its own
// aggregated value.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.fields))
	for _, fl := range f.fields {
		switch {
		case fl.noupdate:
		case fl.clear:
			out[fl.accessor] = nil
		case fl.hasValue:
			out[fl.accessor] = fl.value
		}
	}
	return out
}

// AddError records a form-level error. For a sub-form nested inside a
// parent field the error surfaces on that field instead.
func (f *Form) AddError(messageKey string, placeholders ...i18n.M) {
	msg := f.msgTranslator().T(messageKey, placeholders...)
	if f.parentField != nil {
		f.parentField.errs = append(f.parentField.errs, msg)
		return
	}
	f.formErrs = append(f.formErrs, msg)
}

// FormErrors returns errors recorded against the form as a whole.
func (f *Form) FormErrors() []string { return f.formErrs }

// ErrorFields returns, in declaration order, every field in the tree whose
// own validation failed.
func (f *Form) ErrorFields() []*Field {
	var out []*Field
	var walk func(fields []*Field)
	walk = func(fields []*Field) {
		for _, fl := range fields {
			if fl.HasErrors() {
				out = append(out, fl)
			}
			walk(fl.children)
		}
	}
	walk(f.fields)
	return out
}

// NumErrors counts every recorded message, field-level and form-level.
func (f *Form) NumErrors() int {
	n := len(f.formErrs)
	for _, fl := range f.ErrorFields() {
		n += len(fl.errs)
	}
	return n
}

// Errors flattens all messages: form-level first, then per-field in
// declaration order.
func (f *Form) Errors() []string {
	out := make([]string, 0, f.NumErrors())
	out = append(out, f.formErrs...)
	for _, fl := range f.ErrorFields() {
		out = append(out, fl.errs...)
	}
	return out
}

// FieldErrors maps qualified field names to their messages; fields without
// errors are absent.
func (f *Form) FieldErrors() map[string][]string {
	out := make(map[string][]string)
	for _, fl := range f.ErrorFields() {
		out[fl.QualifiedName()] = fl.errs
	}
	return out
}

// HasErrors reports whether any field or the form itself carries errors.
func (f *Form) HasErrors() bool {
	return len(f.formErrs) > 0 || len(f.ErrorFields()) > 0
}

func (f *Form) normalizedParams() params.Map {
	if len(f.rawParams) == 0 {
		return params.Map{}
	}
	normalized := params.Normalize(f.rawParams)
	if f.prefixed {
		return params.Under(normalized, f.name)
	}
	return normalized
}

// paramValue resolves a dotted field path through the normalized parameter
// tree, so nested fields can be addressed the same way Field resolves them.
func (f *Form) paramValue(path string) (any, bool) {
	m := f.params
	name, rest, nested := strings.Cut(path, ".")
	for nested {
		sub, ok := m[name].(map[string]any)
		if !ok {
			return nil, false
		}
		m = sub
		name, rest, nested = strings.Cut(rest, ".")
	}
	v, ok := m[name]
	return v, ok
}

func (f *Form) msgTranslator() *i18n.Translator {
	if f.translator != nil {
		return f.translator
	}
	return defaultTranslator()
}

func splitPath(path string) (string, string, bool) {
	name, rest, nested := strings.Cut(path, ".")
	return name, rest, nested
}

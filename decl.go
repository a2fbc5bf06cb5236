package formhandler

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// FieldDecl is one entry of a form schema: a named, typed field declaration
// plus its options. Declarations are inert until a form builds its field
// tree from them, so one schema can safely build many forms.
type FieldDecl struct {
	name    string
	typeTag string
	opts    []FieldOption
}

// NewField declares a field of the given type tag.
func NewField(name, typeTag string, opts ...FieldOption) *FieldDecl {
	return &FieldDecl{name: name, typeTag: typeTag, opts: opts}
}

// Name returns the declared field name.
func (d *FieldDecl) Name() string { return d.name }

// Type returns the declared type tag.
func (d *FieldDecl) Type() string { return d.typeTag }

// FieldOption configures one field of a schema.
type FieldOption func(*Field)

// Required marks the field required.
func Required() FieldOption {
	return func(f *Field) { f.required = true }
}

// RequiredMessage overrides the message key used for the required error.
func RequiredMessage(key string) FieldOption {
	return func(f *Field) { f.requiredMsg = key }
}

// Label sets the display label. Defaults to the humanized field name.
func Label(label string) FieldOption {
	return func(f *Field) { f.label = label }
}

// Accessor overrides the persistence accessor name. Defaults to the
// snake_case field name.
func Accessor(name string) FieldOption {
	return func(f *Field) { f.accessor = name }
}

// Multiple allows sequence-valued input on a field whose type would
// otherwise reject it.
func Multiple() FieldOption {
	return func(f *Field) { f.multiple = true }
}

// Password withholds the field from all fill-in output.
func Password() FieldOption {
	return func(f *Field) { f.password = true }
}

// WriteOnly suppresses fill-in derived from the initial object; fill-in
// reappears once user input arrives.
func WriteOnly() FieldOption {
	return func(f *Field) { f.writeonly = true }
}

// NoUpdate excludes the field from persisted values.
func NoUpdate() FieldOption {
	return func(f *Field) { f.noupdate = true }
}

// Clear forces the persisted value to an explicit null.
func Clear() FieldOption {
	return func(f *Field) { f.clear = true }
}

// Disabled is a rendering hint only; validation ignores it.
func Disabled() FieldOption {
	return func(f *Field) { f.disabled = true }
}

// Readonly is a rendering hint only; validation ignores it.
func Readonly() FieldOption {
	return func(f *Field) { f.readonly = true }
}

// Choices declares the enumerated value set.
func Choices(choices ...Choice) FieldOption {
	return func(f *Field) { f.choices = choices }
}

// LoadChoices declares a dynamic choice list, resolved during Process after
// the form populated values from the backing object.
func LoadChoices(loader ChoicesLoader) FieldOption {
	return func(f *Field) { f.choicesLoader = loader }
}

// Range declares an inclusive numeric range; only meaningful on fields
// without a choice set.
func Range(start, end float64) FieldOption {
	return func(f *Field) {
		f.rangeStart = &start
		f.rangeEnd = &end
	}
}

// RangeStart declares an inclusive lower bound only.
func RangeStart(start float64) FieldOption {
	return func(f *Field) { f.rangeStart = &start }
}

// RangeEnd declares an inclusive upper bound only.
func RangeEnd(end float64) FieldOption {
	return func(f *Field) { f.rangeEnd = &end }
}

// Format declares a fmt template applied when input is copied into value,
// e.g. Format("tag:%s").
func Format(template string) FieldOption {
	return func(f *Field) { f.format = template }
}

// Default declares input used when the field is absent from the submitted
// parameters.
func Default(input any) FieldOption {
	return func(f *Field) {
		f.fallback = input
		f.useFallback = true
	}
}

// Apply attaches check/transform steps, run in order inside the type's
// validate hook.
func Apply(steps ...Step) FieldOption {
	return func(f *Field) { f.steps = append(f.steps, steps...) }
}

// Fetch replaces the default accessor-based extraction used when the form
// populates this field from a backing object.
func Fetch(fn FetchFunc) FieldOption {
	return func(f *Field) { f.fetch = fn }
}

// Children declares the nested schema of a compound field.
func Children(decls ...*FieldDecl) FieldOption {
	return func(f *Field) { f.pendingChildren = decls }
}

// buildField turns a declaration into a field owned by form, assigning
// depth-first declaration order. parent is nil for top-level fields.
func (d *FieldDecl) buildField(form *Form, parent *Field, order *int) (*Field, error) {
	ctor, err := resolveType(d.typeTag)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", d.name, err)
	}

	f := &Field{
		form:     form,
		parent:   parent,
		typ:      ctor(),
		name:     d.name,
		typeTag:  d.typeTag,
		label:    humanize(d.name),
		accessor: strcase.ToSnake(d.name),
	}
	*order++
	f.order = *order

	if init, ok := f.typ.(initializer); ok {
		init.Init(f)
	}
	for _, opt := range d.opts {
		opt(f)
	}

	if len(f.pendingChildren) > 0 {
		f.childIndex = make(map[string]*Field, len(f.pendingChildren))
		for _, cd := range f.pendingChildren {
			child, err := cd.buildField(form, f, order)
			if err != nil {
				return nil, err
			}
			if _, dup := f.childIndex[child.name]; dup {
				return nil, fmt.Errorf("%w: %q under %q", ErrDuplicateField, child.name, f.name)
			}
			f.children = append(f.children, child)
			f.childIndex[child.name] = child
		}
		f.pendingChildren = nil
	}
	return f, nil
}

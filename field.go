package formhandler

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/augensalat/html-formhandler/pkg/i18n"
)

// Choice is one entry of an enumerated field's value set.
type Choice struct {
	Value string
	Label string
}

// ChoicesLoader supplies a field's choice list dynamically. It runs during
// Process, after the form populated values from the backing object, so
// loaders may depend on loaded data.
type ChoicesLoader func(ctx context.Context, f *Field) ([]Choice, error)

// FetchFunc replaces the default accessor-based extraction when a form
// populates a field from a backing object.
type FetchFunc func(item any, accessor string) (any, bool)

// Field is the atomic validatable unit of a form. A field holds the raw
// submitted input, the coerced value, the value captured from the backing
// object at load time, and an ordered error list. Compound fields
// additionally own an ordered tree of child fields.
//
// Fields are created from the schema when the form is built and are owned
// by their form; the form and parent references are used only for name
// qualification and error routing.
type Field struct {
	form   *Form
	parent *Field
	typ    Type

	name     string
	typeTag  string
	label    string
	accessor string
	order    int

	required    bool
	requiredMsg string
	forced      bool
	multiple    bool
	password    bool
	writeonly   bool
	noupdate    bool
	clear       bool
	disabled    bool
	readonly    bool
	involved    bool

	input       any
	value       any
	hasValue    bool
	initVal     any
	hasInit     bool
	fallback    any
	useFallback bool

	errs []string
	fill any

	choices       []Choice
	choicesLoader ChoicesLoader
	rangeStart    *float64
	rangeEnd      *float64
	format        string
	steps         []Step
	fetch         FetchFunc

	children   []*Field
	childIndex map[string]*Field

	// Declarations captured by Children(); resolved when the form builds
	// its tree.
	pendingChildren []*FieldDecl
}

// Name returns the field's own name.
func (f *Field) Name() string { return f.name }

// QualifiedName returns the dot-joined name chain from the form's root down
// to this field.
func (f *Field) QualifiedName() string {
	if f.parent == nil {
		return f.name
	}
	return f.parent.QualifiedName() + "." + f.name
}

// TypeTag returns the declared type tag.
func (f *Field) TypeTag() string { return f.typeTag }

// Label returns the declared label, defaulting to the humanized field name.
func (f *Field) Label() string { return f.label }

// Accessor returns the persistence accessor name, defaulting to the
// snake_case field name.
func (f *Field) Accessor() string { return f.accessor }

// Order returns the display-order counter assigned at schema build time.
func (f *Field) Order() int { return f.order }

// IsRequired reports the current required flag, including a temporary
// dependency-group force.
func (f *Field) IsRequired() bool { return f.required }

// IsPassword reports whether the field withholds its fill-in value.
func (f *Field) IsPassword() bool { return f.password }

// IsDisabled reports the rendering-only disabled hint.
func (f *Field) IsDisabled() bool { return f.disabled }

// IsReadonly reports the rendering-only readonly hint.
func (f *Field) IsReadonly() bool { return f.readonly }

// Choices returns the enumerated value set, if any.
func (f *Field) Choices() []Choice { return f.choices }

// Children returns the ordered child fields of a compound field.
func (f *Field) Children() []*Field { return f.children }

// Child returns the named child field, or nil.
func (f *Field) Child(name string) *Field { return f.childIndex[name] }

// Errors returns the field's ordered error messages for the current
// validation cycle.
func (f *Field) Errors() []string { return f.errs }

// HasErrors reports whether the field's own validation failed.
func (f *Field) HasErrors() bool { return len(f.errs) > 0 }

// Input returns the raw submitted input.
func (f *Field) Input() any { return f.input }

// Value returns the coerced, validated value. It is only meaningful when
// HasValue reports true.
func (f *Field) Value() any { return f.value }

// HasValue reports whether the field carries a defined value, either from
// successful validation or from the backing object.
func (f *Field) HasValue() bool { return f.hasValue }

// InitValue returns the value captured from the backing object at load
// time.
func (f *Field) InitValue() any { return f.initVal }

// SetInput stores raw submitted input and immediately recomputes the
// fill-in representation. Password fields always withhold fill-in.
func (f *Field) SetInput(raw any) {
	f.input = raw
	if !f.password {
		f.fill = f.fifValue(raw)
	}
}

// SetValue stores the coerced value and recomputes the fill-in
// representation unless the field is write-only or a password.
func (f *Field) SetValue(v any) {
	f.value = v
	f.hasValue = true
	if !f.writeonly && !f.password {
		f.fill = f.fifValue(v)
	}
}

// FIF returns the field's current fill-in representation: a string,
// []string, or a map of sub-key to string when the field type expands one
// value into several fill-in entries. Nil when there is nothing to fill
// in.
func (f *Field) FIF() any { return f.fill }

// HasInput reports whether input is defined and, after trimming, contains
// at least one non-whitespace character. Sequence input counts as present
// when at least one element is non-blank.
func (f *Field) HasInput() bool {
	switch in := f.input.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(in) != ""
	case []string:
		for _, s := range in {
			if strings.TrimSpace(s) != "" {
				return true
			}
		}
		return false
	case []any:
		for _, v := range in {
			if v != nil && strings.TrimSpace(fmt.Sprint(v)) != "" {
				return true
			}
		}
		return false
	default:
		// Nested maps (compound input) and other non-string payloads count
		// as present.
		return true
	}
}

// AddError resolves messageKey through the owning form's translator (or the
// process-wide default when the field is used standalone) and appends the
// message to the field's error list. When the field's form is itself nested
// inside a parent field, the error surfaces on that parent field instead.
func (f *Field) AddError(messageKey string, placeholders ...i18n.M) {
	msg := f.translator().T(messageKey, placeholders...)
	target := f
	if f.form != nil && f.form.parentField != nil {
		target = f.form.parentField
	}
	target.errs = append(target.errs, msg)
}

// ValidateField runs the fixed validation pipeline and reports success.
// Invalid user input never raises an error; it is recorded on the field and
// the method returns false.
func (f *Field) ValidateField() bool {
	if !f.HasInput() {
		if f.required {
			key := f.requiredMsg
			if key == "" {
				key = MsgRequired
			}
			f.AddError(key, i18n.M{"field": f.label})
			return false
		}
		return true
	}

	if !f.acceptsMultiple() && len(f.inputList()) > 1 {
		f.AddError(MsgMultiple)
		return false
	}

	if len(f.choices) > 0 {
		for _, v := range f.inputList() {
			if !f.validChoice(v) {
				f.AddError(MsgInvalidChoice, i18n.M{"value": v})
				return false
			}
		}
	}

	if !f.typ.Validate(f) {
		return false
	}

	if len(f.choices) == 0 && (f.rangeStart != nil || f.rangeEnd != nil) {
		if !f.checkRange() {
			// The type hook may already have coerced a value; a failed pass
			// must not leave one behind. The fill-in stays for redisplay.
			f.value = nil
			f.hasValue = false
			return false
		}
	}

	if !f.hasValue {
		f.inputToValue()
	}
	return true
}

// ValueChanged reports whether the string-normalized, order-independent
// representation of the initial value differs from the current value.
func (f *Field) ValueChanged() bool {
	return canonicalValue(f.initVal) != canonicalValue(f.value)
}

// applySteps runs the declared check/transform pipeline over v. The first
// failing step has already recorded its message when ok is false.
func (f *Field) applySteps(v any) (any, bool) {
	for _, step := range f.steps {
		next, ok := step.Apply(f, v)
		if !ok {
			return nil, false
		}
		v = next
	}
	return v, true
}

// inputToValue copies input into value on a fully successful validation,
// formatting through the declared template if one is set. Skipped when the
// type's validate hook already set the value.
func (f *Field) inputToValue() {
	v := f.scalarInput()
	if f.format != "" {
		if s, ok := v.(string); ok {
			v = fmt.Sprintf(f.format, s)
		}
	}
	f.SetValue(v)
}

// scalarInput returns the input collapsed to its natural shape: a single
// string for one value, []string for several.
func (f *Field) scalarInput() any {
	list := f.inputList()
	switch len(list) {
	case 0:
		return ""
	case 1:
		if !f.acceptsMultiple() {
			return list[0]
		}
	}
	return list
}

// inputList flattens the raw input into strings.
func (f *Field) inputList() []string {
	switch in := f.input.(type) {
	case nil:
		return nil
	case string:
		return []string{in}
	case []string:
		return in
	case []any:
		out := make([]string, 0, len(in))
		for _, v := range in {
			if v == nil {
				out = append(out, "")
				continue
			}
			out = append(out, fmt.Sprint(v))
		}
		return out
	default:
		return []string{fmt.Sprint(in)}
	}
}

func (f *Field) acceptsMultiple() bool {
	if f.multiple {
		return true
	}
	mv, ok := f.typ.(multiValued)
	return ok && mv.AcceptsMultiple()
}

func (f *Field) validChoice(v string) bool {
	return slices.ContainsFunc(f.choices, func(c Choice) bool { return c.Value == v })
}

// checkRange verifies numeric input against the declared inclusive bounds.
// The value set by the type's validate hook is preferred over re-parsing the
// raw input.
func (f *Field) checkRange() bool {
	n, ok := f.numericValue()
	if !ok {
		// Not numeric; the type check is responsible for that complaint.
		return true
	}
	start, end := f.rangeStart, f.rangeEnd
	switch {
	case start != nil && end != nil:
		if n < *start || n > *end {
			f.AddError(MsgRangeBetween, i18n.M{"start": *start, "end": *end})
			return false
		}
	case start != nil:
		if n < *start {
			f.AddError(MsgRangeStart, i18n.M{"start": *start})
			return false
		}
	case end != nil:
		if n > *end {
			f.AddError(MsgRangeEnd, i18n.M{"end": *end})
			return false
		}
	}
	return true
}

func (f *Field) numericValue() (float64, bool) {
	if f.hasValue {
		switch v := f.value.(type) {
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case float64:
			return v, true
		}
	}
	list := f.inputList()
	if len(list) == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(list[0]), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// fifValue converts an input or value into the fill-in representation,
// delegating to the field type's expansion hook when it provides one.
func (f *Field) fifValue(v any) any {
	if exp, ok := f.typ.(fifExpander); ok {
		return exp.FIFValue(f, v)
	}
	return fifString(v)
}

func (f *Field) translator() *i18n.Translator {
	if f.form != nil && f.form.translator != nil {
		return f.form.translator
	}
	return defaultTranslator()
}

// clearState resets everything a validation cycle produced: errors, input,
// values, and the cached fill-in representation. The schema itself is
// untouched.
func (f *Field) clearState() {
	f.input = nil
	f.value = nil
	f.hasValue = false
	f.initVal = nil
	f.hasInit = false
	f.errs = nil
	f.fill = nil
	f.involved = false
	if f.forced {
		f.required = false
		f.forced = false
	}
	for _, c := range f.children {
		c.clearState()
	}
}

// clearValues drops computed and initial values but keeps submitted input.
func (f *Field) clearValues() {
	f.value = nil
	f.hasValue = false
	f.initVal = nil
	f.hasInit = false
	for _, c := range f.children {
		c.clearValues()
	}
}

// initFrom populates value and init value from the backing object, using
// the field's custom extraction hook when one is declared and the supplied
// reader otherwise. Compound fields recurse with the fetched sub-value as
// the new item.
func (f *Field) initFrom(item any, read func(any, string) (any, bool)) {
	fetch := f.fetch
	if fetch == nil {
		fetch = read
	}
	v, ok := fetch(item, f.accessor)
	if !ok {
		return
	}

	if len(f.children) > 0 {
		for _, c := range f.children {
			c.initFrom(v, read)
		}
	}

	f.initVal = v
	f.hasInit = true
	f.SetValue(v)
}

// fifString renders a value in form-fill-in shape.
func fifString(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case []string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format(time.RFC3339)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if e == nil {
				out = append(out, "")
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		return out
	case map[string]any:
		// Compound input; children carry the fill-in entries.
		return nil
	default:
		return fmt.Sprint(x)
	}
}

// canonicalValue builds the order-independent string form used by
// ValueChanged. Sequences are sorted and joined; time values use their
// RFC 3339 text.
func canonicalValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(time.RFC3339)
	case []string:
		sorted := slices.Clone(x)
		slices.Sort(sorted)
		return strings.Join(sorted, "\x1f")
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, canonicalValue(e))
		}
		slices.Sort(parts)
		return strings.Join(parts, "\x1f")
	default:
		return fmt.Sprint(x)
	}
}

// fifEmpty reports whether a fill-in representation contributes nothing.
func fifEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case map[string]string:
		return len(x) == 0
	}
	return false
}

// humanize turns a field name into a default label: "first_name" becomes
// "First name".
func humanize(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

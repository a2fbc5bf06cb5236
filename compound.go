package formhandler

import "strings"

// compoundType validates a field that owns child fields. Input is the
// nested parameter map addressed by the compound's name; each child is
// given its slice of that map and validated in declaration order. On
// success the compound's own value becomes a map of child accessor to child
// value.
type compoundType struct{}

func (compoundType) Validate(f *Field) bool {
	in, ok := f.input.(map[string]any)
	if !ok {
		f.AddError(MsgCompound)
		return false
	}

	for _, c := range f.children {
		if v, present := in[c.name]; present {
			c.SetInput(v)
		} else if c.useFallback {
			c.SetInput(c.fallback)
		}
	}

	ok = true
	for _, c := range f.children {
		if !c.ValidateField() {
			ok = false
		}
	}
	if !ok {
		return false
	}

	value := make(map[string]any, len(f.children))
	for _, c := range f.children {
		if c.hasValue {
			value[c.accessor] = c.value
		}
	}
	f.SetValue(value)
	return true
}

// Field resolves a dotted path among the compound's children, so a compound
// field satisfies the same lookup contract as the form itself.
func (f *Field) Field(path string) *Field {
	name, rest, nested := strings.Cut(path, ".")
	child := f.childIndex[name]
	if child == nil || !nested {
		return child
	}
	return child.Field(rest)
}

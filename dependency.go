package formhandler

import (
	"fmt"
	"strings"
)

// resolveDependencies scans each dependency group for a member carrying a
// non-blank submitted value. The first such member (in group order) makes
// every not-already-required member of the group required for this
// validation pass. The returned fields carry the forced flag so the caller
// can revert them afterwards.
func (f *Form) resolveDependencies() []*Field {
	var forced []*Field
	for _, group := range f.dependency {
		triggered := false
		for _, name := range group {
			member := f.Field(name)
			if member == nil {
				continue
			}
			if v, ok := f.paramValue(name); ok && member.dependencySet(v) {
				triggered = true
				break
			}
		}
		if !triggered {
			continue
		}
		for _, name := range group {
			member := f.Field(name)
			if member == nil || member.required {
				continue
			}
			member.required = true
			member.forced = true
			forced = append(forced, member)
		}
	}
	return forced
}

// revertForced undoes the temporary required flags set by
// resolveDependencies.
func revertForced(fields []*Field) {
	for _, member := range fields {
		member.required = false
		member.forced = false
	}
}

// dependencySet reports whether a submitted value counts as "set" for
// dependency purposes. Blank values never count; a boolean field whose
// value is exactly false or zero does not count either.
func (f *Field) dependencySet(v any) bool {
	s := firstNonBlank(v)
	if s == "" {
		return false
	}
	if _, isBool := f.typ.(booleanType); isBool {
		switch strings.ToLower(s) {
		case "0", "false", "off", "no":
			return false
		}
	}
	return true
}

func firstNonBlank(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []string:
		for _, s := range x {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
		return ""
	case []any:
		for _, e := range x {
			if e == nil {
				continue
			}
			if t := strings.TrimSpace(fmt.Sprint(e)); t != "" {
				return t
			}
		}
		return ""
	case bool:
		if x {
			return "1"
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

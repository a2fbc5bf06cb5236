package formhandler

import (
	"fmt"
	"strings"
)

// TypeConstructor builds a fresh Type instance for one field.
type TypeConstructor func() Type

// builtinTypes maps short type tags to the library's field implementations.
// Populated here and never mutated afterwards.
var builtinTypes = map[string]TypeConstructor{
	"Text":     func() Type { return textType{} },
	"Hidden":   func() Type { return textType{} },
	"Password": func() Type { return passwordType{} },
	"Email":    func() Type { return emailType{} },
	"UUID":     func() Type { return uuidType{} },
	"Integer":  func() Type { return integerType{} },
	"Number":   func() Type { return numberType{} },
	"Boolean":  func() Type { return booleanType{} },
	"Select":   func() Type { return selectType{} },
	"Multiple": func() Type { return multipleType{} },
	"Date":     func() Type { return dateType{} },
	"DateTime": func() Type { return dateTimeType{} },
	"Compound": func() Type { return compoundType{} },
}

// extensions is the ordered list of user-registered tag namespaces,
// consulted after the built-ins. Register namespaces during program startup
// only; lookups assume the list no longer changes once forms are built.
var extensions []map[string]TypeConstructor

// RegisterTypes appends an extension namespace of type tags. A tag declared
// with a leading "+" resolves exclusively against extension namespaces, so
// extensions can shadow nothing by accident and still override built-ins
// explicitly.
func RegisterTypes(namespace map[string]TypeConstructor) {
	if len(namespace) == 0 {
		return
	}
	extensions = append(extensions, namespace)
}

// resolveType maps a declared type tag to its constructor. Unknown tags are
// schema errors, reported at form build time.
func resolveType(tag string) (TypeConstructor, error) {
	name, extOnly := strings.CutPrefix(tag, "+")
	if !extOnly {
		if ctor, ok := builtinTypes[name]; ok {
			return ctor, nil
		}
	}
	for _, ns := range extensions {
		if ctor, ok := ns[name]; ok {
			return ctor, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, tag)
}

package model

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

// ReadFieldValue extracts the value named by accessor from obj. Accessors
// use snake_case; for structs they are mapped to CamelCase names. Lookup
// order: a niladic single-result method, an exported struct field, a map
// key. Returns (nil, false) when obj is nil or lacks the accessor.
func ReadFieldValue(obj any, accessor string) (any, bool) {
	if obj == nil || accessor == "" {
		return nil, false
	}

	if m, ok := obj.(map[string]any); ok {
		v, ok := m[accessor]
		return v, ok
	}

	rv := reflect.ValueOf(obj)
	name := strcase.ToCamel(accessor)

	if method := rv.MethodByName(name); method.IsValid() {
		if t := method.Type(); t.NumIn() == 0 && t.NumOut() == 1 {
			return method.Call(nil)[0].Interface(), true
		}
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			v := rv.MapIndex(reflect.ValueOf(accessor))
			if v.IsValid() {
				return v.Interface(), true
			}
		}
	}
	return nil, false
}

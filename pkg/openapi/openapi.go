package openapi

import (
	"context"
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	formhandler "github.com/augensalat/html-formhandler"
)

// Import loads an OpenAPI 3 document from raw YAML or JSON and converts
// the named component schema into form field declarations. The schema
// must be an object schema; its properties become fields ordered by
// property name.
func Import(ctx context.Context, data []byte, schema string) ([]*formhandler.FieldDecl, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schema)
	}
	ref, ok := doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schema)
	}
	return FromSchema(ref.Value)
}

// FromSchema converts a resolved object schema into field declarations.
func FromSchema(schema *openapi3.Schema) ([]*formhandler.FieldDecl, error) {
	if !schema.Type.Is(openapi3.TypeObject) {
		return nil, ErrNotObject
	}
	return objectFields(schema)
}

func objectFields(schema *openapi3.Schema) ([]*formhandler.FieldDecl, error) {
	decls := make([]*formhandler.FieldDecl, 0, len(schema.Properties))
	for _, name := range sortedKeys(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		decl, err := propertyField(name, ref.Value, slices.Contains(schema.Required, name))
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func propertyField(name string, prop *openapi3.Schema, required bool) (*formhandler.FieldDecl, error) {
	var opts []formhandler.FieldOption
	if required {
		opts = append(opts, formhandler.Required())
	}
	if prop.Title != "" {
		opts = append(opts, formhandler.Label(prop.Title))
	}

	elem := prop
	if prop.Type.Is(openapi3.TypeArray) {
		if prop.Items == nil || prop.Items.Value == nil {
			return nil, fmt.Errorf("array property without item schema")
		}
		elem = prop.Items.Value
		opts = append(opts, formhandler.Multiple())
	}

	if elem.Type.Is(openapi3.TypeObject) {
		children, err := objectFields(elem)
		if err != nil {
			return nil, err
		}
		opts = append(opts, formhandler.Children(children...))
		return formhandler.NewField(name, "Compound", opts...), nil
	}

	if len(elem.Enum) > 0 {
		choices := make([]formhandler.Choice, 0, len(elem.Enum))
		for _, v := range elem.Enum {
			s := fmt.Sprint(v)
			choices = append(choices, formhandler.Choice{Value: s, Label: s})
		}
		opts = append(opts, formhandler.Choices(choices...))
	}

	switch {
	case elem.Min != nil && elem.Max != nil:
		opts = append(opts, formhandler.Range(*elem.Min, *elem.Max))
	case elem.Min != nil:
		opts = append(opts, formhandler.RangeStart(*elem.Min))
	case elem.Max != nil:
		opts = append(opts, formhandler.RangeEnd(*elem.Max))
	}

	if elem.Default != nil {
		opts = append(opts, formhandler.Default(fmt.Sprint(elem.Default)))
	}

	return formhandler.NewField(name, typeTag(elem), opts...), nil
}

// typeTag picks the field type for a scalar property schema.
func typeTag(schema *openapi3.Schema) string {
	switch {
	case schema.Type.Is(openapi3.TypeInteger):
		return "Integer"
	case schema.Type.Is(openapi3.TypeNumber):
		return "Number"
	case schema.Type.Is(openapi3.TypeBoolean):
		return "Boolean"
	}
	if len(schema.Enum) > 0 {
		return "Select"
	}
	switch schema.Format {
	case "email":
		return "Email"
	case "uuid":
		return "UUID"
	case "date":
		return "Date"
	case "date-time":
		return "DateTime"
	case "password":
		return "Password"
	}
	return "Text"
}

func sortedKeys(m map[string]*openapi3.SchemaRef) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

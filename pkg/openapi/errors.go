package openapi

import "errors"

var (
	// ErrSchemaNotFound is returned when the requested component schema
	// is not declared in the document.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrNotObject is returned when the requested schema is not an
	// object schema and therefore cannot describe a form.
	ErrNotObject = errors.New("openapi: schema is not an object")
)

// Package openapi imports OpenAPI 3 object schemas as form field
// declarations.
//
// Given a document that declares component schemas, Import resolves the
// named schema and maps its properties onto formhandler field types:
// string formats select Email, UUID, Date, DateTime or Password fields,
// enums become Select fields with fixed choices, numeric bounds become
// range checks, arrays become multi-value fields and nested objects
// become compound fields. The resulting declarations plug straight into
// formhandler.New via formhandler.WithFields.
package openapi

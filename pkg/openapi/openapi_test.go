package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formhandler "github.com/augensalat/html-formhandler"
	"github.com/augensalat/html-formhandler/pkg/openapi"
)

const contactDoc = `
openapi: 3.0.3
info:
  title: Contacts
  version: "1.0"
paths: {}
components:
  schemas:
    Contact:
      type: object
      required: [name, email]
      properties:
        name:
          type: string
        email:
          type: string
          format: email
        age:
          type: integer
          minimum: 0
          maximum: 150
        newsletter:
          type: boolean
          default: false
        topic:
          type: string
          enum: [sales, support]
        tags:
          type: array
          items:
            type: string
        address:
          type: object
          properties:
            city:
              type: string
            zip:
              type: string
`

func TestImport(t *testing.T) {
	t.Parallel()

	decls, err := openapi.Import(context.Background(), []byte(contactDoc), "Contact")
	require.NoError(t, err)

	type field struct{ Name, Type string }
	got := make([]field, 0, len(decls))
	for _, d := range decls {
		got = append(got, field{Name: d.Name(), Type: d.Type()})
	}
	want := []field{
		{"address", "Compound"},
		{"age", "Integer"},
		{"email", "Email"},
		{"name", "Text"},
		{"newsletter", "Boolean"},
		{"tags", "Text"},
		{"topic", "Select"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestImportBehavior(t *testing.T) {
	t.Parallel()

	decls, err := openapi.Import(context.Background(), []byte(contactDoc), "Contact")
	require.NoError(t, err)

	form, err := formhandler.New("contact", formhandler.WithFields(decls...))
	require.NoError(t, err)

	t.Run("required and range from schema", func(t *testing.T) {
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"name":  "",
			"email": "not-an-address",
			"age":   "200",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"This field is required"}, form.Field("name").Errors())
		assert.Equal(t, []string{"value must be between 0 and 150"}, form.Field("age").Errors())
	})

	t.Run("valid submission", func(t *testing.T) {
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"name":       "Alice",
			"email":      "alice@example.com",
			"age":        "30",
			"topic":      "sales",
			"newsletter": "1",
		}))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 30, form.Values()["age"])
	})
}

func TestImportErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown schema", func(t *testing.T) {
		t.Parallel()
		_, err := openapi.Import(context.Background(), []byte(contactDoc), "Missing")
		assert.ErrorIs(t, err, openapi.ErrSchemaNotFound)
	})

	t.Run("non-object schema", func(t *testing.T) {
		t.Parallel()
		doc := `
openapi: 3.0.3
info: {title: T, version: "1"}
paths: {}
components:
  schemas:
    Name:
      type: string
`
		_, err := openapi.Import(context.Background(), []byte(doc), "Name")
		assert.ErrorIs(t, err, openapi.ErrNotObject)
	})
}

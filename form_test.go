package formhandler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formhandler "github.com/augensalat/html-formhandler"
	"github.com/augensalat/html-formhandler/pkg/i18n"
	"github.com/augensalat/html-formhandler/pkg/model"
)

func personFields() []*formhandler.FieldDecl {
	return []*formhandler.FieldDecl{
		formhandler.NewField("name", "Text", formhandler.Required()),
		formhandler.NewField("age", "Integer", formhandler.Range(0, 150)),
	}
}

func TestFormEndToEnd(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name": "",
		"age":  "200",
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, form.Validated())
	assert.True(t, form.RanValidation())
	assert.Equal(t, map[string][]string{
		"name": {"This field is required"},
		"age":  {"value must be between 0 and 150"},
	}, form.FieldErrors())
	assert.Equal(t, 2, form.NumErrors())
	assert.False(t, form.MustField("age").HasValue())
	assert.NotContains(t, form.Values(), "age")

	ok, err = form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name": "Alice",
		"age":  "30",
	}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, form.Validated())
	assert.False(t, form.HasErrors())
	assert.Equal(t, map[string]any{"name": "Alice", "age": 30}, form.Values())
}

func TestFormInitialDisplay(t *testing.T) {
	t.Parallel()

	t.Run("no params means no validation", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
		require.NoError(t, err)

		ok, err := form.Process(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, form.RanValidation())
		assert.False(t, form.HasErrors())
		assert.True(t, form.Processed())
	})

	t.Run("populates from item", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
		require.NoError(t, err)

		_, err = form.Process(context.Background(), formhandler.WithItem(map[string]any{
			"name": "Bob",
			"age":  44,
		}))
		require.NoError(t, err)

		assert.Equal(t, "Bob", form.MustField("name").Value())
		assert.Equal(t, 44, form.MustField("age").Value())
		assert.Equal(t, map[string]any{"name": "Bob", "age": "44"}, form.FIF())
	})

	t.Run("populates from init mapping", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
		require.NoError(t, err)

		_, err = form.Process(context.Background(),
			formhandler.WithInit(map[string]any{"name": "Eve"}))
		require.NoError(t, err)
		assert.Equal(t, "Eve", form.MustField("name").Value())
		assert.False(t, form.MustField("age").HasValue())
	})

	t.Run("item id without adapter is fatal", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
		require.NoError(t, err)

		_, err = form.Process(context.Background(), formhandler.WithItemID("1"))
		assert.ErrorIs(t, err, formhandler.ErrNoAdapter)
	})
}

func TestFormModelRoundTrip(t *testing.T) {
	t.Parallel()

	adapter := model.NewMemory()

	create, err := formhandler.New("person",
		formhandler.WithFields(personFields()...),
		formhandler.WithAdapter(adapter),
	)
	require.NoError(t, err)

	ok, err := create.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name": "Alice",
		"age":  "30",
	}))
	require.NoError(t, err)
	require.True(t, ok)

	stored, ok2 := create.Item().(map[string]any)
	require.True(t, ok2)
	require.NotEmpty(t, stored["id"])

	// Edit cycle: load by id, change one field.
	edit, err := formhandler.New("person",
		formhandler.WithFields(personFields()...),
		formhandler.WithAdapter(adapter),
	)
	require.NoError(t, err)

	_, err = edit.Process(context.Background(), formhandler.WithItemID(stored["id"]))
	require.NoError(t, err)
	assert.Equal(t, "Alice", edit.MustField("name").Value())
	assert.Equal(t, map[string]any{"name": "Alice", "age": "30"}, edit.FIF())

	ok, err = edit.Process(context.Background(),
		formhandler.WithItemID(stored["id"]),
		formhandler.WithItem(stored),
		formhandler.WithParams(map[string]any{"name": "Alice", "age": "31"}),
	)
	require.NoError(t, err)
	require.True(t, ok)

	reloaded, err := adapter.Load(context.Background(), stored["id"])
	require.NoError(t, err)
	assert.Equal(t, 31, reloaded.(map[string]any)["age"])
}

func TestFormValuesFlags(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("account", formhandler.WithFields(
		formhandler.NewField("name", "Text"),
		formhandler.NewField("legacyCode", "Text", formhandler.NoUpdate()),
		formhandler.NewField("resetToken", "Text", formhandler.Clear()),
		formhandler.NewField("nickname", "Text"),
	))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name":       "Alice",
		"legacyCode": "X9",
		"resetToken": "t0k3n",
	}))
	require.NoError(t, err)
	require.True(t, ok)

	// noupdate is absent, clear is an explicit nil, untouched fields are
	// skipped.
	assert.Equal(t, map[string]any{
		"name":        "Alice",
		"reset_token": nil,
	}, form.Values())
}

func TestFormWriteOnly(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("account", formhandler.WithFields(
		formhandler.NewField("apiKey", "Text", formhandler.WriteOnly()),
	))
	require.NoError(t, err)

	_, err = form.Process(context.Background(),
		formhandler.WithItem(map[string]any{"api_key": "secret"}))
	require.NoError(t, err)
	assert.Nil(t, form.FIF(), "write-only values never leak into fill-in")

	_, err = form.Process(context.Background(),
		formhandler.WithParams(map[string]any{"apiKey": "fresh"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"apiKey": "fresh"}, form.FIF())
}

func TestFormPrefixed(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("contact",
		formhandler.WithFields(formhandler.NewField("name", "Text", formhandler.Required())),
		formhandler.WithPrefix(),
	)
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"contact.name": "Alice",
		"other.name":   "ignored",
	}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"contact.name": "Alice"}, form.FIF())
}

func TestFormCompound(t *testing.T) {
	t.Parallel()

	newForm := func(t *testing.T) *formhandler.Form {
		t.Helper()
		form, err := formhandler.New("order", formhandler.WithFields(
			formhandler.NewField("email", "Email", formhandler.Required()),
			formhandler.NewField("address", "Compound", formhandler.Children(
				formhandler.NewField("city", "Text", formhandler.Required()),
				formhandler.NewField("zip", "Text"),
			)),
		))
		require.NoError(t, err)
		return form
	}

	t.Run("nested params validate and aggregate", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"email":        "a@example.com",
			"address.city": "Berlin",
			"address.zip":  "10115",
		}))
		require.NoError(t, err)
		require.True(t, ok, "errors: %v", form.Errors())

		assert.Equal(t, "Berlin", form.MustField("address.city").Value())
		assert.Equal(t, map[string]any{
			"email":   "a@example.com",
			"address": map[string]any{"city": "Berlin", "zip": "10115"},
		}, form.Values())
		assert.Equal(t, map[string]any{
			"email":        "a@example.com",
			"address.city": "Berlin",
			"address.zip":  "10115",
		}, form.FIF())
	})

	t.Run("child error surfaces under qualified name", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"email":        "a@example.com",
			"address.city": "",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, map[string][]string{
			"address.city": {"This field is required"},
		}, form.FieldErrors())
	})

	t.Run("scalar input for a compound is rejected", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"email":   "a@example.com",
			"address": "not a struct",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"Invalid nested input"}, form.MustField("address").Errors())
	})
}

func TestFormCrossValidation(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("signup",
		formhandler.WithFields(
			formhandler.NewField("password", "Password", formhandler.Required()),
			formhandler.NewField("confirm", "Password", formhandler.Required()),
		),
		formhandler.WithCrossValidation(func(f *formhandler.Form) {
			if f.MustField("password").Value() != f.MustField("confirm").Value() {
				f.MustField("confirm").AddError("Passwords do not match")
			}
		}),
	)
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"password": "open sesame",
		"confirm":  "open sesamee",
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Passwords do not match"}, form.MustField("confirm").Errors())
}

func TestFormModelValidation(t *testing.T) {
	t.Parallel()

	t.Run("user-level finding lands on the field", func(t *testing.T) {
		t.Parallel()
		taken := map[string]bool{"alice": true}
		form, err := formhandler.New("signup",
			formhandler.WithFields(formhandler.NewField("username", "Text", formhandler.Required())),
			formhandler.WithModelValidation(func(_ context.Context, f *formhandler.Form) error {
				name, _ := f.MustField("username").Value().(string)
				if taken[name] {
					f.MustField("username").AddError("Username is already taken")
				}
				return nil
			}),
		)
		require.NoError(t, err)

		ok, err := form.Process(context.Background(),
			formhandler.WithParams(map[string]any{"username": "alice"}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"Username is already taken"}, form.MustField("username").Errors())
	})

	t.Run("infrastructure failure is fatal", func(t *testing.T) {
		t.Parallel()
		dbDown := errors.New("connection refused")
		form, err := formhandler.New("signup",
			formhandler.WithFields(formhandler.NewField("username", "Text")),
			formhandler.WithModelValidation(func(context.Context, *formhandler.Form) error {
				return dbDown
			}),
		)
		require.NoError(t, err)

		_, err = form.Process(context.Background(),
			formhandler.WithParams(map[string]any{"username": "alice"}))
		assert.ErrorIs(t, err, dbDown)
	})
}

func TestFormChoicesLoader(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("ticket", formhandler.WithFields(
		formhandler.NewField("queue", "Select", formhandler.LoadChoices(
			func(context.Context, *formhandler.Field) ([]formhandler.Choice, error) {
				return []formhandler.Choice{
					{Value: "sales", Label: "Sales"},
					{Value: "support", Label: "Support"},
				}, nil
			})),
	))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(),
		formhandler.WithParams(map[string]any{"queue": "billing"}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"'billing' is not a valid value"}, form.MustField("queue").Errors())
	assert.Len(t, form.MustField("queue").Choices(), 2)

	ok, err = form.Process(context.Background(),
		formhandler.WithParams(map[string]any{"queue": "support"}))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFormFormLevelErrors(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("person",
		formhandler.WithFields(personFields()...),
		formhandler.WithCrossValidation(func(f *formhandler.Form) {
			f.AddError("Submission window is closed")
		}),
	)
	require.NoError(t, err)

	ok, err := form.Process(context.Background(),
		formhandler.WithParams(map[string]any{"name": "Alice"}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Submission window is closed"}, form.FormErrors())
	assert.Equal(t, []string{"Submission window is closed"}, form.Errors())
	assert.True(t, form.HasErrors())
}

func TestFormSubFormErrorRouting(t *testing.T) {
	t.Parallel()

	outer, err := formhandler.New("outer", formhandler.WithFields(
		formhandler.NewField("shipping", "Compound", formhandler.Children(
			formhandler.NewField("city", "Text"),
		)),
	))
	require.NoError(t, err)
	host := outer.MustField("shipping")

	inner, err := formhandler.New("address",
		formhandler.WithFields(formhandler.NewField("zip", "Text", formhandler.Required())),
		formhandler.WithParentField(host),
	)
	require.NoError(t, err)

	ok, err := inner.Process(context.Background(),
		formhandler.WithParams(map[string]any{"zip": ""}))
	require.NoError(t, err)
	assert.False(t, ok)

	// The inner field stays clean; its message climbs to the hosting field.
	assert.Empty(t, inner.MustField("zip").Errors())
	assert.Equal(t, []string{"This field is required"}, host.Errors())
}

func TestFormClearAndReprocess(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("person", formhandler.WithFields(personFields()...))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name": "Alice",
		"age":  "30",
	}))
	require.NoError(t, err)
	require.True(t, ok)

	form.Clear()
	assert.False(t, form.Processed())
	assert.False(t, form.MustField("name").HasValue())
	assert.Nil(t, form.FIF())

	// The merged arguments survive Clear; a bare Process reruns the cycle.
	ok, err = form.Process(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Alice", "age": 30}, form.Values())

	// Repeated argument-less Process calls reproduce the same result.
	ok, err = form.Process(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Alice", "age": 30}, form.Values())
}

func TestFormFIFSkipsPasswordField(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("login", formhandler.WithFields(
		formhandler.NewField("username", "Text", formhandler.Required()),
		formhandler.NewField("password", "Password", formhandler.Required()),
	))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"username": "alice",
		"password": "secret",
	}))
	require.NoError(t, err)
	require.True(t, ok)

	fill := form.FIF()
	assert.Equal(t, map[string]any{"username": "alice"}, fill)
	_, present := fill["password"]
	assert.False(t, present)
}

func TestFormTranslator(t *testing.T) {
	t.Parallel()

	catalog, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithMessages("en", formhandler.DefaultMessages()),
		i18n.WithMessages("de", map[string]any{
			formhandler.MsgRequired: "Dieses Feld ist erforderlich",
		}),
	)
	require.NoError(t, err)

	form, err := formhandler.New("person",
		formhandler.WithFields(personFields()...),
		formhandler.WithTranslator(catalog.Translator("de")),
	)
	require.NoError(t, err)

	ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
		"name": "",
		"age":  "200",
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Dieses Feld ist erforderlich"}, form.MustField("name").Errors())
	// Untranslated keys fall back to the default language.
	assert.Equal(t, []string{"value must be between 0 and 150"}, form.MustField("age").Errors())
}

func TestFormSchemaErrors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate field name", func(t *testing.T) {
		t.Parallel()
		_, err := formhandler.New("f", formhandler.WithFields(
			formhandler.NewField("name", "Text"),
			formhandler.NewField("name", "Text"),
		))
		assert.ErrorIs(t, err, formhandler.ErrDuplicateField)
	})

	t.Run("dependency group too small", func(t *testing.T) {
		t.Parallel()
		_, err := formhandler.New("f",
			formhandler.WithFields(formhandler.NewField("name", "Text")),
			formhandler.WithDependency("name"),
		)
		assert.ErrorIs(t, err, formhandler.ErrBadDependency)
	})

	t.Run("must field panics on miss", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("f",
			formhandler.WithFields(formhandler.NewField("name", "Text")))
		require.NoError(t, err)
		assert.Panics(t, func() { form.MustField("missing") })
	})
}

func TestFormDefaultInput(t *testing.T) {
	t.Parallel()

	form, err := formhandler.New("settings", formhandler.WithFields(
		formhandler.NewField("theme", "Text", formhandler.Default("light")),
		formhandler.NewField("name", "Text"),
	))
	require.NoError(t, err)

	ok, err := form.Process(context.Background(),
		formhandler.WithParams(map[string]any{"name": "Alice"}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"theme": "light", "name": "Alice"}, form.Values())
}

package formhandler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formhandler "github.com/augensalat/html-formhandler"
)

func addressForm(t *testing.T) *formhandler.Form {
	t.Helper()
	form, err := formhandler.New("address",
		formhandler.WithFields(
			formhandler.NewField("street", "Text"),
			formhandler.NewField("city", "Text"),
			formhandler.NewField("zip", "Text"),
		),
		formhandler.WithDependency("street", "city", "zip"),
	)
	require.NoError(t, err)
	return form
}

func TestDependencyGroup(t *testing.T) {
	t.Parallel()

	t.Run("one filled member forces the rest", func(t *testing.T) {
		t.Parallel()
		form := addressForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"street": "",
			"city":   "Berlin",
			"zip":    "",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, map[string][]string{
			"street": {"This field is required"},
			"zip":    {"This field is required"},
		}, form.FieldErrors())

		// Forced flags are reverted once validation finished.
		assert.False(t, form.MustField("street").IsRequired())
		assert.False(t, form.MustField("city").IsRequired())
		assert.False(t, form.MustField("zip").IsRequired())
	})

	t.Run("all blank stays optional", func(t *testing.T) {
		t.Parallel()
		form := addressForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"street": "",
			"city":   " ",
			"zip":    "",
		}))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, form.HasErrors())
	})

	t.Run("all filled validates", func(t *testing.T) {
		t.Parallel()
		form := addressForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"street": "Unter den Linden 1",
			"city":   "Berlin",
			"zip":    "10117",
		}))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("declared required flag survives the revert", func(t *testing.T) {
		t.Parallel()
		form, err := formhandler.New("address",
			formhandler.WithFields(
				formhandler.NewField("street", "Text", formhandler.Required()),
				formhandler.NewField("city", "Text"),
			),
			formhandler.WithDependency("street", "city"),
		)
		require.NoError(t, err)

		_, err = form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"street": "Unter den Linden 1",
			"city":   "",
		}))
		require.NoError(t, err)
		assert.True(t, form.MustField("street").IsRequired())
		assert.False(t, form.MustField("city").IsRequired())
	})
}

func TestDependencyNestedMembers(t *testing.T) {
	t.Parallel()

	newForm := func(t *testing.T) *formhandler.Form {
		t.Helper()
		form, err := formhandler.New("order",
			formhandler.WithFields(
				formhandler.NewField("address", "Compound", formhandler.Children(
					formhandler.NewField("city", "Text"),
					formhandler.NewField("zip", "Text"),
				)),
			),
			formhandler.WithDependency("address.city", "address.zip"),
		)
		require.NoError(t, err)
		return form
	}

	t.Run("nested member triggers the group", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"address.city": "Berlin",
			"address.zip":  "",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, map[string][]string{
			"address.zip": {"This field is required"},
		}, form.FieldErrors())
		assert.False(t, form.MustField("address.zip").IsRequired())
	})

	t.Run("all blank stays optional", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"address.city": "",
			"address.zip":  "",
		}))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestDependencyBooleanTrigger(t *testing.T) {
	t.Parallel()

	newForm := func(t *testing.T) *formhandler.Form {
		t.Helper()
		form, err := formhandler.New("shipping",
			formhandler.WithFields(
				formhandler.NewField("giftWrap", "Boolean"),
				formhandler.NewField("giftMessage", "Text"),
			),
			formhandler.WithDependency("giftWrap", "giftMessage"),
		)
		require.NoError(t, err)
		return form
	}

	t.Run("unchecked box does not trigger", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"giftWrap":    "0",
			"giftMessage": "",
		}))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("checked box forces the group", func(t *testing.T) {
		t.Parallel()
		form := newForm(t)
		ok, err := form.Process(context.Background(), formhandler.WithParams(map[string]any{
			"giftWrap":    "1",
			"giftMessage": "",
		}))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"This field is required"},
			form.MustField("giftMessage").Errors())
	})
}

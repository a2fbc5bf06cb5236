package params_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augensalat/html-formhandler/pkg/params"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flat     map[string]any
		expected params.Map
	}{
		{
			name:     "empty input",
			flat:     map[string]any{},
			expected: params.Map{},
		},
		{
			name: "flat keys pass through",
			flat: map[string]any{"name": "Alice", "age": "30"},
			expected: params.Map{
				"name": "Alice",
				"age":  "30",
			},
		},
		{
			name: "dot segments nest",
			flat: map[string]any{
				"address.city":   "Berlin",
				"address.street": "Unter den Linden",
				"name":           "Alice",
			},
			expected: params.Map{
				"name": "Alice",
				"address": params.Map{
					"city":   "Berlin",
					"street": "Unter den Linden",
				},
			},
		},
		{
			name: "bracket indices build slices",
			flat: map[string]any{
				"tags[0]": "a",
				"tags[1]": "b",
			},
			expected: params.Map{
				"tags": []any{"a", "b"},
			},
		},
		{
			name: "sparse indices leave nil slots",
			flat: map[string]any{"tags[2]": "c"},
			expected: params.Map{
				"tags": []any{nil, nil, "c"},
			},
		},
		{
			name: "dots below an index",
			flat: map[string]any{
				"contacts[0].email": "a@example.com",
				"contacts[1].email": "b@example.com",
			},
			expected: params.Map{
				"contacts": []any{
					params.Map{"email": "a@example.com"},
					params.Map{"email": "b@example.com"},
				},
			},
		},
		{
			name: "deep nesting",
			flat: map[string]any{"a.b.c": "x"},
			expected: params.Map{
				"a": params.Map{"b": params.Map{"c": "x"}},
			},
		},
		{
			name: "malformed index stays part of the key",
			flat: map[string]any{"tags[x]": "a"},
			expected: params.Map{
				"tags[x]": "a",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, params.Normalize(tt.flat))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	flat := map[string]any{"name": "Alice", "tags": []string{"a", "b"}}
	once := params.Normalize(flat)
	twice := params.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestUnder(t *testing.T) {
	t.Parallel()

	m := params.Normalize(map[string]any{
		"login.email":    "a@example.com",
		"login.password": "secret",
	})

	t.Run("strips one namespace level", func(t *testing.T) {
		t.Parallel()
		sub := params.Under(m, "login")
		require.Len(t, sub, 2)
		assert.Equal(t, "a@example.com", sub["email"])
	})

	t.Run("missing prefix yields empty map", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, params.Under(m, "signup"))
	})

	t.Run("scalar under prefix yields empty map", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, params.Under(params.Map{"login": "x"}, "login"))
	})
}

func TestFromURLValues(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("name", "Alice")
	values.Add("tags", "a")
	values.Add("tags", "b")

	flat := params.FromURLValues(values)
	assert.Equal(t, "Alice", flat["name"])
	assert.Equal(t, []string{"a", "b"}, flat["tags"])
}

// Package params expands flat HTTP-style parameter maps into the nested
// structure expected by compound form fields.
//
// Keys may address nested values with dot segments and slice slots with
// bracket indices:
//
//	flat := map[string]any{
//		"name":         "Alice",
//		"address.city": "Berlin",
//		"tags[0]":      "a",
//		"tags[1]":      "b",
//	}
//	nested := params.Normalize(flat)
//	// map[name:Alice address:map[city:Berlin] tags:[a b]]
//
// Normalization is purely syntactic: no field types are consulted, and a map
// without dotted or bracketed keys passes through unchanged.
package params

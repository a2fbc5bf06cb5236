// Package formhandler is a form-definition and validation layer for web
// applications: declare named, typed fields once, feed the form raw
// HTTP-style parameters, and get back coerced values, per-field error
// messages, and fill-in data for re-rendering.
//
// # Quick start
//
// Declare a schema, process submitted parameters, and inspect the result:
//
//	form, err := formhandler.New("contact",
//	    formhandler.WithFields(
//	        formhandler.NewField("name", "Text", formhandler.Required()),
//	        formhandler.NewField("age", "Integer", formhandler.Range(0, 150)),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := form.Process(ctx, formhandler.WithParams(map[string]any{
//	    "name": "Alice",
//	    "age":  "30",
//	}))
//	// ok == true; form.Values() == map[string]any{"name": "Alice", "age": 30}
//
// On failure every submitted value stays available through FIF, so the form
// can be redisplayed with the user's input and inline messages:
//
//	if !ok {
//	    fill := form.FIF()          // qualified name -> fill-in value
//	    errs := form.FieldErrors()  // qualified name -> messages
//	}
//
// # Field types
//
// Built-in type tags: Text, Hidden, Password, Email, UUID, Integer, Number,
// Boolean, Select, Multiple, Date, DateTime, and Compound for nested field
// groups. RegisterTypes adds extension namespaces; a tag with a leading "+"
// resolves only against extensions.
//
// # Model binding
//
// A form can populate its fields from a backing object and persist
// validated values back through a model adapter (see pkg/model). Without
// parameters Process takes the initial-display path: values are read off
// the object and exposed via FIF, and no validation runs.
//
// # Localization
//
// Error messages resolve through an injected pkg/i18n translator; without
// one, a process-wide English translator with DefaultMessages is used.
//
// A Form instance handles one request at a time. Build a fresh form per
// request, or reuse one sequentially; Process clears prior state on
// re-entry.
package formhandler

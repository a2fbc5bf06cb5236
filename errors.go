package formhandler

import "errors"

var (
	// ErrUnknownFieldType is returned when a schema names a type tag that no
	// registry namespace resolves.
	ErrUnknownFieldType = errors.New("formhandler: unknown field type")

	// ErrFieldNotFound is raised by MustField for a path that does not
	// resolve.
	ErrFieldNotFound = errors.New("formhandler: field not found")

	// ErrNoAdapter is returned when a form is given an item id but no model
	// adapter to load it with.
	ErrNoAdapter = errors.New("formhandler: model adapter required to load item by id")

	// ErrDuplicateField is returned when two sibling fields share a name.
	ErrDuplicateField = errors.New("formhandler: duplicate field name")

	// ErrBadChoices is returned for a malformed choice list, such as a flat
	// value/label list with an odd element count.
	ErrBadChoices = errors.New("formhandler: malformed choices list")

	// ErrBadDependency is returned for a dependency group with fewer than
	// two field names.
	ErrBadDependency = errors.New("formhandler: dependency group needs at least two fields")
)

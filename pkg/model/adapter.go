package model

import "context"

// Adapter loads and persists the object backing a form.
//
// Load returns the object for id, or nil when it does not exist.
// ReadField extracts one field value off an object; the second return is
// false when the object lacks the accessor.
// Persist creates the object when obj is nil and updates it otherwise,
// returning the stored object.
type Adapter interface {
	Load(ctx context.Context, id any) (any, error)
	ReadField(obj any, accessor string) (any, bool)
	Persist(ctx context.Context, obj any, values map[string]any) (any, error)
}

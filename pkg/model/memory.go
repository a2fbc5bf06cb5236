package model

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Memory is an in-memory Adapter keyed by string ids. It assigns sequential
// ids on create and is safe for concurrent use. Intended for tests and
// demos.
type Memory struct {
	mu      sync.Mutex
	objects map[string]map[string]any
	nextID  int
}

// NewMemory creates an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]map[string]any)}
}

// Load returns the stored object for id, or nil when absent.
func (m *Memory) Load(_ context.Context, id any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[fmt.Sprint(id)]
	if !ok {
		return nil, nil
	}
	return obj, nil
}

// ReadField reads a field value using the default extraction strategy.
func (m *Memory) ReadField(obj any, accessor string) (any, bool) {
	return ReadFieldValue(obj, accessor)
}

// Persist creates a new object when obj is nil, otherwise merges values into
// the existing one. The stored object is returned with its "id" key set.
func (m *Memory) Persist(_ context.Context, obj any, values map[string]any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id string
	stored, _ := obj.(map[string]any)
	if stored == nil {
		m.nextID++
		id = strconv.Itoa(m.nextID)
		stored = map[string]any{"id": id}
	} else {
		id = fmt.Sprint(stored["id"])
	}

	merged := make(map[string]any, len(stored)+len(values))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	m.objects[id] = merged
	return merged, nil
}

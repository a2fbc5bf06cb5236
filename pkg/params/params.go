package params

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Map is a nested parameter mapping. Values are strings, []string, nested
// Maps, or []any slices produced by bracket indices.
type Map = map[string]any

// Normalize expands dot segments and bracket indices in the keys of flat
// into a nested Map. Keys are processed in sorted order so overlapping
// assignments are deterministic. A map whose keys carry no dots or brackets
// is returned structurally unchanged.
func Normalize(flat map[string]any) Map {
	out := make(Map, len(flat))
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		segs := parseKey(key)
		if len(segs) == 0 {
			continue
		}
		setPath(out, segs, flat[key])
	}
	return out
}

// FromURLValues converts decoded form values into a flat parameter map
// suitable for Normalize. Single-element value lists collapse to a plain
// string; repeated keys stay a []string.
func FromURLValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) == 1 {
			out[key] = vs[0]
			continue
		}
		out[key] = vs
	}
	return out
}

// Under returns the sub-map stored below prefix, for forms whose HTML field
// names are namespaced under the form's own name. Returns an empty Map when
// the prefix key is absent or does not hold a nested map.
func Under(m Map, prefix string) Map {
	sub, ok := m[prefix].(map[string]any)
	if !ok {
		return Map{}
	}
	return sub
}

type segment struct {
	name  string
	index int // -1 when the segment carries no bracket index
}

func parseKey(key string) []segment {
	parts := strings.Split(key, ".")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		name, idx := splitIndex(part)
		if name == "" {
			continue
		}
		segs = append(segs, segment{name: name, index: idx})
	}
	return segs
}

// splitIndex separates a trailing bracket index from a segment name.
// "tags[2]" yields ("tags", 2); a malformed index is kept as part of the
// name so unexpected keys survive normalization verbatim.
func splitIndex(s string) (string, int) {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return s, -1
	}
	n, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || n < 0 {
		return s, -1
	}
	return s[:open], n
}

func setPath(m Map, segs []segment, value any) {
	head := segs[0]
	if len(segs) == 1 {
		if head.index < 0 {
			m[head.name] = value
			return
		}
		list := growList(m[head.name], head.index+1)
		list[head.index] = value
		m[head.name] = list
		return
	}

	var child Map
	if head.index < 0 {
		child, _ = m[head.name].(map[string]any)
		if child == nil {
			child = make(Map)
			m[head.name] = child
		}
	} else {
		list := growList(m[head.name], head.index+1)
		child, _ = list[head.index].(map[string]any)
		if child == nil {
			child = make(Map)
			list[head.index] = child
		}
		m[head.name] = list
	}
	setPath(child, segs[1:], value)
}

func growList(v any, size int) []any {
	list, _ := v.([]any)
	for len(list) < size {
		list = append(list, nil)
	}
	return list
}

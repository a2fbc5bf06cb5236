package i18n

import (
	"fmt"
	"strings"
)

// Interpolate replaces {{name}} placeholders in template with values from
// the map. Placeholders without a value remain unchanged.
func Interpolate(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	out := template
	for key, value := range placeholders {
		out = strings.ReplaceAll(out, "{{"+key+"}}", formatValue(value))
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		// Trim the ".0" noise off whole numbers in messages.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

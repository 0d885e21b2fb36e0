package option

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// OverrideProcessor combines an override value with the current value at the
// same path and returns the value to store. It must be deterministic and free
// of side effects.
type OverrideProcessor func(current, value any) (any, error)

// IdentityProcessor replaces the current value with the override value
func IdentityProcessor(_, value any) (any, error) {
	return CloneValue(value), nil
}

// NumberProcessor coerces the override value to float64. Empty strings and
// NaN clear the value.
func NumberProcessor(_, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	f, ok := toFloat(value)
	if !ok {
		return nil, goerr.Wrap(ErrInvalidValue, "value is not a number",
			goerr.V(ValueKey, value),
			goerr.V(ValueTypeKey, fmt.Sprintf("%T", value)))
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return f, nil
}

// StringProcessor coerces scalar override values to their string form
func StringProcessor(_, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case bool, int, int64, int32, float64, float32:
		return fmt.Sprint(v), nil
	default:
		return nil, goerr.Wrap(ErrInvalidValue, "value is not a string",
			goerr.V(ValueKey, value),
			goerr.V(ValueTypeKey, fmt.Sprintf("%T", value)))
	}
}

// DisplayNameProcessor is a StringProcessor that trims surrounding spaces and
// treats an empty name as unset
func DisplayNameProcessor(current, value any) (any, error) {
	v, err := StringProcessor(current, value)
	if err != nil || v == nil {
		return v, err
	}
	name := strings.TrimSpace(v.(string))
	if name == "" {
		return nil, nil
	}
	return name, nil
}

// BooleanProcessor accepts booleans and their common string forms
func BooleanProcessor(_, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true, nil
		case "false", "0", "off", "no", "":
			return false, nil
		}
	}
	return nil, goerr.Wrap(ErrInvalidValue, "value is not a boolean",
		goerr.V(ValueKey, value),
		goerr.V(ValueTypeKey, fmt.Sprintf("%T", value)))
}

// AppendProcessor appends the override items to the current list. A scalar
// override value is appended as a single item.
func AppendProcessor(current, value any) (any, error) {
	base, err := toList(current)
	if err != nil {
		base = nil
	}

	items, err := toList(value)
	if err != nil {
		items = []any{CloneValue(value)}
	}

	result := make([]any, 0, len(base)+len(items))
	result = append(result, base...)
	result = append(result, items...)
	return result, nil
}

// ValueMappingsProcessor replaces the current mappings with the override
// list. Every mapping must be an object with a "type".
func ValueMappingsProcessor(_, value any) (any, error) {
	if value == nil {
		return []any{}, nil
	}
	items, err := toList(value)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidValue, "value mapping must be an object",
				goerr.V(OptionIdxKey, i))
		}
		if t, _ := m["type"].(string); t == "" {
			return nil, goerr.Wrap(ErrInvalidValue, "value mapping type is required",
				goerr.V(OptionIdxKey, i))
		}
	}
	return items, nil
}

// ThresholdsProcessor validates a thresholds object ({mode, steps}) and
// returns a copy whose steps are sorted by value. A step with a nil value is
// the base step and sorts first.
func ThresholdsProcessor(_, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	m, ok := asMap(value)
	if !ok {
		return nil, goerr.Wrap(ErrInvalidValue, "thresholds must be an object",
			goerr.V(ValueTypeKey, fmt.Sprintf("%T", value)))
	}

	mode, _ := m["mode"].(string)
	switch mode {
	case "", "absolute", "percentage":
	default:
		return nil, goerr.Wrap(ErrInvalidValue, "invalid thresholds mode", goerr.V(ValueKey, mode))
	}

	steps, err := toList(m["steps"])
	if err != nil {
		return nil, goerr.Wrap(err, "invalid thresholds steps")
	}

	type step struct {
		value float64
		raw   map[string]any
	}
	sorted := make([]step, 0, len(steps))
	for i, s := range steps {
		sm, ok := asMap(s)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidValue, "threshold step must be an object",
				goerr.V(OptionIdxKey, i))
		}
		v := math.Inf(-1)
		if raw, exists := sm["value"]; exists && raw != nil {
			f, ok := toFloat(raw)
			if !ok {
				return nil, goerr.Wrap(ErrInvalidValue, "threshold step value must be a number",
					goerr.V(OptionIdxKey, i), goerr.V(ValueKey, raw))
			}
			v = f
		}
		sorted = append(sorted, step{value: v, raw: cloneMap(sm)})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

	result := map[string]any{"mode": "absolute"}
	if mode != "" {
		result["mode"] = mode
	}
	out := make([]any, len(sorted))
	for i, s := range sorted {
		out[i] = s.raw
	}
	result["steps"] = out
	return result, nil
}

// ListCount counts the items of a list value; it is the usual ItemsCount for
// links, actions and mappings.
func ListCount(value any) int {
	items, err := toList(value)
	if err != nil {
		return 0
	}
	return len(items)
}

// ThresholdsCount counts the steps of a thresholds object
func ThresholdsCount(value any) int {
	m, ok := asMap(value)
	if !ok {
		return 0
	}
	return ListCount(m["steps"])
}

func toList(v any) ([]any, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []any:
		result := make([]any, len(l))
		for i, item := range l {
			result[i] = CloneValue(item)
		}
		return result, nil
	case []string:
		result := make([]any, len(l))
		for i, item := range l {
			result[i] = item
		}
		return result, nil
	case []map[string]any:
		result := make([]any, len(l))
		for i, item := range l {
			result[i] = cloneMap(item)
		}
		return result, nil
	default:
		return nil, goerr.Wrap(ErrInvalidValue, "value is not a list",
			goerr.V(ValueTypeKey, fmt.Sprintf("%T", v)))
	}
}

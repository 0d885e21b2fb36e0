package option

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Config is a configuration object addressed by dot-separated paths
// (e.g. "legend.displayMode"). Nested objects are map[string]any.
//
// All read accessors tolerate missing or mistyped intermediate values and
// return the zero value instead of panicking, so visibility predicates can be
// evaluated against partially constructed configurations.
type Config map[string]any

// Get retrieves the value stored at path
func (c Config) Get(path string) (any, bool) {
	if c == nil || path == "" {
		return nil, false
	}

	var current any = map[string]any(c)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}

	return current, true
}

// Lookup returns the value at path or nil
func (c Config) Lookup(path string) any {
	v, _ := c.Get(path)
	return v
}

// Has reports whether a value is stored at path
func (c Config) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

// String returns the string at path, or "" when missing or not a string
func (c Config) String(path string) string {
	s, _ := c.Lookup(path).(string)
	return s
}

// Bool returns the boolean at path, or false when missing or not a boolean
func (c Config) Bool(path string) bool {
	b, _ := c.Lookup(path).(bool)
	return b
}

// Float returns the number at path converted to float64
func (c Config) Float(path string) (float64, bool) {
	return toFloat(c.Lookup(path))
}

// Strings returns the string slice at path. []any elements that are not
// strings are skipped.
func (c Config) Strings(path string) []string {
	switch v := c.Lookup(path).(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores value at path, creating intermediate objects as needed.
// A non-object value found on the way is replaced by an object.
func (c Config) Set(path string, value any) {
	if c == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	current := map[string]any(c)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(current[part])
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// Delete removes the value at path. Returns true if a value was removed.
func (c Config) Delete(path string) bool {
	if c == nil || path == "" {
		return false
	}

	parts := strings.Split(path, ".")
	current := map[string]any(c)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(current[part])
		if !ok {
			return false
		}
		current = next
	}

	key := parts[len(parts)-1]
	if _, exists := current[key]; !exists {
		return false
	}
	delete(current, key)
	return true
}

// Clone returns a deep copy of the configuration
func (c Config) Clone() Config {
	if c == nil {
		return Config{}
	}
	return Config(cloneMap(c))
}

// Merge deep-merges src into c and returns c. Objects are merged recursively,
// every other value in src replaces the value in c.
func (c Config) Merge(src Config) Config {
	if c == nil {
		c = Config{}
	}
	mergeInto(c, src)
	return c
}

// Flatten returns a single-level map keyed by dot-separated paths
func (c Config) Flatten() map[string]any {
	result := make(map[string]any)
	flatten(c, "", result)
	return result
}

func mergeInto(dst, src map[string]any) {
	for key, srcVal := range src {
		srcMap, srcIsMap := asMap(srcVal)
		dstMap, dstIsMap := asMap(dst[key])
		if srcIsMap && dstIsMap {
			merged := cloneMap(dstMap)
			mergeInto(merged, srcMap)
			dst[key] = merged
			continue
		}
		dst[key] = CloneValue(srcVal)
	}
}

func flatten(data map[string]any, prefix string, result map[string]any) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := asMap(val); ok && len(nested) > 0 {
			flatten(nested, fullKey, result)
			continue
		}
		result[fullKey] = val
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Config:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

// CloneValue returns a deep copy of maps and slices; other values are returned as-is
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Config:
		return cloneMap(val)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = CloneValue(item)
		}
		return result
	case []string:
		result := make([]string, len(val))
		copy(result, val)
		return result
	case []map[string]any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = cloneMap(item)
		}
		return result
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = CloneValue(v)
	}
	return result
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

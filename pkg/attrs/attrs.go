// Package attrs reads values back out of slog-style key/value lists, so one
// attribute slice can feed both a log line and an audit event.
package attrs

// Value returns the value stored under key in a [k1, v1, k2, v2, ...] slice
// when it has type T. Non-string keys and a trailing odd element are skipped.
func Value[T any](attrs []any, key string) (T, bool) {
	var zero T
	for i := 0; i+1 < len(attrs); i += 2 {
		if k, ok := attrs[i].(string); !ok || k != key {
			continue
		}
		v, ok := attrs[i+1].(T)
		return v, ok
	}
	return zero, false
}

// ExtractString is Value for strings, with "" for missing or mistyped entries.
func ExtractString(attrs []any, key string) string {
	v, _ := Value[string](attrs, key)
	return v
}

package widget

import "strconv"

// Options is the open key/value option map attached to a widget
// placement. Values arrive from YAML or JSON, so numbers may be int,
// int64 or float64 depending on the decoder.
type Options map[string]any

// String returns the option as a string, or def when absent.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Int returns the option as an int, or def when absent or untypeable.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

// Bool returns the option as a bool, or def when absent or untypeable.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Payload accessors. Provider payloads are open maps with the same
// decoder ambiguity as options.

func payloadString(m map[string]any, key, def string) string {
	return Options(m).String(key, def)
}

func payloadBool(m map[string]any, key string, def bool) bool {
	return Options(m).Bool(key, def)
}

func payloadFloat(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// payloadNumber formats a numeric payload field for display, with "--"
// standing in for anything missing.
func payloadNumber(m map[string]any, key string) string {
	v, ok := payloadFloat(m, key)
	if !ok {
		return "--"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// payloadList returns a payload field as a list of maps (events, tasks,
// history samples). Entries of other shapes are skipped.
func payloadList(m map[string]any, key string) []map[string]any {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		// A decoder may already produce the concrete type.
		if typed, ok := raw.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	var out []map[string]any
	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

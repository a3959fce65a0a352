package pipeline

import (
	"fmt"
	"strings"
)

// Env is the read-only key/value environment made available to
// operations that declare NeedsEnv. A chain may carry a default env;
// Apply merges a call-time override on top of it, override winning.
type Env map[string]any

// Merge returns a new Env holding the receiver's pairs overlaid with
// other's. Neither input is modified.
func (e Env) Merge(other Env) Env {
	if len(e) == 0 && len(other) == 0 {
		return nil
	}
	merged := make(Env, len(e)+len(other))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Lookup returns the string form of a key's value and whether the key
// is present.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// Format substitutes {key} placeholders in format from the env. A
// missing key fails with an EnvError. Literal braces are written as
// {{ and }}.
func Format(format string, e Env) (string, error) {
	return expand(format, func(key string) (string, error) {
		if v, ok := e.Lookup(key); ok {
			return v, nil
		}
		return "", &EnvError{Key: key}
	})
}

// FormatDefault is Format with a default substitution for missing keys
// instead of an error.
func FormatDefault(format string, e Env, def string) string {
	s, _ := expand(format, func(key string) (string, error) {
		if v, ok := e.Lookup(key); ok {
			return v, nil
		}
		return def, nil
	})
	return s
}

// expand scans format for {key} placeholders and replaces each via
// resolve. The scan is a single pass; malformed placeholders (an
// unclosed brace) are treated as literal text.
func expand(format string, resolve func(key string) (string, error)) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		ch := format[i]
		switch {
		case ch == '{' && i+1 < len(format) && format[i+1] == '{':
			b.WriteByte('{')
			i++
		case ch == '}' && i+1 < len(format) && format[i+1] == '}':
			b.WriteByte('}')
			i++
		case ch == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			key := format[i+1 : i+end]
			v, err := resolve(key)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			i += end
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

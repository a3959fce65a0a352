package pipeline

import (
	"fmt"
	"strings"
)

// DefaultSeparator is the join string used when coercing Lines to Text.
const DefaultSeparator = "\n"

// Coerce converts a value to the target shape using the default join
// separator. See CoerceSep for the conversion table.
func Coerce(v Value, target Shape) (Value, error) {
	return CoerceSep(v, target, DefaultSeparator)
}

// CoerceSep converts a value to the target shape. Defined conversions:
//
//   - same shape, or target Any: no-op, the value is returned as is
//   - Text -> Lines: split on line boundaries
//   - Lines -> Text: join with sep
//   - Mapping -> Lines: one "key: value" line per pair, insertion order
//   - Lines -> Mapping: each non-blank line split on the first ":",
//     key and value trimmed; a line with no ":" fails
//   - Any -> Text: string conversion
//
// Every other pair fails with a CoercionError. Mapping -> Lines ->
// Mapping may lose formatting; that lossiness is documented and
// accepted, not a defect.
func CoerceSep(v Value, target Shape, sep string) (Value, error) {
	from := v.Shape()
	if target == Any || from == target {
		return v, nil
	}

	switch {
	case from == Text && target == Lines:
		return LinesValue(SplitLines(v.Text())), nil

	case from == Lines && target == Text:
		return TextValue(strings.Join(v.Lines(), sep)), nil

	case from == Mapping && target == Lines:
		m := v.Map()
		lines := make([]string, 0, m.Len())
		for _, k := range m.Keys() {
			val, _ := m.Get(k)
			lines = append(lines, k+": "+val)
		}
		return LinesValue(lines), nil

	case from == Lines && target == Mapping:
		m := NewMap()
		for _, line := range v.Lines() {
			if strings.TrimSpace(line) == "" {
				continue
			}
			key, val, found := strings.Cut(line, ":")
			if !found {
				return Value{}, &CoercionError{
					From:    from,
					To:      target,
					Message: fmt.Sprintf("line %q has no key/value separator", line),
				}
			}
			m.Set(strings.TrimSpace(key), strings.TrimSpace(val))
		}
		return MapValue(m), nil

	case from == Any && target == Text:
		if v.Scalar() == nil {
			return TextValue(""), nil
		}
		return TextValue(fmt.Sprintf("%v", v.Scalar())), nil
	}

	return Value{}, &CoercionError{From: from, To: target}
}

// SplitLines splits text on line boundaries, handling both LF and CRLF.
// A single trailing newline does not produce a trailing empty line,
// matching the usual splitlines behavior. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

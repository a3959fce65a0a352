package pipeline

import (
	"strconv"
	"strings"
)

// StepError is one failure captured under the collecting policy.
type StepError struct {
	Step int    // index of the failing step within the chain
	Op   string // name of the failing operation
	Err  error
}

// Result is the shape-tagged value produced by applying a chain, plus
// the failures captured under the collecting policy. The conversion
// accessors are deliberately lenient: they exist for pulling a final
// answer out of a pipeline, not for bridging shapes mid-chain (that is
// Coerce's job, and Coerce fails loudly).
type Result struct {
	value  Value
	errors []StepError
}

// Shape returns the result's shape tag.
func (r *Result) Shape() Shape { return r.value.Shape() }

// Value returns the underlying shape-tagged value.
func (r *Result) Value() Value { return r.value }

// Raw returns the result without its shape tag.
func (r *Result) Raw() any { return r.value.Raw() }

// Errors returns the failures captured under the collecting policy, in
// step order. Empty under the strict and tracing policies (those abort
// instead).
func (r *Result) Errors() []StepError { return r.errors }

// Text returns the result as a string, joining Lines with a newline and
// rendering a Mapping as "key: value" lines.
func (r *Result) Text() string {
	return r.TextSep(DefaultSeparator)
}

// TextSep is Text with an explicit join separator.
func (r *Result) TextSep(sep string) string {
	switch r.value.Shape() {
	case Text:
		return r.value.Text()
	case Lines:
		return strings.Join(r.value.Lines(), sep)
	case Mapping:
		lines, _ := Coerce(r.value, Lines)
		return strings.Join(lines.Lines(), sep)
	default:
		v, _ := Coerce(r.value, Text)
		return v.Text()
	}
}

// Lines returns the result as a line slice, splitting Text on line
// boundaries and wrapping a scalar in a single line.
func (r *Result) Lines() []string {
	switch r.value.Shape() {
	case Lines:
		return r.value.Lines()
	case Text:
		return SplitLines(r.value.Text())
	case Mapping:
		v, _ := Coerce(r.value, Lines)
		return v.Lines()
	default:
		if r.value.Scalar() == nil {
			return nil
		}
		v, _ := Coerce(r.value, Text)
		return []string{v.Text()}
	}
}

// Map returns the result as an ordered mapping, or an empty mapping
// when no conversion applies.
func (r *Result) Map() *Map {
	switch r.value.Shape() {
	case Mapping:
		return r.value.Map()
	case Text, Lines:
		lines, err := Coerce(r.value, Lines)
		if err != nil {
			return NewMap()
		}
		m, err := Coerce(lines, Mapping)
		if err != nil {
			return NewMap()
		}
		return m.Map()
	default:
		return NewMap()
	}
}

// Int returns the result as an int. Numeric scalars convert directly;
// anything else is parsed as a float and truncated. Unparseable values
// yield 0.
func (r *Result) Int() int {
	switch v := r.value.Raw().(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(r.Text()), 64); err == nil {
		return int(f)
	}
	return 0
}

// Float returns the result as a float64, 0 when unparseable.
func (r *Result) Float() float64 {
	switch v := r.value.Raw().(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(r.Text()), 64); err == nil {
		return f
	}
	return 0
}

// Bool returns the result as a bool: a bool scalar directly, otherwise
// whether the result is non-empty.
func (r *Result) Bool() bool {
	if b, ok := r.value.Raw().(bool); ok {
		return b
	}
	switch r.value.Shape() {
	case Text:
		return r.value.Text() != ""
	case Lines:
		return len(r.value.Lines()) > 0
	case Mapping:
		return r.value.Map().Len() > 0
	default:
		return r.value.Scalar() != nil
	}
}

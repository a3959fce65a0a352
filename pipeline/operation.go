package pipeline

import (
	"fmt"
	"strconv"
)

// Param declares one operation parameter. A nil Default marks the
// parameter as required.
type Param struct {
	Name    string
	Default any
}

// Required reports whether the parameter has no default.
func (p Param) Required() bool { return p.Default == nil }

// Args holds the bound parameter values of a step, keyed by parameter
// name. Defaults are filled in at bind time, so a transform sees every
// declared parameter.
type Args map[string]any

// String returns the parameter as a string: string values directly,
// anything else through fmt. Missing parameters yield "".
func (a Args) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Int returns the parameter as an int, converting numeric types and
// numeric strings. Missing or unconvertible parameters yield 0.
func (a Args) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// Float returns the parameter as a float64. Missing or unconvertible
// parameters yield 0.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// Bool returns the parameter as a bool. Missing or unconvertible
// parameters yield false.
func (a Args) Bool(name string) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return false
}

// Transform is an operation's pure work function. It receives the input
// already coerced to the operation's declared input shape, the bound
// arguments, and the merged environment (nil unless NeedsEnv). It must
// not mutate its input; it returns a new value tagged with the
// operation's output shape.
type Transform func(v Value, args Args, env Env) (Value, error)

// Operation is a named, parameterized unit of work. Operations are
// immutable once registered and safe to share across concurrent Apply
// calls.
type Operation struct {
	// Name identifies the operation; unique within a registry.
	Name string

	// Params is the ordered parameter list used for positional binding.
	Params []Param

	// Input is the shape the engine coerces to before invoking Fn.
	// Any disables coercion.
	Input Shape

	// Output is the shape Fn produces. Any marks scalar producers.
	Output Shape

	// NeedsEnv requests the merged environment to be passed to Fn.
	NeedsEnv bool

	// Fn is the transform.
	Fn Transform
}

// bind validates positional and keyword arguments against the declared
// parameters and returns the bound Args with defaults filled in.
func (op *Operation) bind(pos []any, kw map[string]any) (Args, error) {
	if len(pos) > len(op.Params) {
		return nil, &BindingError{
			Op:      op.Name,
			Message: fmt.Sprintf("at most %d arguments expected, got %d", len(op.Params), len(pos)),
		}
	}

	args := make(Args, len(op.Params))
	for i, v := range pos {
		args[op.Params[i].Name] = v
	}

	for name, v := range kw {
		if !op.hasParam(name) {
			return nil, &BindingError{Op: op.Name, Param: name, Message: "unknown parameter"}
		}
		if _, dup := args[name]; dup {
			return nil, &BindingError{Op: op.Name, Param: name, Message: "bound both positionally and by name"}
		}
		args[name] = v
	}

	for _, p := range op.Params {
		if _, ok := args[p.Name]; ok {
			continue
		}
		if p.Required() {
			return nil, &BindingError{Op: op.Name, Param: p.Name, Message: "required parameter missing"}
		}
		args[p.Name] = p.Default
	}

	return args, nil
}

func (op *Operation) hasParam(name string) bool {
	for _, p := range op.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

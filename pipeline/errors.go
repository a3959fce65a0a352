package pipeline

import "fmt"

// RegistrationError reports an invalid or duplicate operation
// registration. Registration failures are fatal catalog-setup errors.
type RegistrationError struct {
	Name    string
	Message string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %q: %s", e.Name, e.Message)
}

// BindingError reports invalid arguments bound to an operation at
// chain-build time: an unknown operation or parameter name, a missing
// required parameter, or too many positional arguments. Binding errors
// are detected when the step is added, never deferred to execution.
type BindingError struct {
	Op      string
	Param   string // offending parameter name, if applicable
	Message string
}

func (e *BindingError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("bind %s: parameter %q: %s", e.Op, e.Param, e.Message)
	}
	return fmt.Sprintf("bind %s: %s", e.Op, e.Message)
}

// CoercionError reports that no conversion rule exists between two
// shapes, or that a conditional rule did not apply to the data.
type CoercionError struct {
	From    Shape
	To      Shape
	Message string
}

func (e *CoercionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot coerce %s to %s: %s", e.From, e.To, e.Message)
	}
	return fmt.Sprintf("cannot coerce %s to %s", e.From, e.To)
}

// OperationError reports a transform-intrinsic failure: the operation's
// input had the right shape but the data itself was rejected (a pattern
// failed to compile, a value was not castable).
type OperationError struct {
	Op    string
	Cause error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("op %s: %v", e.Op, e.Cause)
}

func (e *OperationError) Unwrap() error { return e.Cause }

// EnvError reports a required environment key missing during strict
// substitution. Operations with a documented default substitution do
// not raise it.
type EnvError struct {
	Key string
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("env key %q not found", e.Key)
}

package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// File designates a filesystem path to be read at apply time. The file
// is opened immediately before materialization and closed once its
// content is read, on every exit path; read failures surface unchanged
// (not wrapped as operation errors).
type File string

// ApplyOption configures one Apply call.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	env    Env
	policy Policy
	sep    string
}

// WithEnv overlays env onto the chain's default environment for this
// call. Call-time pairs win over build-time pairs.
func WithEnv(env Env) ApplyOption {
	return func(cfg *applyConfig) { cfg.env = cfg.env.Merge(env) }
}

// WithPolicy overrides the error policy for this call.
func WithPolicy(p Policy) ApplyOption {
	return func(cfg *applyConfig) { cfg.policy = p }
}

// WithSeparator overrides the join separator used by Lines-to-Text
// coercions during this call.
func WithSeparator(sep string) ApplyOption {
	return func(cfg *applyConfig) { cfg.sep = sep }
}

// Apply materializes the input and folds the chain's steps over it.
//
// Accepted inputs: string ([]byte) as Text, []string as Lines, *Map or
// map[string]string as Mapping, a File path or io.Reader as Lines read
// eagerly, a Value or *Result as itself, and any other value as an Any
// scalar. A nil input is empty Text.
//
// Before each step the current value is coerced to the operation's
// declared input shape (unless Any). Failures follow the effective
// policy: the call-time override, else the chain default, else strict.
// Applying the same chain to the same input, env and policy always
// yields the same result; the chain holds no execution state.
func (c *Chain) Apply(input any, opts ...ApplyOption) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}

	cfg := applyConfig{sep: DefaultSeparator}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy := cfg.policy
	if policy == PolicyDefault {
		policy = c.policy
	}
	if policy == PolicyDefault {
		policy = PolicyStrict
	}

	env := c.env.Merge(cfg.env)

	current, err := materialize(input)
	if err != nil {
		return nil, err
	}

	runID := newRunID()

	var traces []stepTrace
	if policy == PolicyTracing {
		traces = append(traces, stepTrace{step: -1, op: "input", value: current})
	}

	var collected []StepError
	for i, step := range c.steps {
		out, err := runStep(step, current, env, cfg.sep)
		if err != nil {
			switch policy {
			case PolicyCollecting:
				collected = append(collected, StepError{Step: i, Op: step.Op.Name, Err: err})
				current = EmptyValue(step.Op.Output)
				continue
			case PolicyTracing:
				emitTrace(runID, c, traces, i, err)
				return nil, err
			default:
				return nil, err
			}
		}

		current = out
		if policy == PolicyTracing {
			traces = append(traces, stepTrace{step: i, op: step.Op.Name, value: out})
		}
		debugStep(runID, i, step, out)
	}

	return &Result{value: current, errors: collected}, nil
}

// runStep coerces the current value to the step's input shape and
// invokes the transform. Transform errors that are not already typed
// pipeline errors are wrapped as OperationError.
func runStep(step Step, current Value, env Env, sep string) (Value, error) {
	in, err := CoerceSep(current, step.Op.Input, sep)
	if err != nil {
		return Value{}, err
	}

	var stepEnv Env
	if step.Op.NeedsEnv {
		stepEnv = env
	}

	out, err := step.Op.Fn(in, step.Args, stepEnv)
	if err != nil {
		var opErr *OperationError
		var envErr *EnvError
		if errors.As(err, &opErr) || errors.As(err, &envErr) {
			return Value{}, err
		}
		return Value{}, &OperationError{Op: step.Op.Name, Cause: err}
	}
	return out, nil
}

// materialize resolves an input to its initial shape/value pair.
func materialize(input any) (Value, error) {
	switch in := input.(type) {
	case nil:
		return TextValue(""), nil
	case Value:
		return in, nil
	case *Result:
		return in.Value(), nil
	case string:
		return TextValue(in), nil
	case []byte:
		return TextValue(string(in)), nil
	case []string:
		lines := make([]string, len(in))
		copy(lines, in)
		return LinesValue(lines), nil
	case *Map:
		return MapValue(in.Clone()), nil
	case map[string]string:
		// Plain map iteration order is random; sort keys so repeated
		// applications stay deterministic.
		keys := make([]string, 0, len(in))
		for k := range in {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, in[k])
		}
		return MapValue(m), nil
	case File:
		return readFile(string(in))
	case io.Reader:
		return readLines(in)
	case int, int64, float64, bool:
		return AnyValue(in), nil
	default:
		return Value{}, fmt.Errorf("unsupported input type %T", input)
	}
}

func readFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, err
	}
	defer f.Close()
	return readLines(f)
}

func readLines(r io.Reader) (Value, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Value{}, err
	}
	return LinesValue(lines), nil
}

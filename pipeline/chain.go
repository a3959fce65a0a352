package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Step is one bound operation in a chain.
type Step struct {
	Op   *Operation
	Args Args
}

// Kw passes keyword arguments to Chain.Op. Positional arguments must
// precede it:
//
//	pipeline.New().Op("between", "BEGIN", pipeline.Kw{"inclusive": true})
type Kw map[string]any

// Chain is an immutable ordered sequence of bound operation steps, not
// yet applied to data. Every extension method returns a new chain; the
// receiver is never modified, so chains can be shared, extended in
// several directions, and reapplied freely.
//
// A binding failure makes the chain inert: the first error sticks, is
// observable immediately via Err, and every later Apply returns it
// without touching data.
type Chain struct {
	registry *Registry
	steps    []Step
	env      Env
	policy   Policy
	err      error
}

// New creates an empty chain against the default registry.
func New() *Chain {
	return NewWith(DefaultRegistry())
}

// NewWith creates an empty chain against an explicit registry.
func NewWith(reg *Registry) *Chain {
	return &Chain{registry: reg}
}

// clone copies the chain, duplicating the step slice so extensions of
// one chain value can never leak into another.
func (c *Chain) clone(extraSteps int) *Chain {
	steps := make([]Step, len(c.steps), len(c.steps)+extraSteps)
	copy(steps, c.steps)
	return &Chain{
		registry: c.registry,
		steps:    steps,
		env:      c.env,
		policy:   c.policy,
		err:      c.err,
	}
}

// Op appends a step invoking the named operation. Arguments bind
// positionally in declaration order; a trailing Kw binds by name.
// Unknown operations, unknown parameter names, missing required
// parameters and excess positionals all fail here, at build time.
func (c *Chain) Op(name string, args ...any) *Chain {
	if c.err != nil {
		return c
	}

	var pos []any
	var kw map[string]any
	for _, a := range args {
		if m, ok := a.(Kw); ok {
			if kw == nil {
				kw = make(map[string]any, len(m))
			}
			for k, v := range m {
				kw[k] = v
			}
			continue
		}
		if kw != nil {
			return c.fail(&BindingError{Op: name, Message: "positional argument after keyword arguments"})
		}
		pos = append(pos, a)
	}

	op, ok := c.registry.Lookup(name)
	if !ok {
		return c.fail(&BindingError{Op: name, Message: "unknown operation"})
	}

	bound, err := op.bind(pos, kw)
	if err != nil {
		return c.fail(err)
	}

	next := c.clone(1)
	next.steps = append(next.steps, Step{Op: op, Args: bound})
	return next
}

// Then returns a chain whose steps are the receiver's followed by
// other's. Composition is associative: (a.Then(b)).Then(c) and
// a.Then(b.Then(c)) hold identical step sequences. The receiver's env
// and policy defaults win over other's where both are set.
func (c *Chain) Then(other *Chain) *Chain {
	if c.err != nil {
		return c
	}
	if other.err != nil {
		return c.fail(other.err)
	}

	next := c.clone(len(other.steps))
	next.steps = append(next.steps, other.steps...)
	next.env = other.env.Merge(c.env)
	if next.policy == PolicyDefault {
		next.policy = other.policy
	}
	return next
}

// WithEnv returns a chain carrying env as build-time default
// environment, merged over any previously set pairs.
func (c *Chain) WithEnv(env Env) *Chain {
	next := c.clone(0)
	next.env = c.env.Merge(env)
	return next
}

// WithPolicy returns a chain carrying a default error policy, used by
// Apply when no call-time override is given.
func (c *Chain) WithPolicy(p Policy) *Chain {
	next := c.clone(0)
	next.policy = p
	return next
}

// Err returns the first binding error, or nil for a well-formed chain.
func (c *Chain) Err() error { return c.err }

// Len returns the number of steps.
func (c *Chain) Len() int { return len(c.steps) }

// Steps returns a copy of the step sequence.
func (c *Chain) Steps() []Step {
	steps := make([]Step, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// String renders the chain as a pipe expression, e.g.
// `grep("err") | head(5)`. Bound keyword values print sorted by name
// after the positional defaults they replaced.
func (c *Chain) String() string {
	if c.err != nil {
		return fmt.Sprintf("<invalid chain: %v>", c.err)
	}
	parts := make([]string, len(c.steps))
	for i, s := range c.steps {
		parts[i] = formatStep(s)
	}
	return strings.Join(parts, " | ")
}

func formatStep(s Step) string {
	var args []string
	named := make([]string, 0, len(s.Args))
	for _, p := range s.Op.Params {
		v, ok := s.Args[p.Name]
		if !ok {
			continue
		}
		named = append(named, fmt.Sprintf("%s=%s", p.Name, formatArg(v)))
	}
	sort.Strings(named)
	args = append(args, named...)
	return fmt.Sprintf("%s(%s)", s.Op.Name, strings.Join(args, ", "))
}

func formatArg(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

func (c *Chain) fail(err error) *Chain {
	next := c.clone(0)
	next.err = err
	return next
}

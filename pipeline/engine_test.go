package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRegistry builds a small catalog exercising every shape
// combination the engine has to handle.
func newTestRegistry() *Registry {
	reg := NewRegistry()

	// keep: Lines -> Lines, keeps lines containing a substring.
	reg.MustRegister(&Operation{
		Name:   "keep",
		Params: []Param{{Name: "pattern"}},
		Input:  Lines,
		Output: Lines,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			var out []string
			for _, line := range v.Lines() {
				if strings.Contains(line, args.String("pattern")) {
					out = append(out, line)
				}
			}
			return LinesValue(out), nil
		},
	})

	// join: Lines -> Text with a separator parameter.
	reg.MustRegister(&Operation{
		Name:   "join",
		Params: []Param{{Name: "sep", Default: "\n"}},
		Input:  Lines,
		Output: Text,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return TextValue(strings.Join(v.Lines(), args.String("sep"))), nil
		},
	})

	// split: Text -> Lines.
	reg.MustRegister(&Operation{
		Name:   "split",
		Input:  Text,
		Output: Lines,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return LinesValue(SplitLines(v.Text())), nil
		},
	})

	// pairs: Lines -> Mapping on a separator parameter.
	reg.MustRegister(&Operation{
		Name:   "pairs",
		Params: []Param{{Name: "sep", Default: ":"}},
		Input:  Lines,
		Output: Mapping,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			m := NewMap()
			for _, line := range v.Lines() {
				key, val, found := strings.Cut(line, args.String("sep"))
				if !found {
					return Value{}, errors.New("line has no separator")
				}
				m.Set(strings.TrimSpace(key), strings.TrimSpace(val))
			}
			return MapValue(m), nil
		},
	})

	// tally: Lines -> Any scalar count.
	reg.MustRegister(&Operation{
		Name:   "tally",
		Input:  Lines,
		Output: Any,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return AnyValue(len(v.Lines())), nil
		},
	})

	// boom: fails unconditionally.
	reg.MustRegister(&Operation{
		Name:   "boom",
		Input:  Any,
		Output: Lines,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return Value{}, errors.New("kaboom")
		},
	})

	// greet: formats a template from the env, strict on missing keys.
	reg.MustRegister(&Operation{
		Name:     "greet",
		Params:   []Param{{Name: "format"}},
		Input:    Any,
		Output:   Text,
		NeedsEnv: true,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			s, err := Format(args.String("format"), env)
			if err != nil {
				return Value{}, err
			}
			return TextValue(s), nil
		},
	})

	return reg
}

func TestApply_LineFilterScenario(t *testing.T) {
	// Text input, one line-filtering step.
	res, err := NewWith(newTestRegistry()).Op("keep", "b").Apply("a\nb\nc\n")
	require.NoError(t, err)
	assert.Equal(t, Lines, res.Shape())
	assert.Equal(t, []string{"b"}, res.Lines())
}

func TestApply_ToMappingScenario(t *testing.T) {
	res, err := NewWith(newTestRegistry()).Op("pairs", "=").Apply([]string{"x=1", "y=2"})
	require.NoError(t, err)
	assert.Equal(t, Mapping, res.Shape())

	m := res.Map()
	assert.Equal(t, []string{"x", "y"}, m.Keys())
	x, _ := m.Get("x")
	y, _ := m.Get("y")
	assert.Equal(t, "1", x)
	assert.Equal(t, "2", y)
}

func TestApply_CountScenario(t *testing.T) {
	res, err := NewWith(newTestRegistry()).Op("split").Op("tally").Apply("1\n2\n3\n")
	require.NoError(t, err)
	assert.Equal(t, Any, res.Shape())
	assert.Equal(t, 3, res.Int())
}

func TestApply_CoercesBetweenSteps(t *testing.T) {
	// join produces Text; keep declares Lines, so the engine re-splits.
	res, err := NewWith(newTestRegistry()).
		Op("join").
		Op("keep", "err").
		Apply([]string{"ok boot", "err disk", "err net"})
	require.NoError(t, err)
	assert.Equal(t, []string{"err disk", "err net"}, res.Lines())
}

func TestApply_ChainReuseIsDeterministic(t *testing.T) {
	chain := NewWith(newTestRegistry()).Op("keep", "x").Op("tally")

	first, err := chain.Apply("x1\ny\nx2\n")
	require.NoError(t, err)
	second, err := chain.Apply("x1\ny\nx2\n")
	require.NoError(t, err)

	assert.Equal(t, first.Int(), second.Int())
	assert.Equal(t, 2, first.Int())

	// The same chain against a different input is independent.
	other, err := chain.Apply("y\n")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Int())
}

func TestApply_StrictPolicyAborts(t *testing.T) {
	chain := NewWith(newTestRegistry()).
		Op("keep", "a").
		Op("boom").
		Op("tally")

	res, err := chain.Apply("a\nb\n")
	require.Error(t, err)
	assert.Nil(t, res)

	var operr *OperationError
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, "boom", operr.Op)
	assert.EqualError(t, operr.Cause, "kaboom")
}

func TestApply_CollectingPolicyContinues(t *testing.T) {
	chain := NewWith(newTestRegistry()).
		Op("keep", "a").
		Op("boom").
		Op("tally")

	res, err := chain.Apply("a\nb\n", WithPolicy(PolicyCollecting))
	require.NoError(t, err)

	require.Len(t, res.Errors(), 1)
	assert.Equal(t, 1, res.Errors()[0].Step)
	assert.Equal(t, "boom", res.Errors()[0].Op)

	// boom's empty Lines sentinel flows through tally unaffected.
	assert.Equal(t, 0, res.Int())
}

func TestApply_CollectingSentinelMatchesOutputShape(t *testing.T) {
	reg := newTestRegistry()
	reg.MustRegister(&Operation{
		Name:   "breakmap",
		Input:  Any,
		Output: Mapping,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return Value{}, errors.New("nope")
		},
	})

	res, err := NewWith(reg).Op("breakmap").Apply("x", WithPolicy(PolicyCollecting))
	require.NoError(t, err)
	assert.Equal(t, Mapping, res.Shape())
	assert.Equal(t, 0, res.Map().Len())
}

func TestApply_TracingPolicyStillAborts(t *testing.T) {
	chain := NewWith(newTestRegistry()).
		Op("keep", "a").
		Op("boom")

	res, err := chain.Apply("a\n", WithPolicy(PolicyTracing))
	require.Error(t, err)
	assert.Nil(t, res)
}

func TestApply_PolicyPrecedence(t *testing.T) {
	// Chain default applies when no call-time override is given.
	chain := NewWith(newTestRegistry()).
		Op("boom").
		WithPolicy(PolicyCollecting)

	res, err := chain.Apply("x")
	require.NoError(t, err)
	assert.Len(t, res.Errors(), 1)

	// Call-time override wins over the chain default.
	_, err = chain.Apply("x", WithPolicy(PolicyStrict))
	require.Error(t, err)
}

func TestApply_CoercionFailureFollowsPolicy(t *testing.T) {
	// tally produces Any(int); keep requires Lines and no Any->Lines
	// rule exists.
	chain := NewWith(newTestRegistry()).Op("tally").Op("keep", "x")

	_, err := chain.Apply([]string{"a"})
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)

	res, err := chain.Apply([]string{"a"}, WithPolicy(PolicyCollecting))
	require.NoError(t, err)
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, 1, res.Errors()[0].Step)
}

func TestApply_EnvMergeOverride(t *testing.T) {
	chain := NewWith(newTestRegistry()).
		Op("greet", "{greeting} {name}").
		WithEnv(Env{"greeting": "hello", "name": "build-time"})

	res, err := chain.Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, "hello build-time", res.Text())

	// Call-time pairs win over build-time pairs.
	res, err = chain.Apply(nil, WithEnv(Env{"name": "call-time"}))
	require.NoError(t, err)
	assert.Equal(t, "hello call-time", res.Text())
}

func TestApply_MissingEnvKeyFails(t *testing.T) {
	chain := NewWith(newTestRegistry()).Op("greet", "{nope}")

	_, err := chain.Apply(nil)
	var eerr *EnvError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "nope", eerr.Key)
}

func TestApply_FileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nerr b\nc\n"), 0o644))

	res, err := NewWith(newTestRegistry()).Op("keep", "err").Apply(File(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"err b"}, res.Lines())
}

func TestApply_MissingFileSurfacesIOError(t *testing.T) {
	chain := NewWith(newTestRegistry()).Op("keep", "x")

	_, err := chain.Apply(File(filepath.Join(t.TempDir(), "absent.txt")))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	// Materialization failures are not per-step errors; the collecting
	// policy does not swallow them.
	_, err = chain.Apply(File("/nonexistent/nope"), WithPolicy(PolicyCollecting))
	require.Error(t, err)

	var operr *OperationError
	assert.False(t, errors.As(err, &operr), "IO errors must pass through unwrapped")
}

func TestApply_ReaderInput(t *testing.T) {
	res, err := NewWith(newTestRegistry()).
		Op("tally").
		Apply(strings.NewReader("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Int())
}

func TestApply_MapInputSortedForDeterminism(t *testing.T) {
	chain := NewWith(newTestRegistry())

	res, err := chain.Apply(map[string]string{"b": "2", "a": "1", "c": "3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Map().Keys())
}

func TestApply_InputSliceNotAliased(t *testing.T) {
	input := []string{"a", "b"}
	chain := NewWith(newTestRegistry()).Op("keep", "a")

	_, err := chain.Apply(input)
	require.NoError(t, err)

	input[0] = "mutated"
	res, err := chain.Apply([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Lines())
}

func TestApply_UnsupportedInputType(t *testing.T) {
	_, err := NewWith(newTestRegistry()).Apply(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input type")
}

func TestApply_EmptyChainReturnsInput(t *testing.T) {
	res, err := NewWith(newTestRegistry()).Apply("as is")
	require.NoError(t, err)
	assert.Equal(t, Text, res.Shape())
	assert.Equal(t, "as is", res.Text())
}

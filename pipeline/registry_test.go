package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthroughOp(name string) *Operation {
	return &Operation{
		Name:   name,
		Input:  Any,
		Output: Any,
		Fn: func(v Value, args Args, env Env) (Value, error) {
			return v, nil
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(passthroughOp("noop")))

	op, ok := reg.Lookup("noop")
	require.True(t, ok)
	assert.Equal(t, "noop", op.Name)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateNameFails(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(passthroughOp("dup")))

	err := reg.Register(passthroughOp("dup"))
	var rerr *RegistrationError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "dup", rerr.Name)

	// The original registration is untouched.
	op, ok := reg.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, "dup", op.Name)
}

func TestRegistry_InvalidOperations(t *testing.T) {
	reg := NewRegistry()

	var rerr *RegistrationError
	assert.ErrorAs(t, reg.Register(nil), &rerr)
	assert.ErrorAs(t, reg.Register(&Operation{Name: ""}), &rerr)
	assert.ErrorAs(t, reg.Register(&Operation{Name: "nofn"}), &rerr)
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(passthroughOp("once"))

	assert.Panics(t, func() {
		reg.MustRegister(passthroughOp("once"))
	})
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(passthroughOp("zeta"))
	reg.MustRegister(passthroughOp("alpha"))
	reg.MustRegister(passthroughOp("mid"))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

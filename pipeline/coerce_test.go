package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_SameShapeIsNoOp(t *testing.T) {
	v := LinesValue([]string{"a", "b"})
	out, err := Coerce(v, Lines)
	require.NoError(t, err)
	assert.Equal(t, v, out)
}

func TestCoerce_TargetAnyIsNoOp(t *testing.T) {
	v := TextValue("hello")
	out, err := Coerce(v, Any)
	require.NoError(t, err)
	assert.Equal(t, v, out)
}

func TestCoerce_TextToLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"trailing newline dropped", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb\nc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"empty text", "", nil},
		{"single line", "hello", []string{"hello"}},
		{"blank interior line kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Coerce(TextValue(tt.text), Lines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Lines())
		})
	}
}

func TestCoerce_LinesToText(t *testing.T) {
	out, err := Coerce(LinesValue([]string{"a", "b", "c"}), Text)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", out.Text())
}

func TestCoerce_LinesToTextCustomSeparator(t *testing.T) {
	out, err := CoerceSep(LinesValue([]string{"a", "b"}), Text, ", ")
	require.NoError(t, err)
	assert.Equal(t, "a, b", out.Text())
}

func TestCoerce_TextLinesRoundTrip(t *testing.T) {
	// Exact round-trip holds when the text has no trailing-newline
	// ambiguity.
	orig := "first\nsecond\nthird"
	lines, err := Coerce(TextValue(orig), Lines)
	require.NoError(t, err)
	back, err := Coerce(lines, Text)
	require.NoError(t, err)
	assert.Equal(t, orig, back.Text())
}

func TestCoerce_MappingToLines(t *testing.T) {
	m := NewMap()
	m.Set("x", "1")
	m.Set("a", "2")

	out, err := Coerce(MapValue(m), Lines)
	require.NoError(t, err)
	// Insertion order, not sorted.
	assert.Equal(t, []string{"x: 1", "a: 2"}, out.Lines())
}

func TestCoerce_LinesToMapping(t *testing.T) {
	out, err := Coerce(LinesValue([]string{"x: 1", "y: 2", ""}), Mapping)
	require.NoError(t, err)

	m := out.Map()
	assert.Equal(t, []string{"x", "y"}, m.Keys())
	v, ok := m.Get("y")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestCoerce_LinesToMappingFailsWithoutSeparator(t *testing.T) {
	_, err := Coerce(LinesValue([]string{"x: 1", "no separator here"}), Mapping)

	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Lines, cerr.From)
	assert.Equal(t, Mapping, cerr.To)
}

func TestCoerce_AnyToText(t *testing.T) {
	out, err := Coerce(AnyValue(42), Text)
	require.NoError(t, err)
	assert.Equal(t, "42", out.Text())

	out, err = Coerce(AnyValue(nil), Text)
	require.NoError(t, err)
	assert.Equal(t, "", out.Text())
}

func TestCoerce_UndefinedPairsFail(t *testing.T) {
	m := NewMap()
	m.Set("k", "v")

	tests := []struct {
		name   string
		value  Value
		target Shape
	}{
		{"mapping to text", MapValue(m), Text},
		{"text to mapping", TextValue("k: v"), Mapping},
		{"any to lines", AnyValue(3), Lines},
		{"any to mapping", AnyValue(3), Mapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.value, tt.target)
			var cerr *CoercionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.value.Shape(), cerr.From)
			assert.Equal(t, tt.target, cerr.To)
		})
	}
}

func TestEmptyValue(t *testing.T) {
	assert.Equal(t, Text, EmptyValue(Text).Shape())
	assert.Equal(t, "", EmptyValue(Text).Text())
	assert.Equal(t, Lines, EmptyValue(Lines).Shape())
	assert.Empty(t, EmptyValue(Lines).Lines())
	assert.Equal(t, Mapping, EmptyValue(Mapping).Shape())
	assert.Equal(t, 0, EmptyValue(Mapping).Map().Len())
	assert.Equal(t, Text, EmptyValue(Any).Shape())
}

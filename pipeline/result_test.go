package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func textResult(s string) *Result    { return &Result{value: TextValue(s)} }
func linesResult(l []string) *Result { return &Result{value: LinesValue(l)} }
func scalarResult(v any) *Result     { return &Result{value: AnyValue(v)} }
func mapResult(m *Map) *Result       { return &Result{value: MapValue(m)} }

func TestResult_Text(t *testing.T) {
	assert.Equal(t, "hello", textResult("hello").Text())
	assert.Equal(t, "a\nb", linesResult([]string{"a", "b"}).Text())
	assert.Equal(t, "a-b", linesResult([]string{"a", "b"}).TextSep("-"))
	assert.Equal(t, "42", scalarResult(42).Text())

	m := NewMap()
	m.Set("k", "v")
	assert.Equal(t, "k: v", mapResult(m).Text())
}

func TestResult_Lines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, textResult("a\nb\n").Lines())
	assert.Equal(t, []string{"a"}, linesResult([]string{"a"}).Lines())
	assert.Equal(t, []string{"3"}, scalarResult(3).Lines())
	assert.Nil(t, scalarResult(nil).Lines())
}

func TestResult_Map(t *testing.T) {
	res := linesResult([]string{"x: 1", "y: 2"})

	m := res.Map()
	assert.Equal(t, []string{"x", "y"}, m.Keys())

	// No conversion rule: empty mapping, not a panic.
	assert.Equal(t, 0, scalarResult(3).Map().Len())
	assert.Equal(t, 0, linesResult([]string{"no separator"}).Map().Len())
}

func TestResult_IntLenientCasts(t *testing.T) {
	tests := []struct {
		name string
		res  *Result
		want int
	}{
		{"int scalar", scalarResult(7), 7},
		{"float scalar truncates", scalarResult(3.9), 3},
		{"numeric text", textResult("1789"), 1789},
		{"float text truncates", textResult("3.14"), 3},
		{"padded text", textResult(" 42 "), 42},
		{"non-numeric text", textResult("Tea for 2"), 0},
		{"bool scalar", scalarResult(true), 1},
		{"empty", textResult(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Int())
		})
	}
}

func TestResult_Float(t *testing.T) {
	assert.Equal(t, 3.14, textResult("3.14").Float())
	assert.Equal(t, 2.5, scalarResult(2.5).Float())
	assert.Equal(t, 7.0, scalarResult(7).Float())
	assert.Equal(t, 0.0, textResult("Tea for 2").Float())
}

func TestResult_Bool(t *testing.T) {
	assert.True(t, scalarResult(true).Bool())
	assert.False(t, scalarResult(false).Bool())
	assert.True(t, textResult("x").Bool())
	assert.False(t, textResult("").Bool())
	assert.True(t, linesResult([]string{"a"}).Bool())
	assert.False(t, linesResult(nil).Bool())
}

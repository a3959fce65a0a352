package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elapouya/go-textops/pipeline"
)

func TestCut_WhitespaceDefault(t *testing.T) {
	res, err := pipeline.New().Op("cut").Apply("1492 file1\n1789  file2\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"1492", "1789"}, res.Lines())
}

func TestCut_ColumnSelection(t *testing.T) {
	input := "a:b:c\nd:e:f\n"

	res, err := pipeline.New().Op("cut", ":", 1).Apply(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "e"}, res.Lines())

	// Negative column counts from the end.
	res, err = pipeline.New().Op("cut", ":", -1).Apply(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "f"}, res.Lines())
}

func TestCut_MissingColumnDropsLine(t *testing.T) {
	res, err := pipeline.New().Op("cut", ":", 2).Apply("a:b:c\nshort\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, res.Lines())
}

func TestCutre(t *testing.T) {
	res, err := pipeline.New().
		Op("cutre", `[,;]\s*`, 1).
		Apply("a, b; c\nx;y, z\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "y"}, res.Lines())
}

func TestTodict(t *testing.T) {
	res, err := pipeline.New().Op("todict", "=").Apply([]string{"x=1", "y=2"})
	require.NoError(t, err)
	assert.Equal(t, pipeline.Mapping, res.Shape())

	m := res.Map()
	assert.Equal(t, []string{"x", "y"}, m.Keys())
	x, _ := m.Get("x")
	y, _ := m.Get("y")
	assert.Equal(t, "1", x)
	assert.Equal(t, "2", y)
}

func TestTodict_TrimsAndSkipsBlank(t *testing.T) {
	res, err := pipeline.New().Op("todict").Apply("host : web1\n\nport : 80\n")
	require.NoError(t, err)

	m := res.Map()
	assert.Equal(t, []string{"host", "port"}, m.Keys())
	host, _ := m.Get("host")
	assert.Equal(t, "web1", host)
}

func TestTodict_LineWithoutSeparatorFails(t *testing.T) {
	_, err := pipeline.New().Op("todict", "=").Apply([]string{"x=1", "broken"})

	var operr *pipeline.OperationError
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, "todict", operr.Op)
}

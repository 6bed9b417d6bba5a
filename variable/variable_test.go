package variable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/variable"
)

func TestNew_EmptyName(t *testing.T) {
	_, err := variable.New("", "ns", []float64{1})
	assert.ErrorIs(t, err, variable.ErrEmptyName)
}

func TestNew_EmptyValues(t *testing.T) {
	_, err := variable.New("amp", "", nil)
	assert.ErrorIs(t, err, variable.ErrEmptyValues)
}

func TestVariable_SetIndex(t *testing.T) {
	v, err := variable.New("amp", "a.u.", []float64{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.1, v.Value())

	require.NoError(t, v.SetIndex(2))
	assert.Equal(t, 0.3, v.Value())

	err = v.SetIndex(5)
	assert.ErrorIs(t, err, variable.ErrIndexOutOfRange)
}

func TestVariable_Clone_Independent(t *testing.T) {
	v, err := variable.New("amp", "a.u.", []float64{0.1, 0.2})
	require.NoError(t, err)

	c := v.Clone()
	require.NoError(t, c.SetIndex(1))

	assert.Equal(t, 0.1, v.Value())
	assert.Equal(t, 0.2, c.Value())
}

func TestNewGroup_ZippedLengthMismatch(t *testing.T) {
	a, _ := variable.New("a", "ns", []float64{1, 2, 3})
	b, _ := variable.New("b", "ns", []float64{1, 2})

	_, err := variable.NewGroup(a, b)
	assert.ErrorIs(t, err, variable.ErrZippedLengthMismatch)
}

func TestVariables_Compile_SinglePoint(t *testing.T) {
	a, _ := variable.New("a", "ns", []float64{1})
	ga, _ := variable.NewGroup(a)

	vs := variable.NewVariables(ga)
	cmds := vs.Compile()
	require.Len(t, cmds, 1)
	assert.Equal(t, variable.UpdateCommand{"a": 0}, cmds[0])
}

func TestVariables_Compile_IncrementalDiscipline(t *testing.T) {
	a, _ := variable.New("a", "ns", []float64{0, 1, 2})
	b, _ := variable.New("b", "ns", []float64{10, 20})
	ga, _ := variable.NewGroup(a)
	gb, _ := variable.NewGroup(b)

	vs := variable.NewVariables(ga, gb)
	cmds := vs.Compile()
	require.Len(t, cmds, 6)

	// first command carries every name
	assert.Equal(t, variable.UpdateCommand{"a": 0, "b": 0}, cmds[0])
	// b is the fast axis: only b changes on the second point
	assert.Equal(t, variable.UpdateCommand{"b": 1}, cmds[1])
	// a is the slow axis: a changes (and b resets) on the third point
	assert.Equal(t, variable.UpdateCommand{"a": 1, "b": 0}, cmds[2])
}

func TestApply_UnknownNameSkipped(t *testing.T) {
	a, _ := variable.New("a", "ns", []float64{1, 2})
	registry := map[string]*variable.Variable{"a": a}

	err := variable.Apply(variable.UpdateCommand{"a": 1, "ghost": 0}, registry)
	require.NoError(t, err)
	assert.Equal(t, 2.0, a.Value())
}

func TestVariable_JitteredValue_DefaultIsExact(t *testing.T) {
	a, _ := variable.New("a", "ns", []float64{5})
	assert.Equal(t, 5.0, a.JitteredValue())
}

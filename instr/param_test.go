package instr_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
	"pulseq/variable"
)

func TestParam_Fix_LiteralIsExact(t *testing.T) {
	p := instr.Literal(3.5)
	assert.Equal(t, 3.5, p.Fix())
}

func TestParam_Fix_BoundWithoutJitterIsExact(t *testing.T) {
	v, err := variable.New("amp", "", []float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, v.SetIndex(1))

	p := instr.Bound(v)
	assert.Equal(t, 2.0, p.Fix())
	assert.Equal(t, 2.0, p.Fix())
}

func TestParam_Fix_BoundWithJitterPerturbsEveryCall(t *testing.T) {
	v, err := variable.New("amp", "", []float64{10})
	require.NoError(t, err)
	v.WithJitter(rand.New(rand.NewSource(1)), 0.5)

	p := instr.Bound(v)
	first := p.Fix()
	second := p.Fix()

	assert.NotEqual(t, 10.0, first)
	assert.NotEqual(t, first, second)
	assert.InDelta(t, 10.0, first, 5)
	assert.InDelta(t, 10.0, second, 5)
}

package instr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
)

func TestAcquire_RecordsWindowAtExecPosition(t *testing.T) {
	a := instr.NewAcquire(instr.Literal(40))
	require.NoError(t, a.FixVariables())

	p := newFakePort()
	p.position = 60
	require.NoError(t, a.Execute(p))
	assert.Equal(t, 100.0, p.Position())

	// as with Pulse, a later Execute in the same pass must not shift the
	// window this Acquire records during the later render pass.
	p.TimeStep(500)

	require.NoError(t, a.Acquire(p))
	require.Len(t, p.windows, 1)
	assert.Equal(t, [2]float64{60, 100}, p.windows[0])
}

func TestAcquire_WriteIsNoop(t *testing.T) {
	a := instr.NewAcquire(instr.Literal(10))
	require.NoError(t, a.FixVariables())

	p := newFakePort()
	require.NoError(t, a.Write(p))
	assert.Empty(t, p.samples)
}

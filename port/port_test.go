package port_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/shape"
)

func newBoundaryTrigger(t *testing.T, align instr.Align, index int) *instr.Trigger {
	t.Helper()
	tr, err := instr.NewTrigger(align)
	require.NoError(t, err)
	tr.SetIndex(index)

	return tr
}

func TestNew_EmptyName(t *testing.T) {
	_, err := port.New("")
	assert.ErrorIs(t, err, port.ErrEmptyName)
}

func TestNew_Defaults(t *testing.T) {
	p, err := port.New("qubit")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.DACStep())
	assert.Equal(t, 0.25, p.SidebandFreq())
	assert.Equal(t, 0.0, p.Skew())
}

func TestTimeStep_SequentialAdvancesPosition(t *testing.T) {
	p, err := port.New("q", port.WithDACStep(1))
	require.NoError(t, err)
	p.TimeStep(30)
	assert.Equal(t, 30.0, p.Position())
}

func TestAlignStack_LeftFrameDoesNotAdvancePosition(t *testing.T) {
	p, err := port.New("q")
	require.NoError(t, err)
	p.PushAlign(instr.AlignLeft)
	p.TimeStep(100)
	p.TimeStep(50)
	assert.Equal(t, 0.0, p.Position())

	collapsed, err := p.PopAlign()
	require.NoError(t, err)
	assert.Equal(t, 100.0, collapsed)
	assert.Equal(t, 100.0, p.Position())
}

func TestPopAlign_Underflow(t *testing.T) {
	p, err := port.New("q")
	require.NoError(t, err)
	_, err = p.PopAlign()
	assert.ErrorIs(t, err, port.ErrAlignStackUnderflow)
}

func TestAlignStack_NestedLeftInsideLeft(t *testing.T) {
	p, err := port.New("q")
	require.NoError(t, err)
	p.PushAlign(instr.AlignLeft)
	p.PushAlign(instr.AlignLeft)
	p.TimeStep(20)
	p.TimeStep(80)
	inner, err := p.PopAlign()
	require.NoError(t, err)
	assert.Equal(t, 80.0, inner)
	assert.Equal(t, 0.0, p.Position())

	outer, err := p.PopAlign()
	require.NoError(t, err)
	assert.Equal(t, 80.0, outer)
	assert.Equal(t, 80.0, p.Position())
}

// TestCompile_SinglePortBasicSquare exercises the S1 scenario of
// spec.md §8 directly against Port's own orchestration pipeline: one
// Square(1, 100) pulse framed by a start and end Trigger.
func TestCompile_SinglePortBasicSquare(t *testing.T) {
	p, err := port.New("q", port.WithDACStep(1), port.WithSidebandFreq(0))
	require.NoError(t, err)

	start := newBoundaryTrigger(t, instr.AlignLeft, 0)
	end := newBoundaryTrigger(t, instr.AlignLeft, 1)
	pulse := instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(1),
		"duration":  instr.Literal(100),
	})
	require.NoError(t, pulse.FixVariables())

	p.Add(start)
	p.Add(pulse)
	p.Add(end)

	edges, err := p.ExtractTriggerEdges()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, port.Edge{From: 0, To: 1, Weight: 100}, edges[0])

	globalPos := []float64{0, 100}
	require.NoError(t, p.SyncTriggerPositions(globalPos))
	require.NoError(t, p.PrependSkewDelay(0))
	require.NoError(t, p.ExecuteInstructions())
	require.NoError(t, p.RenderWaveform(globalPos[1]))

	assert.Equal(t, []port.TriggerNode{{Index: 0, Position: 0}, {Index: 1, Position: 100}}, p.TriggerNodeList())
	assert.Len(t, p.Waveform(), 100)
	assert.Empty(t, p.MeasurementWindows())
	for _, v := range p.Waveform() {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-9)
	}
}

// TestCompile_MiddleAlignPadsEvenly exercises the S3 scenario:
// a port whose local span is shorter than the globally-synchronized one,
// under a middle-aligned leading trigger.
func TestCompile_MiddleAlignPadsEvenly(t *testing.T) {
	p, err := port.New("b", port.WithDACStep(1), port.WithSidebandFreq(0))
	require.NoError(t, err)

	start := newBoundaryTrigger(t, instr.AlignMiddle, 0)
	end := newBoundaryTrigger(t, instr.AlignLeft, 1)
	pulse := instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(1),
		"duration":  instr.Literal(50),
	})
	require.NoError(t, pulse.FixVariables())

	p.Add(start)
	p.Add(pulse)
	p.Add(end)

	_, err = p.ExtractTriggerEdges()
	require.NoError(t, err)

	globalPos := []float64{0, 100}
	require.NoError(t, p.SyncTriggerPositions(globalPos))
	require.NoError(t, p.PrependSkewDelay(0))
	require.NoError(t, p.ExecuteInstructions())

	assert.Equal(t, 100.0, p.Position())
}

func TestRenderWaveform_AmplitudeOverflowWarning(t *testing.T) {
	p, err := port.New("q", port.WithDACStep(1), port.WithSidebandFreq(0))
	require.NoError(t, err)

	start := newBoundaryTrigger(t, instr.AlignLeft, 0)
	end := newBoundaryTrigger(t, instr.AlignLeft, 1)
	pulse := instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(2),
		"duration":  instr.Literal(10),
	})
	require.NoError(t, pulse.FixVariables())

	p.Add(start)
	p.Add(pulse)
	p.Add(end)

	_, err = p.ExtractTriggerEdges()
	require.NoError(t, err)
	globalPos := []float64{0, 10}
	require.NoError(t, p.SyncTriggerPositions(globalPos))
	require.NoError(t, p.PrependSkewDelay(0))
	require.NoError(t, p.ExecuteInstructions())
	require.NoError(t, p.RenderWaveform(globalPos[1]))

	require.Len(t, p.Warnings(), 1)
}

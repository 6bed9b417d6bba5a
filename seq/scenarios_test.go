package seq_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/seq"
	"pulseq/shape"
	"pulseq/variable"
)

func square(amplitude, duration float64) *instr.Pulse {
	return instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(amplitude),
		"duration":  instr.Literal(duration),
	})
}

// TestS1_BasicSquare: one port, one Square(1, 100). Expect 100 samples of
// magnitude 1, no measurement windows, trigger_node_list = [(0,0),(1,100)].
func TestS1_BasicSquare(t *testing.T) {
	s := seq.New()
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	require.NoError(t, s.Add(square(1, 100), q))
	require.NoError(t, s.Compile())

	p, err := s.PortByName("q")
	require.NoError(t, err)

	require.Len(t, p.Waveform(), 100)
	for _, v := range p.Waveform() {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-9)
	}
	assert.Empty(t, p.MeasurementWindows())
	require.Len(t, p.TriggerNodeList(), 2)
	assert.Equal(t, port.TriggerNode{Index: 0, Position: 0}, p.TriggerNodeList()[0])
	assert.Equal(t, port.TriggerNode{Index: 1, Position: 100}, p.TriggerNodeList()[1])
}

// TestS2_TwoPortSync: port A Square(1,100), port B Square(1,50), a "left"
// trigger at start and end. End-trigger position is 100 on both ports,
// and B's synchronized stream carries a trailing 50 ns Delay.
func TestS2_TwoPortSync(t *testing.T) {
	s := seq.New()
	a, err := port.New("a", port.WithSidebandFreq(0))
	require.NoError(t, err)
	b, err := port.New("b", port.WithSidebandFreq(0))
	require.NoError(t, err)

	require.NoError(t, s.Trigger([]*port.Port{a, b}, instr.AlignLeft))
	require.NoError(t, s.Add(square(1, 100), a))
	require.NoError(t, s.Add(square(1, 50), b))
	require.NoError(t, s.Trigger([]*port.Port{a, b}, instr.AlignLeft))

	require.NoError(t, s.Compile())

	pa, err := s.PortByName("a")
	require.NoError(t, err)
	pb, err := s.PortByName("b")
	require.NoError(t, err)

	lastA := pa.TriggerNodeList()[len(pa.TriggerNodeList())-1]
	lastB := pb.TriggerNodeList()[len(pb.TriggerNodeList())-1]
	assert.Equal(t, 100.0, lastA.Position)
	assert.Equal(t, 100.0, lastB.Position)

	// port B's waveform is 100 samples: 50 of signal, 50 of silence from
	// the trailing padding Delay.
	require.Len(t, pb.Waveform(), 100)
	for i := 0; i < 50; i++ {
		assert.InDelta(t, 1.0, cmplx.Abs(pb.Waveform()[i]), 1e-9)
	}
	for i := 50; i < 100; i++ {
		assert.InDelta(t, 0.0, cmplx.Abs(pb.Waveform()[i]), 1e-9)
	}
}

// TestS3_MiddleAlign: same as S2 but the start trigger uses "middle"
// align. Port B's synchronized stream carries a 25 ns leading Delay and a
// 25 ns trailing Delay.
func TestS3_MiddleAlign(t *testing.T) {
	s := seq.New()
	a, err := port.New("a", port.WithSidebandFreq(0))
	require.NoError(t, err)
	b, err := port.New("b", port.WithSidebandFreq(0))
	require.NoError(t, err)

	require.NoError(t, s.Trigger([]*port.Port{a, b}, instr.AlignMiddle))
	require.NoError(t, s.Add(square(1, 100), a))
	require.NoError(t, s.Add(square(1, 50), b))
	require.NoError(t, s.Trigger([]*port.Port{a, b}, instr.AlignLeft))

	require.NoError(t, s.Compile())

	pb, err := s.PortByName("b")
	require.NoError(t, err)
	require.Len(t, pb.Waveform(), 100)

	for i := 0; i < 25; i++ {
		assert.InDelta(t, 0.0, cmplx.Abs(pb.Waveform()[i]), 1e-9)
	}
	for i := 25; i < 75; i++ {
		assert.InDelta(t, 1.0, cmplx.Abs(pb.Waveform()[i]), 1e-9)
	}
	for i := 75; i < 100; i++ {
		assert.InDelta(t, 0.0, cmplx.Abs(pb.Waveform()[i]), 1e-9)
	}
}

// TestS4_VirtualZ: Square(1,100), VirtualZ(pi), Square(1,100) on one
// port with SIDEBAND_FREQ=0. The second pulse's sample sum is the
// negative of the first's.
func TestS4_VirtualZ(t *testing.T) {
	s := seq.New()
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	require.NoError(t, s.Add(square(1, 100), q))
	require.NoError(t, s.Add(instr.NewVirtualZ(instr.Literal(3.141592653589793)), q))
	require.NoError(t, s.Add(square(1, 100), q))

	require.NoError(t, s.Compile())

	p, err := s.PortByName("q")
	require.NoError(t, err)
	require.Len(t, p.Waveform(), 200)

	var sum1, sum2 complex128
	for i := 0; i < 100; i++ {
		sum1 += p.Waveform()[i]
	}
	for i := 100; i < 200; i++ {
		sum2 += p.Waveform()[i]
	}
	assert.InDelta(t, real(-sum1), real(sum2), 1e-6)
	assert.InDelta(t, imag(-sum1), imag(sum2), 1e-6)
}

// TestS5_UnionParallel: Union([Square(1,100), Square(1,50)]) on one port.
// Position advances by 100; samples on [0,50) have magnitude 2, on
// [50,100) magnitude 1.
func TestS5_UnionParallel(t *testing.T) {
	s := seq.New()
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	u := instr.NewUnion(square(1, 100), square(1, 50))
	require.NoError(t, s.Add(u, q))

	require.NoError(t, s.Compile())

	p, err := s.PortByName("q")
	require.NoError(t, err)
	require.Len(t, p.Waveform(), 100)
	for i := 0; i < 50; i++ {
		assert.InDelta(t, 2.0, cmplx.Abs(p.Waveform()[i]), 1e-9)
	}
	for i := 50; i < 100; i++ {
		assert.InDelta(t, 1.0, cmplx.Abs(p.Waveform()[i]), 1e-9)
	}
}

// TestS6_VariableSweep: one Variable A = [0.1, 0.2, 0.3] driving
// Square(amplitude=A, duration=100), compiled three times while updating
// A's index. Expect three distinct waveforms with the corresponding
// amplitudes, every other field identical.
func TestS6_VariableSweep(t *testing.T) {
	a, err := variable.New("A", "a.u.", []float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	s := seq.New()
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	pu := instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Bound(a),
		"duration":  instr.Literal(100),
	})
	require.NoError(t, s.Add(pu, q))

	expect := []float64{0.1, 0.2, 0.3}
	for idx, want := range expect {
		require.NoError(t, s.UpdateVariables(variable.UpdateCommand{"A": idx}))
		require.NoError(t, s.Compile())

		p, err := s.PortByName("q")
		require.NoError(t, err)
		require.Len(t, p.Waveform(), 100)
		for _, v := range p.Waveform() {
			assert.InDelta(t, want, cmplx.Abs(v), 1e-9)
		}
	}
}

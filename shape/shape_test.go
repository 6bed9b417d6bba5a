package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/shape"
)

func latch(t *testing.T, s shape.Shape, p map[string]float64) {
	t.Helper()
	require.NoError(t, s.SetParams(p))
}

func TestSquare_ConstantAmplitude(t *testing.T) {
	s := shape.NewSquare(0, 0)
	latch(t, s, map[string]float64{"amplitude": 1, "duration": 100})

	out := s.Model([]float64{-50, 0, 49})
	for _, v := range out {
		assert.Equal(t, complex(1, 0), v)
	}
	assert.Equal(t, 100.0, s.Duration())
}

func TestStep_EdgeExceedsDuration(t *testing.T) {
	s := shape.NewStep(0, 0, 0)
	err := s.SetParams(map[string]float64{"amplitude": 1, "edge": 20, "duration": 10})
	assert.ErrorIs(t, err, shape.ErrInvalidParams)
}

func TestStep_RampsThenHolds(t *testing.T) {
	// edge (10) is much smaller than duration (30): the ramp window is
	// [-5,5], centred on t=0, independent of duration. A sample at -12
	// sits well inside the duration-derived window a duration-anchored
	// ramp would use, but outside the edge-derived one: it must read 0.
	s := shape.NewStep(0, 0, 0)
	latch(t, s, map[string]float64{"amplitude": 2, "edge": 10, "duration": 30})

	out := s.Model([]float64{-12, -5, 0, 5, 10})
	assert.Equal(t, complex(0, 0), out[0])
	assert.Equal(t, complex(0, 0), out[1])
	assert.Equal(t, complex(1, 0), out[2])
	assert.Equal(t, complex(2, 0), out[3])
	assert.Equal(t, complex(2, 0), out[4])
}

func TestGaussian_ZeroEndTouchesZero(t *testing.T) {
	g := shape.NewGaussian(0, 0, 0, true)
	latch(t, g, map[string]float64{"amplitude": 1, "fwhm": 20, "duration": 100, "zero_end": 1})

	out := g.Model([]float64{-50, 0, 50})
	assert.InDelta(t, 0, real(out[0]), 1e-9)
	assert.InDelta(t, 1, real(out[1]), 1e-9)
	assert.InDelta(t, 0, real(out[2]), 1e-9)
}

func TestRaisedCos_EndpointsAreZero(t *testing.T) {
	r := shape.NewRaisedCos(0, 0)
	latch(t, r, map[string]float64{"amplitude": 1, "duration": 100})

	out := r.Model([]float64{-50, 0, 50})
	assert.InDelta(t, 0, real(out[0]), 1e-9)
	assert.InDelta(t, 1, real(out[1]), 1e-9)
	assert.InDelta(t, 0, real(out[2]), 1e-9)
}

func TestHyperbolicSecant_PeakAtCenter(t *testing.T) {
	h := shape.NewHyperbolicSecant(0, 0, 0, false)
	latch(t, h, map[string]float64{"amplitude": 3, "fwhm": 10, "duration": 100})

	out := h.Model([]float64{0})
	assert.InDelta(t, 3, real(out[0]), 1e-9)
}

func TestUnion_PointwiseSumAndMaxDuration(t *testing.T) {
	a := shape.NewSquare(0, 0)
	b := shape.NewSquare(0, 0)
	u := shape.NewUnion(a, b)
	latch(t, u, map[string]float64{"amplitude": 1, "duration": 50})

	assert.Equal(t, 50.0, u.Duration())
	out := u.Model([]float64{0})
	assert.Equal(t, complex(2, 0), out[0])
}

func TestAdjoint_ConcatenatesChildrenCenteredInOwnSubinterval(t *testing.T) {
	a := shape.NewSquare(0, 0)
	b := shape.NewSquare(0, 0)
	adj := shape.NewAdjoint(a, b)
	latch(t, adj, map[string]float64{"amplitude": 1, "duration": 50})

	assert.Equal(t, 100.0, adj.Duration())

	out := adj.Model([]float64{-25, 25, 60})
	assert.Equal(t, complex(1, 0), out[0])
	assert.Equal(t, complex(1, 0), out[1])
	assert.Equal(t, complex(0, 0), out[2])
}

func TestFlatTop_PlateauHoldsPeak(t *testing.T) {
	edge := shape.NewStep(0, 0, 0)
	ft := shape.NewFlatTop(edge, 0)
	latch(t, ft, map[string]float64{"amplitude": 1, "edge": 10, "duration": 20, "top_duration": 30})

	assert.Equal(t, 50.0, ft.Duration()) // 20 (edge shape duration) + 30 plateau

	// t=0,10 sit on the plateau (|t|<=top_duration/2=15); t=17 sits inside
	// the child edge shape's own ramp region, partway between the
	// plateau's value and the fully ramped-up edge.
	out := ft.Model([]float64{0, 10, 17})
	assert.InDelta(t, 0.5, real(out[0]), 1e-9)
	assert.InDelta(t, 0.5, real(out[1]), 1e-9)
	assert.InDelta(t, 0.7, real(out[2]), 1e-9)
}

func TestDerivative_ConstantEnvelopeHasZeroGradient(t *testing.T) {
	sq := shape.NewSquare(0, 0)
	d := shape.NewDerivative(sq)
	latch(t, d, map[string]float64{"amplitude": 1, "duration": 100})

	out := d.Model([]float64{-10, 0, 10})
	for _, v := range out {
		assert.InDelta(t, 0, real(v), 1e-9)
	}
}

func TestProduct_AmplitudeTimesPhaseCarrier(t *testing.T) {
	amp := shape.NewSquare(0, 0)
	phase := shape.NewSquare(0, 0) // constant phase of 1 -> exp(i*pi)
	p := shape.NewProduct(amp, phase)
	latch(t, p, map[string]float64{"amplitude": 1, "duration": 10})

	out := p.Model([]float64{0})
	assert.InDelta(t, -1, real(out[0]), 1e-9)
	assert.InDelta(t, 0, imag(out[0]), 1e-9)
}

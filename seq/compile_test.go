package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/seq"
	"pulseq/shape"
)

// TestWaveformInformation_SurfacesWarnings guards against
// WaveformInformation's trailing ResetCompile wiping each port's
// diagnostics before a caller can read them: the returned WaveformInfo
// must carry its own snapshot of Warnings.
func TestWaveformInformation_SurfacesWarnings(t *testing.T) {
	s := seq.New()
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	pulse := instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(2), // overflows the 1.001 threshold
		"duration":  instr.Literal(10),
	})
	require.NoError(t, s.Add(pulse, q))

	info, err := s.WaveformInformation()
	require.NoError(t, err)
	require.Len(t, info["q"].Warnings, 1)

	assert.Empty(t, s.Warnings(), "ResetCompile should still clear live port state after the snapshot")
}

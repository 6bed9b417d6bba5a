package persist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/instr"
	"pulseq/persist"
	"pulseq/port"
	"pulseq/seq"
	"pulseq/shape"
)

func square(amplitude, duration float64) *instr.Pulse {
	return instr.NewPulse(shape.NewSquare(0, 0), map[string]instr.Param{
		"amplitude": instr.Literal(amplitude),
		"duration":  instr.Literal(duration),
	})
}

func TestDumpLoadSetting_RoundTrip(t *testing.T) {
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)
	r, err := port.New("r", port.WithSidebandFreq(0))
	require.NoError(t, err)

	s := seq.New()
	require.NoError(t, s.Add(square(1, 100), q))
	require.NoError(t, s.Add(square(2, 50), r))
	require.NoError(t, s.Trigger([]*port.Port{q, r}, instr.AlignLeft))

	data, err := persist.DumpSetting(s)
	require.NoError(t, err)

	names, err := persist.PortNames(data)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"q", "r"}, names)

	q2, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)
	r2, err := port.New("r", port.WithSidebandFreq(0))
	require.NoError(t, err)

	loaded, err := persist.LoadSetting(data, map[string]*port.Port{"q": q2, "r": r2})
	require.NoError(t, err)
	require.NoError(t, loaded.Compile())

	p, err := loaded.PortByName("q")
	require.NoError(t, err)
	assert.Len(t, p.Waveform(), 100)
}

func TestLoadSetting_UnknownPort(t *testing.T) {
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	s := seq.New()
	require.NoError(t, s.Add(square(1, 100), q))

	data, err := persist.DumpSetting(s)
	require.NoError(t, err)

	_, err = persist.LoadSetting(data, map[string]*port.Port{})
	assert.ErrorIs(t, err, persist.ErrUnknownPort)
}

func TestDumpSetting_FunctionalNodeIsUnsupported(t *testing.T) {
	q, err := port.New("q", port.WithSidebandFreq(0))
	require.NoError(t, err)

	union := instr.NewUnion(square(1, 100), square(2, 50))

	s := seq.New()
	require.NoError(t, s.Add(union, q))

	_, err = persist.DumpSetting(s)
	assert.ErrorIs(t, err, persist.ErrUnsupportedKind)
}

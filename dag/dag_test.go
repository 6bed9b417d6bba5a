package dag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseq/dag"
)

func TestLongestPath_LinearChain(t *testing.T) {
	g := dag.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 100))
	require.NoError(t, g.AddEdge(1, 2, 50))

	pos, err := dag.LongestPath(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100, 150}, pos)
}

func TestLongestPath_ParallelEdgesTakeMax(t *testing.T) {
	g := dag.NewGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 100))
	require.NoError(t, g.AddEdge(0, 1, 50))

	pos, err := dag.LongestPath(g)
	require.NoError(t, err)
	assert.Equal(t, 100.0, pos[1])
}

func TestLongestPath_TwoPortConvergence(t *testing.T) {
	// Port A: 0 -(100)-> 1. Port B: 0 -(50)-> 1. The end trigger must land
	// at the slower port's bound.
	g := dag.NewGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 100))
	require.NoError(t, g.AddEdge(0, 1, 50))

	pos, err := dag.LongestPath(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100}, pos)
}

func TestLongestPath_DisconnectedNodeStaysZero(t *testing.T) {
	g := dag.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 10))

	pos, err := dag.LongestPath(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos[2])
}

func TestLongestPath_CycleDetected(t *testing.T) {
	g := dag.NewGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 10))
	require.NoError(t, g.AddEdge(1, 0, 10))

	_, err := dag.LongestPath(g)
	assert.ErrorIs(t, err, dag.ErrCycleDetected)
}

func TestAddEdge_OutOfRange(t *testing.T) {
	g := dag.NewGraph(2)
	err := g.AddEdge(0, 5, 10)
	assert.ErrorIs(t, err, dag.ErrNodeOutOfRange)
}

func TestAddEdge_NegativeWeight(t *testing.T) {
	g := dag.NewGraph(2)
	err := g.AddEdge(0, 1, -1)
	assert.ErrorIs(t, err, dag.ErrNegativeWeight)
}

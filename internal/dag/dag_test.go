package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("lint")
		g.AddNode("format")

		// format calls lint, so format depends on lint.
		require.NoError(t, g.AddEdge("lint", "format"))

		assert.Equal(t, []string{"lint"}, sortedIDs(g.nodes["format"].deps))
		assert.Empty(t, g.nodes["lint"].deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")

		assert.ErrorContains(t, g.AddEdge("dne", "a"), "source node not found")
		assert.ErrorContains(t, g.AddEdge("a", "dne"), "destination node not found")

		var cycleErr *CycleError
		require.True(t, errors.As(g.AddEdge("a", "a"), &cycleErr))
		assert.Equal(t, []string{"a", "a"}, cycleErr.Path)
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("chain has no cycles", func(t *testing.T) {
		g := New()
		for _, id := range []string{"generate", "format", "lint", "lint-per-location"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("format", "generate"))
		require.NoError(t, g.AddEdge("lint", "format"))
		require.NoError(t, g.AddEdge("lint-per-location", "lint"))

		assert.NoError(t, g.DetectCycles())
		assert.NoError(t, g.DetectCyclesFrom("generate"))
	})

	t.Run("transitive cycle reports the path", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		require.NoError(t, g.AddEdge("b", "a")) // a calls b
		require.NoError(t, g.AddEdge("c", "b")) // b calls c
		require.NoError(t, g.AddEdge("a", "c")) // c calls a

		err := g.DetectCycles()
		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.Path)
		assert.EqualError(t, err, "cycle detected: a -> b -> c -> a")
	})

	t.Run("cycle unreachable from start is ignored", func(t *testing.T) {
		g := New()
		for _, id := range []string{"docs", "x", "y"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "x"))

		assert.NoError(t, g.DetectCyclesFrom("docs"))
		assert.Error(t, g.DetectCycles())
		assert.ErrorContains(t, g.DetectCyclesFrom("missing"), "node not found")
	})
}

package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func soup(tris ...[3]int) MatrixPrimitive[int] {
	var verts []int
	for _, t := range tris {
		verts = append(verts, t[0], t[1], t[2])
	}
	return MatrixPrimitive[int]{
		DrawMatrices: [10]int32{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		Primitives:   []Primitive[int]{{Topology: Triangles, Vertices: verts}},
	}
}

// TestFanTriangleStripIsFiveVertices covers §8's stripifier example: a
// chain of triangles sharing edges in the alternating winding a
// continuous 5-vertex strip [0,1,2,3,4] actually decodes to (the
// second triangle is (2,1,3), not (1,2,3), since strip decoding
// reverses every other triangle's winding by construction) stripifies
// back down to a vertex count of at most 5.
func TestFanTriangleStripIsFiveVertices(t *testing.T) {
	baseline := soup([3]int{0, 1, 2}, [3]int{2, 1, 3}, [3]int{2, 3, 4})

	stripped := baseline.Clone()
	_, err := StripifyMeshOptimizer(&stripped)
	require.NoError(t, err)

	assert.LessOrEqual(t, VertexCount(stripped), 5)
	require.NoError(t, ValidateMeshesEqual(intLess, baseline, stripped))
}

// TestStripifierInvariance is §8's canonicalize_triangle_set(strip(P))
// == canonicalize_triangle_set(P) property, checked across all six
// directly-callable algorithms.
func TestStripifierInvariance(t *testing.T) {
	baseline := soup(
		[3]int{0, 1, 2}, [3]int{1, 2, 3}, [3]int{2, 3, 4},
		[3]int{4, 5, 6}, [3]int{10, 11, 12},
	)

	algos := []Algo{AlgoMeshOptimizer, AlgoTriStripper, AlgoNvTriStripPort, AlgoHaroohie, AlgoDraco, AlgoDracoDegen}
	for _, algo := range algos {
		algo := algo
		t.Run(algo.String(), func(t *testing.T) {
			prim := baseline.Clone()
			_, err := StripifyAlgo(&prim, algo, intLess)
			require.NoError(t, err)
			assert.NoError(t, ValidateMeshesEqual(intLess, baseline, prim), "algorithm %s broke the triangle set", algo)
		})
	}
}

// TestStripifierNonRegression is §8's property that the race never
// does worse than any single algorithm it includes.
func TestStripifierNonRegression(t *testing.T) {
	baseline := soup(
		[3]int{0, 1, 2}, [3]int{1, 2, 3}, [3]int{2, 3, 4},
		[3]int{4, 5, 6}, [3]int{6, 7, 8}, [3]int{8, 9, 10},
	)

	winner, _, err := StripifyTriangles(baseline, intLess, -1)
	require.NoError(t, err)

	solo := baseline.Clone()
	_, err = StripifyMeshOptimizer(&solo)
	require.NoError(t, err)

	assert.LessOrEqual(t, VertexCount(winner), VertexCount(solo))
}

func TestPrimitiveRestartSplitterCollapsesTriples(t *testing.T) {
	vertices := []int{0, 1, 2, 3, 4, 5, 6}
	splitter := NewPrimitiveRestartSplitter[int](TriangleStrip, vertices)
	splitter.SetIndices([]uint32{0, 1, 2, 3, RestartIndex, 4, 5, 6})

	prims := splitter.Primitives()
	require.Len(t, prims, 2)
	assert.Equal(t, TriangleStrip, prims[0].Topology)
	assert.Equal(t, []int{0, 1, 2, 3}, prims[0].Vertices)
	// The length-3 run is collapsed into a trailing Triangles primitive.
	assert.Equal(t, Triangles, prims[1].Topology)
	assert.Equal(t, []int{4, 5, 6}, prims[1].Vertices)
}

func TestValidateMeshesEqualRejectsDifferentTriangleSets(t *testing.T) {
	a := soup([3]int{0, 1, 2})
	b := soup([3]int{0, 1, 3})
	assert.Error(t, ValidateMeshesEqual(intLess, a, b))
}

func TestExperimentHolderPrefersFirstEnumeratedOnTie(t *testing.T) {
	baseline := soup([3]int{0, 1, 2})
	holder := NewExperimentHolder[Algo, int](baseline, intLess)

	a := holder.CreateExperiment(AlgoDraco)
	*a = baseline.Clone()
	b := holder.CreateExperiment(AlgoMeshOptimizer)
	*b = baseline.Clone()

	assert.Equal(t, AlgoDraco, holder.GetFirstWinnerAlgo())
}

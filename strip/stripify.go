package strip

import (
	"fmt"
	"time"
)

type orderFunc func(tris [][3]uint32) []int

// stripifyWith is the shared pipeline behind every named algorithm:
// build an index buffer from prim's triangle soup, walk it into
// strips in the given visitation order, and replace prim's primitives
// with the split result (StripifyTrianglesRSMESHOPT).
func stripifyWith[V comparable](prim *MatrixPrimitive[V], order orderFunc, degen bool) (Stats, error) {
	start := time.Now()
	stats := Stats{BeforeIndices: VertexCount(*prim), BeforeFaces: FaceCount(*prim)}

	ib, err := BuildIndexBuffer(*prim)
	if err != nil {
		return Stats{}, err
	}
	tris := toTriangles(ib.IndexData)
	buf := walkStrips(tris, order(tris), degen)

	splitter := NewPrimitiveRestartSplitter[V](TriangleStrip, ib.Vertices)
	splitter.SetIndices(buf)
	prim.Primitives = splitter.Primitives()

	stats.AfterIndices = VertexCount(*prim)
	stats.AfterFaces = FaceCount(*prim)
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// StripifyMeshOptimizer emulates zeux/meshoptimizer stripify: a plain
// greedy walk in triangle-soup order.
func StripifyMeshOptimizer[V comparable](prim *MatrixPrimitive[V]) (Stats, error) {
	return stripifyWith(prim, sequentialOrder, false)
}

// StripifyTriStripper emulates GPSnoopy/TriStripper: greedy, but
// starting new strips from the least-connected triangles first.
func StripifyTriStripper[V comparable](prim *MatrixPrimitive[V]) (Stats, error) {
	return stripifyWith(prim, degreeOrder, false)
}

// StripifyNvTriStripPort emulates amorilia/tristrip without a
// post-transform vertex cache model: a plain greedy walk, traversing
// triangles in reverse input order (no cache-aware reordering).
func StripifyNvTriStripPort[V comparable](prim *MatrixPrimitive[V]) (Stats, error) {
	return stripifyWith(prim, reverseOrder, false)
}

// StripifyHaroohie emulates the jellees/nns-blender-plugin port: a
// fan-biased walk (disabled by default in StripifyTriangles — slow,
// rarely wins).
func StripifyHaroohie[V comparable](prim *MatrixPrimitive[V]) (Stats, error) {
	start := time.Now()
	stats := Stats{BeforeIndices: VertexCount(*prim), BeforeFaces: FaceCount(*prim)}

	ib, err := BuildIndexBuffer(*prim)
	if err != nil {
		return Stats{}, err
	}
	tris := toTriangles(ib.IndexData)
	buf := walkFans(tris, sequentialOrder(tris))

	splitter := NewPrimitiveRestartSplitter[V](TriangleFan, ib.Vertices)
	splitter.SetIndices(buf)
	prim.Primitives = splitter.Primitives()

	stats.AfterIndices = VertexCount(*prim)
	stats.AfterFaces = FaceCount(*prim)
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// StripifyDraco emulates Google Draco's stripifier. allowDegen selects
// the DracoDegen variant, which bridges otherwise-disconnected strips
// with degenerate triangles instead of ending the primitive.
func StripifyDraco[V comparable](prim *MatrixPrimitive[V], allowDegen bool) (Stats, error) {
	return stripifyWith(prim, sequentialOrder, allowDegen)
}

// ToFanTriangles builds fans greedily, then stripifies any leftover
// triangle batch by racing the remaining algorithms (ToFanTriangles,
// RHSTOptimizer.cpp). This port omits the original's max_runs
// depth-limited pivot search; see DESIGN.md.
func ToFanTriangles[V comparable](prim *MatrixPrimitive[V], less Less[V]) (Stats, error) {
	start := time.Now()
	stats := Stats{BeforeIndices: VertexCount(*prim), BeforeFaces: FaceCount(*prim)}

	ib, err := BuildIndexBuffer(*prim)
	if err != nil {
		return Stats{}, err
	}
	tris := toTriangles(ib.IndexData)
	buf := walkFans(tris, sequentialOrder(tris))

	splitter := NewPrimitiveRestartSplitter[V](TriangleFan, ib.Vertices)
	splitter.SetIndices(buf)
	prim.Primitives = splitter.Primitives()

	// The splitter always appends any length-3 leftover runs as a single
	// trailing Triangles primitive; re-stripify it (racing every other
	// algorithm) instead of leaving it as loose triangles.
	if n := len(prim.Primitives); n > 0 && prim.Primitives[n-1].Topology == Triangles {
		tail := MatrixPrimitive[V]{DrawMatrices: prim.DrawMatrices, Primitives: []Primitive[V]{prim.Primitives[n-1]}}
		winner, _, err := StripifyTriangles(tail, less, AlgoRiiFans)
		if err == nil {
			prim.Primitives = prim.Primitives[:n-1]
			prim.Primitives = append(prim.Primitives, winner.Primitives...)
		}
	}

	stats.AfterIndices = VertexCount(*prim)
	stats.AfterFaces = FaceCount(*prim)
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// StripifyAlgo dispatches to the named algorithm (StripifyTrianglesAlgo).
func StripifyAlgo[V comparable](prim *MatrixPrimitive[V], algo Algo, less Less[V]) (Stats, error) {
	switch algo {
	case AlgoMeshOptimizer:
		return StripifyMeshOptimizer(prim)
	case AlgoTriStripper:
		return StripifyTriStripper(prim)
	case AlgoNvTriStripPort:
		return StripifyNvTriStripPort(prim)
	case AlgoHaroohie:
		return StripifyHaroohie(prim)
	case AlgoDraco:
		return StripifyDraco(prim, false)
	case AlgoDracoDegen:
		return StripifyDraco(prim, true)
	case AlgoRiiFans:
		return ToFanTriangles(prim, less)
	default:
		return Stats{}, fmt.Errorf("strip: invalid algorithm %v", algo)
	}
}

// StripifyTriangles brute-forces every enabled algorithm against prim
// and returns the winning encoding plus the algorithm that produced
// it (StripifyTriangles, RHSTOptimizer.cpp). except, if non-negative,
// is skipped (used by ToFanTriangles's recursive call on its leftover
// triangle batch to avoid re-entering RiiFans).
func StripifyTriangles[V comparable](baseline MatrixPrimitive[V], less Less[V], except Algo) (MatrixPrimitive[V], Algo, error) {
	holder := NewExperimentHolder[Algo, V](baseline, less)

	for algo := AlgoNvTriStripPort; algo <= AlgoRiiFans; algo++ {
		if algo == except {
			continue
		}
		if defaultDisabled(algo) {
			continue
		}
		exp := holder.CreateExperiment(algo)
		stats, err := StripifyAlgo(exp, algo, less)
		if err != nil {
			holder.CreateExperiment(algo) // reset: the failed attempt may have partially mutated exp
			holder.SetStats(algo, Stats{Comment: err.Error()})
			continue
		}
		if err := holder.ValidateExperimentWithBaseline(algo); err != nil {
			holder.CreateExperiment(algo) // reset to a fresh, valid baseline clone
			holder.SetStats(algo, Stats{Comment: err.Error()})
			continue
		}
		holder.SetStats(algo, stats)
	}

	winners := holder.CalcWinners()
	if len(winners) == 0 {
		return MatrixPrimitive[V]{}, 0, fmt.Errorf("strip: no algorithm produced a valid encoding")
	}
	return holder.GetFirstWinner(), winners[0], nil
}

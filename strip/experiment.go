package strip

import (
	"fmt"
	"time"
)

// Stats records one experiment's before/after facepoint and face
// counts plus timing, for the diagnostic table callers may print
// (MeshOptimizerStats, RHSTOptimizer.hpp).
type Stats struct {
	BeforeIndices int
	AfterIndices  int
	BeforeFaces   int
	AfterFaces    int
	Elapsed       time.Duration
	Comment       string
}

// ExperimentHolder races several encodings of the same baseline
// MatrixPrimitive, scored by vertex count, and validated against the
// baseline's canonical triangle set. Grounded on
// MeshOptimizerExperimentHolder<KeyT> (RHSTOptimizer.cpp). Experiment
// values are held by pointer, mirroring the original's comment that
// "unordered_map guarantees reference stability": CreateExperiment
// returns a pointer the caller mutates in place.
type ExperimentHolder[K comparable, V comparable] struct {
	baseline    MatrixPrimitive[V]
	less        Less[V]
	order       []K
	experiments map[K]*MatrixPrimitive[V]
	stats       map[K]Stats

	baselineTris    [][3]V
	baselineTrisSet bool
}

// NewExperimentHolder seeds a holder with the baseline encoding and a
// vertex ordering used for canonicalization.
func NewExperimentHolder[K comparable, V comparable](baseline MatrixPrimitive[V], less Less[V]) *ExperimentHolder[K, V] {
	return &ExperimentHolder[K, V]{
		baseline:    baseline,
		less:        less,
		experiments: make(map[K]*MatrixPrimitive[V]),
		stats:       make(map[K]Stats),
	}
}

// CreateExperiment clones the baseline under key and returns the
// clone for the caller to mutate in place.
func (h *ExperimentHolder[K, V]) CreateExperiment(key K) *MatrixPrimitive[V] {
	if _, ok := h.experiments[key]; !ok {
		h.order = append(h.order, key)
	}
	clone := h.baseline.Clone()
	h.experiments[key] = &clone
	return h.experiments[key]
}

// GetExperiment returns the experiment registered under key, or nil.
func (h *ExperimentHolder[K, V]) GetExperiment(key K) *MatrixPrimitive[V] {
	return h.experiments[key]
}

func (h *ExperimentHolder[K, V]) baselineTriangles() [][3]V {
	if !h.baselineTrisSet {
		h.baselineTris = canonicalTriangleSet(h.baseline, h.less)
		h.baselineTrisSet = true
	}
	return h.baselineTris
}

// ValidateExperimentWithBaseline reports whether the experiment under
// key preserves the baseline's canonical triangle multiset.
func (h *ExperimentHolder[K, V]) ValidateExperimentWithBaseline(key K) error {
	exp := h.experiments[key]
	ref := canonicalTriangleSet(*exp, h.less)
	base := h.baselineTriangles()
	if len(ref) != len(base) {
		return &validationError{key: key, msg: "triangle count mismatch"}
	}
	for i := range ref {
		if ref[i] != base[i] {
			return &validationError{key: key, msg: "triangle content mismatch"}
		}
	}
	return nil
}

// ValidateAllWithBaseline validates every registered experiment.
func (h *ExperimentHolder[K, V]) ValidateAllWithBaseline() error {
	for _, key := range h.order {
		if err := h.ValidateExperimentWithBaseline(key); err != nil {
			return err
		}
	}
	return nil
}

// SetStats records diagnostics for the experiment under key.
func (h *ExperimentHolder[K, V]) SetStats(key K, s Stats) { h.stats[key] = s }

// GetStats returns the diagnostics recorded for key, if any.
func (h *ExperimentHolder[K, V]) GetStats(key K) (Stats, bool) {
	s, ok := h.stats[key]
	return s, ok
}

// CalcWinners returns every key whose experiment achieves the lowest
// vertex count, in insertion order (the deterministic "algorithm enum
// order" tie-break, since callers register algorithms in a fixed
// enumeration order).
func (h *ExperimentHolder[K, V]) CalcWinners() []K {
	best := -1
	for _, key := range h.order {
		score := VertexCount(*h.experiments[key])
		if best == -1 || score < best {
			best = score
		}
	}
	var winners []K
	for _, key := range h.order {
		if VertexCount(*h.experiments[key]) == best {
			winners = append(winners, key)
		}
	}
	return winners
}

// GetFirstWinner returns the first (by enum order) best-scoring
// experiment.
func (h *ExperimentHolder[K, V]) GetFirstWinner() MatrixPrimitive[V] {
	winners := h.CalcWinners()
	return *h.experiments[winners[0]]
}

// GetFirstWinnerAlgo returns the key of the first best-scoring
// experiment.
func (h *ExperimentHolder[K, V]) GetFirstWinnerAlgo() K {
	winners := h.CalcWinners()
	return winners[0]
}

// BaselineScore is the baseline's vertex count.
func (h *ExperimentHolder[K, V]) BaselineScore() int { return VertexCount(h.baseline) }

// BaselineFaceCount is the baseline's face count, degenerates
// included.
func (h *ExperimentHolder[K, V]) BaselineFaceCount() int { return FaceCount(h.baseline) }

// Score pairs one experiment's key with its score and diagnostics,
// for tabulated reporting (PrintScoresOfExperiment).
type Score[K comparable] struct {
	Key   K
	Score int
	Stats Stats
	HasStats bool
}

// Scores reports every registered experiment's score, in insertion
// order.
func (h *ExperimentHolder[K, V]) Scores() []Score[K] {
	var out []Score[K]
	for _, key := range h.order {
		s, ok := h.stats[key]
		out = append(out, Score[K]{
			Key:      key,
			Score:    VertexCount(*h.experiments[key]),
			Stats:    s,
			HasStats: ok,
		})
	}
	return out
}

type validationError struct {
	key any
	msg string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("strip: experiment %v failed validation: %s", e.key, e.msg)
}

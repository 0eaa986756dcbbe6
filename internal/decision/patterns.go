package decision

import (
	"math"
	"sort"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

// #region pattern-key

// PatternKey quantizes a snapshot into a coarse state bucket. A composite
// integer key, compared structurally, so equality never depends on string
// formatting.
type PatternKey struct {
	TempBucket      int
	DensityBucket   int
	StabilityBucket int
}

// KeyFor is a pure function of the snapshot's quantized values.
func KeyFor(s plasma.Snapshot) PatternKey {
	return PatternKey{
		TempBucket:      int(s.Temperature / 1e7),
		DensityBucket:   int(s.Density / 1e19),
		StabilityBucket: int(math.Floor(s.Stability * 10)),
	}
}

// #endregion pattern-key

// #region pattern

// Pattern aggregates observations that quantize to the same bucket. The
// representative values track the last-seen snapshot, not a running average.
type Pattern struct {
	Key         PatternKey
	Temperature float64
	Density     float64
	Stability   float64
	FusionPower float64
	Count       int
	SuccessSum  float64 // accumulated binary success indicators
}

// AvgSuccess is the cumulative success score over the occurrence count.
func (p Pattern) AvgSuccess() float64 {
	if p.Count == 0 {
		return 0
	}
	return p.SuccessSum / float64(p.Count)
}

// #endregion pattern

// #region book

// Book holds learned patterns keyed by quantized state bucket. Buckets are
// created lazily and never deleted.
type Book struct {
	patterns map[PatternKey]*Pattern
}

// NewBook returns an empty pattern book.
func NewBook() *Book {
	return &Book{patterns: make(map[PatternKey]*Pattern)}
}

// Len returns the number of learned buckets.
func (b *Book) Len() int {
	return len(b.patterns)
}

// #endregion book

// #region observe

// Observe folds a snapshot into its bucket and returns the bucket key and
// this tick's binary success indicator (1 when stability > 0.5, else 0).
func (b *Book) Observe(s plasma.Snapshot) (PatternKey, float64) {
	key := KeyFor(s)

	var success float64
	if s.Stability > 0.5 {
		success = 1
	}

	p, ok := b.patterns[key]
	if !ok {
		p = &Pattern{Key: key}
		b.patterns[key] = p
	}
	p.Temperature = s.Temperature
	p.Density = s.Density
	p.Stability = s.Stability
	p.FusionPower = s.FusionPower
	p.Count++
	p.SuccessSum += success

	return key, success
}

// #endregion observe

// #region similarity

// Per-key weights; stability counts double.
const (
	weightStability = 2.0
	weightOther     = 1.0
	totalWeight     = weightStability + 3*weightOther
)

// keyMatches reports whether a current value is close to the pattern's value
// under the relative tolerance |cur-pat|/(pat+1) < 0.2.
func keyMatches(current, pattern float64) bool {
	return math.Abs(current-pattern)/(pattern+1) < 0.2
}

// similarity scores a snapshot against one pattern as matched weight over
// total weight.
func similarity(p *Pattern, s plasma.Snapshot) float64 {
	var matched float64
	if keyMatches(s.Temperature, p.Temperature) {
		matched += weightOther
	}
	if keyMatches(s.Density, p.Density) {
		matched += weightOther
	}
	if keyMatches(s.FusionPower, p.FusionPower) {
		matched += weightOther
	}
	if keyMatches(s.Stability, p.Stability) {
		matched += weightStability
	}
	return matched / totalWeight
}

// BestMatch returns the maximum similarity between the snapshot and any
// learned pattern. ok is false when no patterns exist yet.
func (b *Book) BestMatch(s plasma.Snapshot) (float64, bool) {
	if len(b.patterns) == 0 {
		return 0, false
	}
	var best float64
	for _, p := range b.patterns {
		if sim := similarity(p, s); sim > best {
			best = sim
		}
	}
	return best, true
}

// #endregion similarity

// #region ranked

// Ranked returns all patterns sorted descending by average success score.
func (b *Book) Ranked() []Pattern {
	out := make([]Pattern, 0, len(b.patterns))
	for _, p := range b.patterns {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AvgSuccess() > out[j].AvgSuccess()
	})
	return out
}

// #endregion ranked

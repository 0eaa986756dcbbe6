package decision

import (
	"testing"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

func TestKeyForIsDeterministic(t *testing.T) {
	s := plasma.Snapshot{Temperature: 8.7e7, Density: 6.2e19, Stability: 0.73}

	k1 := KeyFor(s)
	k2 := KeyFor(s)
	if k1 != k2 {
		t.Fatalf("key not deterministic: %+v vs %+v", k1, k2)
	}

	want := PatternKey{TempBucket: 8, DensityBucket: 6, StabilityBucket: 7}
	if k1 != want {
		t.Fatalf("key = %+v, want %+v", k1, want)
	}
}

func TestObserveAccumulatesSameBucket(t *testing.T) {
	b := NewBook()

	// Two snapshots quantizing to the same bucket.
	s1 := plasma.Snapshot{Temperature: 8.1e7, Density: 6.1e19, Stability: 0.71, FusionPower: 1e6}
	s2 := plasma.Snapshot{Temperature: 8.9e7, Density: 6.8e19, Stability: 0.79, FusionPower: 1.2e6}
	if KeyFor(s1) != KeyFor(s2) {
		t.Fatal("test snapshots must share a bucket")
	}

	k1, success1 := b.Observe(s1)
	k2, success2 := b.Observe(s2)

	if k1 != k2 {
		t.Fatalf("bucket keys differ: %+v vs %+v", k1, k2)
	}
	if success1 != 1 || success2 != 1 {
		t.Fatalf("success indicators = %v, %v, want 1, 1", success1, success2)
	}
	if b.Len() != 1 {
		t.Fatalf("book has %d buckets, want a single aggregate", b.Len())
	}

	p := b.Ranked()[0]
	if p.Count != 2 {
		t.Fatalf("count = %d, want 2", p.Count)
	}
	if p.SuccessSum != 2 {
		t.Fatalf("success sum = %v, want 2", p.SuccessSum)
	}
	// Representative values track the last-seen snapshot.
	if p.Temperature != s2.Temperature || p.Stability != s2.Stability {
		t.Fatalf("representative values not last-seen: %+v", p)
	}
}

func TestObserveBinarySuccessIndicator(t *testing.T) {
	b := NewBook()

	_, success := b.Observe(plasma.Snapshot{Stability: 0.5})
	if success != 0 {
		t.Fatalf("stability exactly 0.5 must not count as success, got %v", success)
	}
	_, success = b.Observe(plasma.Snapshot{Stability: 0.51})
	if success != 1 {
		t.Fatalf("stability 0.51 must count as success, got %v", success)
	}
}

func TestBestMatchIdenticalSnapshot(t *testing.T) {
	b := NewBook()
	s := plasma.Snapshot{Temperature: 8e7, Density: 6e19, Stability: 0.7, FusionPower: 1e6}
	b.Observe(s)

	sim, ok := b.BestMatch(s)
	if !ok {
		t.Fatal("expected a match against a non-empty book")
	}
	if sim != 1.0 {
		t.Fatalf("similarity = %v, want 1.0 for an identical snapshot", sim)
	}
}

func TestBestMatchEmptyBook(t *testing.T) {
	b := NewBook()
	if _, ok := b.BestMatch(plasma.Snapshot{}); ok {
		t.Fatal("empty book must report no match")
	}
}

func TestSimilarityStabilityWeightedDouble(t *testing.T) {
	p := &Pattern{
		Temperature: 1e7,
		Density:     5e19,
		Stability:   0.6,
		FusionPower: 1e6,
	}

	// Only stability within tolerance: |0.55-0.6|/1.6 = 0.031 < 0.2. The
	// other three keys are far off.
	s := plasma.Snapshot{Temperature: 9e7, Density: 1e18, Stability: 0.55, FusionPower: 9e9}
	if got := similarity(p, s); got != 2.0/5.0 {
		t.Fatalf("similarity = %v, want 0.4 (stability alone, double weight)", got)
	}

	// Only temperature within tolerance.
	s = plasma.Snapshot{Temperature: 1e7, Density: 1e18, Stability: 0.1, FusionPower: 9e9}
	if got := similarity(p, s); got != 1.0/5.0 {
		t.Fatalf("similarity = %v, want 0.2 (one single-weight key)", got)
	}
}

func TestRankedSortsByAverageSuccess(t *testing.T) {
	b := NewBook()

	weak := plasma.Snapshot{Temperature: 1e7, Density: 1e19, Stability: 0.2}
	strong := plasma.Snapshot{Temperature: 9e7, Density: 8e19, Stability: 0.9}

	b.Observe(weak)
	b.Observe(weak)
	b.Observe(strong)

	ranked := b.Ranked()
	if len(ranked) != 2 {
		t.Fatalf("ranked length = %d, want 2", len(ranked))
	}
	if ranked[0].Stability != 0.9 {
		t.Fatalf("best-ranked pattern has stability %v, want the successful bucket first", ranked[0].Stability)
	}
	if ranked[0].AvgSuccess() != 1.0 || ranked[1].AvgSuccess() != 0.0 {
		t.Fatalf("avg success = %v, %v, want 1.0, 0.0", ranked[0].AvgSuccess(), ranked[1].AvgSuccess())
	}
}

package art

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictBucketClampsToRange(t *testing.T) {
	n := &nodeLinear{a: 1000, b: 1000}
	assert.Equal(t, linearFanout-1, predictBucket(n, 255))

	n = &nodeLinear{a: -1000, b: -1000}
	assert.Equal(t, 0, predictBucket(n, 0))
}

func TestFitLinearSpreadsAcrossBuckets(t *testing.T) {
	// 100 distinct, evenly spaced byte values, one key each: a good fit
	// should spread predictions across most of the ten buckets rather
	// than collapsing everything into one or two.
	var samples []linearSample
	for i := 0; i < 100; i++ {
		samples = append(samples, linearSample{b: byte(i * 2), count: 1})
	}
	a, b := fitLinear(samples)

	seen := make(map[int]int)
	for _, s := range samples {
		n := &nodeLinear{a: a, b: b}
		seen[predictBucket(n, s.b)]++
	}
	assert.GreaterOrEqual(t, len(seen), 5, "fit should not collapse a spread-out histogram into a handful of buckets")
}

func TestFitLinearSingleDistinctByte(t *testing.T) {
	samples := []linearSample{{b: 42, count: 50}}
	a, b := fitLinear(samples)
	n := &nodeLinear{a: a, b: b}
	bucket := predictBucket(n, 42)
	assert.GreaterOrEqual(t, bucket, 0)
	assert.LessOrEqual(t, bucket, linearFanout-1)
}

func TestHistogramGroupsAdjacentEqualBytes(t *testing.T) {
	keys := [][8]byte{
		{0: 1},
		{0: 1},
		{0: 2},
	}
	samples := histogram(keys, 0)
	assert.Equal(t, []linearSample{{b: 1, count: 2}, {b: 2, count: 1}}, samples)
}

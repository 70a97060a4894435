package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/scsmith60/recipeclip/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSampleThrottle_FirstSightingSamples(t *testing.T) {
	t.Parallel()

	th := bloom.NewSampleThrottle(1000, 0.01)

	assert.True(t, th.ShouldSample("tiktok.com|state-blob"))
	assert.False(t, th.ShouldSample("tiktok.com|state-blob"))
	assert.False(t, th.ShouldSample("tiktok.com|state-blob"))

	// A different page shape on the same host is a new key.
	assert.True(t, th.ShouldSample("tiktok.com|bare"))
}

func TestSampleThrottle_EstimatedCount(t *testing.T) {
	t.Parallel()

	th := bloom.NewSampleThrottle(1000, 0.01)

	assert.Equal(t, uint(0), th.EstimatedCount())

	th.ShouldSample("a.com|jsonld-recipe")
	th.ShouldSample("b.com|microdata")
	th.ShouldSample("c.com|bare")

	count := th.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestSampleThrottle_ConcurrentUse(t *testing.T) {
	t.Parallel()

	th := bloom.NewSampleThrottle(10000, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				th.ShouldSample(fmt.Sprintf("host%d.com|shape%d", worker, j))
			}
		}(i)
	}
	wg.Wait()

	// Every key was distinct, so all should now be seen.
	assert.False(t, th.ShouldSample("host0.com|shape0"))
}

func TestSampleThrottle_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	// ShouldSample inserts every probed key, so size for the full run.
	th := bloom.NewSampleThrottle(numItems+testProbes, fpRate)

	for i := 0; i < numItems; i++ {
		th.ShouldSample(fmt.Sprintf("added%d.com|shape", i))
	}

	// Keys never seen should almost always be sampled.
	skipped := 0
	for i := 0; i < testProbes; i++ {
		if !th.ShouldSample(fmt.Sprintf("fresh%d.com|other", i)) {
			skipped++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(skipped) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

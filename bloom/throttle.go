// Package bloom provides probabilistic seen-before tracking for attempt
// logging.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/scsmith60/recipeclip"
)

var _ recipeclip.SampleThrottle = (*SampleThrottle)(nil)

// SampleThrottle decides whether a raw HTML sample is worth persisting with
// an import attempt. Samples exist to debug new page shapes, so only the
// first attempt per (host, fingerprint) pair keeps one; repeats are noise
// and bloat the attempt log. A Bloom filter keeps the memory cost flat no
// matter how many shapes pass through; a false positive merely skips one
// sample.
//
// SampleThrottle is safe for concurrent use.
type SampleThrottle struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewSampleThrottle creates a throttle sized for n expected (host,
// fingerprint) pairs with the given false positive rate.
func NewSampleThrottle(n uint, fpRate float64) *SampleThrottle {
	return &SampleThrottle{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// ShouldSample reports whether this key's sample should be kept, and marks
// the key as seen.
func (t *SampleThrottle) ShouldSample(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f.TestString(key) {
		return false
	}
	t.f.AddString(key)
	return true
}

// EstimatedCount returns the approximate number of distinct keys seen.
func (t *SampleThrottle) EstimatedCount() uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return uint(t.f.ApproximatedSize())
}

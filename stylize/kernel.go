package stylize

import (
	"math"
	"sync"
)

// gaussianKernel returns a normalized 1D Gaussian kernel with sigma equal
// to radius and 2*ceil(3*radius)+1 taps, covering three standard
// deviations. A radius <= 0 yields the identity kernel.
func gaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(radius * 3))
	kernel := make([]float32, 2*half+1)

	twoSigmaSq := 2 * radius * radius
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernelCache keeps Gaussian kernels keyed by radius in hundredths.
type kernelCache struct {
	mu     sync.RWMutex
	byKey  map[int][]float32
	maxLen int
}

var kernels = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{byKey: make(map[int][]float32), maxLen: maxLen}
}

func (c *kernelCache) get(radius float64) []float32 {
	key := int(radius * 100)

	c.mu.RLock()
	k, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	k = gaussianKernel(radius)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.byKey) >= c.maxLen {
		// Drop half the entries; map order makes the choice arbitrary.
		n := 0
		for key := range c.byKey {
			delete(c.byKey, key)
			if n++; n >= c.maxLen/2 {
				break
			}
		}
	}
	c.byKey[key] = k
	return k
}

package stylize

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

// KMeansInit selects how the starting centroids are picked.
type KMeansInit int

// Centroid initializations.
const (
	// RandomInit picks random pixels.
	RandomInit KMeansInit = iota

	// PlusPlusInit picks pixels with probability proportional to their
	// squared distance from the centroids chosen so far.
	PlusPlusInit
)

var kmeansInits = gfx.Choices[KMeansInit]{"Random", "K-Means++"}

func (i KMeansInit) String() string { return kmeansInits.Name(i) }

// ParseKMeansInit parses an initialization name.
func ParseKMeansInit(s string) (KMeansInit, error) { return kmeansInits.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *KMeansInit) UnmarshalYAML(node *yaml.Node) error {
	return kmeansInits.Unmarshal(node, i)
}

// KMeans quantizes an image to Clusters colors found by k-means
// clustering in RGB space. Alpha is kept. A cluster that loses all its
// pixels moves to black.
type KMeans struct {
	Clusters   int        `yaml:"clusters"`   // 2..128
	Iterations int        `yaml:"iterations"` // 1..100
	Init       KMeansInit `yaml:"init"`
	Seed       int64      `yaml:"seed"`
}

// NewKMeans returns an eight color quantizer.
func NewKMeans() *KMeans {
	return &KMeans{Clusters: 8, Iterations: 10, Init: PlusPlusInit}
}

// Transform implements gfx.Filter.
func (f *KMeans) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := kmeansInits.Check("init", f.Init); err != nil {
		return nil, err
	}
	k := lo.Clamp(f.Clusters, 2, 128)
	rng := gfx.NewRand(f.Seed)

	var centroids []uint32
	if f.Init == PlusPlusInit {
		centroids = plusPlusCentroids(src.Pix, k, rng)
	} else {
		centroids = randomCentroids(src.Pix, k, rng)
	}

	maxIter := lo.Clamp(f.Iterations, 1, 100)
	iter := 0
	for iter < maxIter {
		iter++
		next := recenter(src, centroids)
		if slices.Equal(next, centroids) {
			break
		}
		centroids = next
	}
	gfx.Logger().Debug("kmeans done", "clusters", k, "iterations", iter, "max", maxIter)

	out := gfx.Dest(src, dst)
	parallel.Rows(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dstRow := out.Row(y)
			for x, p := range src.Row(y) {
				c := centroids[nearest(p, centroids)]
				dstRow[x] = p&0xFF000000 | c&0xFFFFFF
			}
		}
	})
	return out, nil
}

func randomCentroids(pix []uint32, k int, rng *rand.Rand) []uint32 {
	c := make([]uint32, k)
	for i := range c {
		c[i] = pix[rng.IntN(len(pix))] & 0xFFFFFF
	}
	return c
}

func plusPlusCentroids(pix []uint32, k int, rng *rand.Rand) []uint32 {
	c := make([]uint32, 0, k)
	c = append(c, pix[rng.IntN(len(pix))]&0xFFFFFF)
	dist := make([]float64, len(pix))
	for len(c) < k {
		var total float64
		for j, p := range pix {
			d := float64(rgbDistance(p, c[nearest(p, c)]))
			dist[j] = d
			total += d
		}
		pick := pix[len(pix)-1]
		target := rng.Float64() * total
		for j, d := range dist {
			if target -= d; target <= 0 {
				pick = pix[j]
				break
			}
		}
		c = append(c, pick&0xFFFFFF)
	}
	return c
}

// clusterSums accumulates channel sums per cluster.
type clusterSums struct {
	r, g, b, n []int
}

func newClusterSums(k int) *clusterSums {
	return &clusterSums{
		r: make([]int, k), g: make([]int, k), b: make([]int, k), n: make([]int, k),
	}
}

// recenter assigns every pixel to its nearest centroid and returns the
// cluster means. Bands accumulate locally and merge under a mutex.
func recenter(src *gfx.Image, centroids []uint32) []uint32 {
	k := len(centroids)
	total := newClusterSums(k)
	var mu sync.Mutex
	parallel.Rows(src.Height, func(y0, y1 int) {
		local := newClusterSums(k)
		for _, p := range src.Pix[y0*src.Width : y1*src.Width] {
			i := nearest(p, centroids)
			local.r[i] += gfx.Red(p)
			local.g[i] += gfx.Green(p)
			local.b[i] += gfx.Blue(p)
			local.n[i]++
		}
		mu.Lock()
		for i := range k {
			total.r[i] += local.r[i]
			total.g[i] += local.g[i]
			total.b[i] += local.b[i]
			total.n[i] += local.n[i]
		}
		mu.Unlock()
	})

	next := make([]uint32, k)
	for i, n := range total.n {
		if n == 0 {
			continue
		}
		next[i] = gfx.Pack(0, total.r[i]/n, total.g[i]/n, total.b[i]/n)
	}
	return next
}

func nearest(p uint32, centroids []uint32) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, c := range centroids {
		if d := rgbDistance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func rgbDistance(a, b uint32) int {
	dr := gfx.Red(a) - gfx.Red(b)
	dg := gfx.Green(a) - gfx.Green(b)
	db := gfx.Blue(a) - gfx.Blue(b)
	return dr*dr + dg*dg + db*db
}

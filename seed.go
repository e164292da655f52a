package gfx

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// seed is the process-wide seed used by filters whose Seed field is zero.
var seed atomic.Int64

func init() {
	seed.Store(time.Now().UnixNano())
}

// Seed returns the current process-wide seed.
func Seed() int64 {
	return seed.Load()
}

// SetSeed replaces the process-wide seed.
func SetSeed(s int64) {
	seed.Store(s)
}

// Reseed picks a new random process-wide seed and returns it.
func Reseed() int64 {
	s := rand.Int64()
	seed.Store(s)
	return s
}

// ResolveSeed returns s, or the process-wide seed when s is zero.
func ResolveSeed(s int64) int64 {
	if s == 0 {
		return Seed()
	}
	return s
}

// NewRand returns a deterministic generator for the given seed.
// A zero seed is resolved through ResolveSeed first.
func NewRand(s int64) *rand.Rand {
	s = ResolveSeed(s)
	return rand.New(rand.NewPCG(uint64(s), uint64(s)^0x9E3779B97F4A7C15))
}

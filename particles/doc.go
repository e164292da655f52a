// Package particles renders effects driven by simulated particles and
// point distributions: flow fields, sphere mosaics and lightning.
//
// Simulations run on the calling goroutine because every step depends on
// the previous one; their randomness comes from the filter's Seed.
package particles

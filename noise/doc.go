// Package noise renders procedural noise textures: Perlin clouds, value
// noise, marble and organic (FastNoise-style) noise.
//
// The filters are generators. They use the source image only for its size
// and fill the destination completely. Output depends on the Seed field and
// the other parameters alone, so equal settings produce equal images.
package noise

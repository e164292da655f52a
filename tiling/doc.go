// Package tiling generates vector patterns that cover the image: Penrose
// kite and dart tilings, Truchet tiles, line grids and stripes.
//
// Every generator builds its shapes as paths first, so the same geometry
// is rasterized by Transform and written out by SVG.
package tiling

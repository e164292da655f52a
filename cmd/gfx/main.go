// Command gfx applies the gfx filters to image files.
//
// Usage:
//
//	gfx list --category tiling
//	gfx apply -f clouds --set scale=40 -W 800 -H 600 clouds.png
//	gfx apply -f kmeans --set clusters=6 photo.jpg poster.jpg
//	gfx run stained.yaml in/*.jpg -o out
//	gfx svg -f penrose --set generations=5 penrose.svg
//
// Settings may also come from a gfx.yaml file in the working directory;
// flags override it.
package main

import (
	"os"

	_ "github.com/gogpu/gfx/adjust"
	_ "github.com/gogpu/gfx/fractal"
	_ "github.com/gogpu/gfx/noise"
	_ "github.com/gogpu/gfx/particles"
	_ "github.com/gogpu/gfx/stylize"
	_ "github.com/gogpu/gfx/tiling"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/gogpu/gfx"
)

// loadImage decodes an image file, applying any EXIF orientation.
func loadImage(path string) (*gfx.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return gfx.FromImage(img), nil
}

// saveImage encodes m in the format named by the file extension,
// creating the parent directory when needed.
func (a *app) saveImage(m *gfx.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := imaging.Save(m.NRGBA(), path, imaging.JPEGQuality(a.cfg.JPEGQuality)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

//go:build purego || js

package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	sp "spectrometry/pkg/spectrometry"
)

func loadRaster(path string) (*sp.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w: %v", path, sp.ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w: %v", path, sp.ErrDecode, err)
	}

	return sp.NewRasterFromImage(img)
}

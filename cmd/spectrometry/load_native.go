//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	sp "spectrometry/pkg/spectrometry"
)

func loadRaster(path string) (*sp.Raster, error) {
	src := gocv.IMRead(path, gocv.IMReadColor)
	if src.Empty() {
		return nil, fmt.Errorf("could not load image %s: %w", path, sp.ErrDecode)
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()
	bgr := src.ToBytes()

	// OpenCV decodes to interleaved BGR; swap to RGB.
	pix := make([]uint8, len(bgr))
	for i := 0; i+2 < len(bgr); i += 3 {
		pix[i] = bgr[i+2]
		pix[i+1] = bgr[i+1]
		pix[i+2] = bgr[i]
	}

	return sp.NewRaster(pix, w, h)
}

package spectrometry

import (
	"fmt"
	"image"
)

// Raster is a decoded RGB image: height x width pixels, three 8-bit
// samples per pixel, stored row-major interleaved. It is never mutated
// after construction.
type Raster struct {
	pix    []uint8
	width  int
	height int
}

// NewRaster wraps interleaved RGB pixel data. The slice must hold exactly
// width*height*3 samples.
func NewRaster(pix []uint8, width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster %dx%d: %w", width, height, ErrInvalidImage)
	}
	if len(pix) != width*height*NumChannels {
		return nil, fmt.Errorf("raster %dx%d: pixel buffer has %d samples, want %d: %w",
			width, height, len(pix), width*height*NumChannels, ErrInvalidImage)
	}
	return &Raster{pix: pix, width: width, height: height}, nil
}

// NewRasterFromImage converts a decoded image to an RGB raster, collapsing
// any source color model to 8-bit RGB.
func NewRasterFromImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster %dx%d: %w", w, h, ErrInvalidImage)
	}

	pix := make([]uint8, w*h*NumChannels)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pix[i] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(b >> 8)
			i += NumChannels
		}
	}
	return &Raster{pix: pix, width: w, height: h}, nil
}

func (r *Raster) Width() int  { return r.width }
func (r *Raster) Height() int { return r.height }

// Sample returns the 8-bit sample at (row, col) for one channel.
func (r *Raster) Sample(row, col int, c Channel) uint8 {
	return r.pix[(row*r.width+col)*NumChannels+int(c)]
}

// RGB returns the three samples of the pixel at (row, col).
func (r *Raster) RGB(row, col int) (uint8, uint8, uint8) {
	off := (row*r.width + col) * NumChannels
	return r.pix[off], r.pix[off+1], r.pix[off+2]
}

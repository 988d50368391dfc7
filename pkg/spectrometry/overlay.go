package spectrometry

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderProfileOverlay draws the three channel profiles with annotated
// peaks into a JPG file.
func RenderProfileOverlay(res *Result, outputPath string) error {
	img, err := renderProfileImage(res)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// RenderProfileOverlayBytes draws the profile overlay and returns it as
// JPEG bytes.
func RenderProfileOverlayBytes(res *Result) ([]byte, error) {
	img, err := renderProfileImage(res)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var channelColors = [NumChannels]color.RGBA{
	ChannelRed:   {230, 60, 60, 255},
	ChannelGreen: {60, 200, 60, 255},
	ChannelBlue:  {80, 110, 255, 255},
}

var peakMarkerColors = [NumChannels]color.RGBA{
	ChannelRed:   {255, 160, 160, 255},
	ChannelGreen: {160, 255, 160, 255},
	ChannelBlue:  {170, 190, 255, 255},
}

// renderProfileImage creates the overlay image in memory.
func renderProfileImage(res *Result) (*image.RGBA, error) {
	if res == nil {
		return nil, fmt.Errorf("no analysis result to render")
	}
	n := len(res.Channels[ChannelRed].Profile)
	if n == 0 {
		return nil, fmt.Errorf("analysis result has empty profiles")
	}

	const (
		plotW  = 860
		plotH  = 340
		left   = 50
		top    = 20
		right  = 15
		bottom = 55
		maxAvg = 255.0
	)
	imgW := left + plotW + right
	imgH := top + plotH + bottom

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	// Black background
	for y := 0; y < imgH; y++ {
		for x := 0; x < imgW; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}

	toX := func(i int) int {
		if n == 1 {
			return left
		}
		return left + i*(plotW-1)/(n-1)
	}
	toY := func(v float64) int {
		if v < 0 {
			v = 0
		}
		if v > maxAvg {
			v = maxAvg
		}
		return top + int((maxAvg-v)/maxAvg*float64(plotH-1))
	}

	face := basicfont.Face7x13

	// Horizontal grid with intensity labels
	gridColor := color.RGBA{70, 70, 70, 255}
	labelColor := color.RGBA{180, 180, 180, 255}
	for _, v := range []float64{0, 64, 128, 192, 255} {
		y := toY(v)
		for x := left; x < left+plotW; x++ {
			img.Set(x, y, gridColor)
		}
		drawText(img, face, fmt.Sprintf("%3.0f", v), 8, y+4, labelColor)
	}

	// Profile traces
	for c := NumChannels - 1; c >= 0; c-- {
		profile := res.Channels[c].Profile
		for i := 1; i < len(profile); i++ {
			drawLine(img, toX(i-1), toY(profile[i-1]), toX(i), toY(profile[i]), channelColors[c])
		}
	}

	// Peak markers with index and wavelength annotations
	for c := 0; c < NumChannels; c++ {
		for _, pk := range res.Channels[c].Peaks {
			px, py := toX(pk.Index), toY(pk.Height)
			drawCircle(img, px, py, 3, peakMarkerColors[c])
			drawCenteredText(img, face, fmt.Sprintf("%d", pk.Index), px, py-8, peakMarkerColors[c])
			if pk.WavelengthOK {
				drawCenteredText(img, face, fmt.Sprintf("%.1fnm", pk.WavelengthNm), px, py-21, peakMarkerColors[c])
			}
		}
	}

	// Summary text at bottom
	summaryColor := color.RGBA{220, 220, 220, 255}
	summaryY := top + plotH + 18
	drawText(img, face, res.AxisLabel, left, summaryY, summaryColor)
	zeroStr := fmt.Sprintf("Zero order: %d", res.Geometry.ZeroOrderIndex)
	if res.ZeroOrderAutoDetected {
		zeroStr += " (auto)"
	}
	if !res.Geometry.Complete() {
		zeroStr += "  [GEOMETRY INCOMPLETE - WAVELENGTHS INDETERMINATE]"
	}
	drawText(img, face, zeroStr, left, summaryY+16, summaryColor)

	return img, nil
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws a string centered at (cx, cy).
func drawCenteredText(img *image.RGBA, face font.Face, s string, cx, cy int, c color.RGBA) {
	advance := font.MeasureString(face, s)
	x := cx - advance.Round()/2
	drawText(img, face, s, x, cy, c)
}

// drawCircle draws a circle outline using the midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, c)
		img.Set(cx+y, cy+x, c)
		img.Set(cx-y, cy+x, c)
		img.Set(cx-x, cy+y, c)
		img.Set(cx-x, cy-y, c)
		img.Set(cx-y, cy-x, c)
		img.Set(cx+y, cy-x, c)
		img.Set(cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

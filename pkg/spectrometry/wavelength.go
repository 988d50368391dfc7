package spectrometry

import (
	"fmt"
	"math"
)

// InstrumentGeometry is a snapshot of the spectrometer configuration used
// for one wavelength pass. The core never owns or persists it; the caller
// supplies a fresh copy per computation.
type InstrumentGeometry struct {
	// GratingSpacingM is the distance between adjacent grating lines, in
	// meters.
	GratingSpacingM float64

	// SensorDistanceM is the grating-to-sensor distance L, in meters.
	SensorDistanceM float64

	// PixelPitchM is the physical size of one pixel on the sensor, in
	// meters.
	PixelPitchM float64

	// ZeroOrderIndex is the pixel index of the undiffracted zero-order
	// line. Zero is a valid index.
	ZeroOrderIndex int

	// DiffractionOrder is m in the grating equation d*sin(theta) = m*lambda.
	// Must be a non-zero integer.
	DiffractionOrder int
}

// Complete reports whether every field required by WavelengthNm is usable.
func (g InstrumentGeometry) Complete() bool {
	return g.GratingSpacingM > 0 &&
		g.SensorDistanceM > 0 &&
		g.PixelPitchM > 0 &&
		g.DiffractionOrder != 0
}

func (g InstrumentGeometry) String() string {
	return fmt.Sprintf("{d=%gm, L=%gm, pitch=%gm, zeroOrder=%d, order=%d}",
		g.GratingSpacingM, g.SensorDistanceM, g.PixelPitchM, g.ZeroOrderIndex, g.DiffractionOrder)
}

// WavelengthNm converts a detected peak's pixel index into a wavelength in
// nanometers via the grating equation d*sin(theta) = m*lambda, where
// tan(theta) = y/L for the on-sensor distance y from the zero-order line.
//
// The two-argument arctangent keeps the computation well defined for any
// sign of y, and the sign is discarded in the returned magnitude: only the
// first-order magnitude is reported. A peak at the zero-order index yields
// exactly 0.
//
// WavelengthNm never fails. When the geometry is incomplete it returns
// ok=false and the wavelength is indeterminate.
func WavelengthNm(peakIndex int, g InstrumentGeometry) (float64, bool) {
	if !g.Complete() {
		return 0, false
	}

	yPixels := float64(peakIndex - g.ZeroOrderIndex)
	yMeters := yPixels * g.PixelPitchM
	theta := math.Atan2(yMeters, g.SensorDistanceM)
	wavelengthM := g.GratingSpacingM * math.Sin(theta) / float64(g.DiffractionOrder)
	return math.Abs(wavelengthM) * 1e9, true
}

// GratingSpacingFromLinesPerMM converts a grating's line density to its
// spacing d in meters. Returns ok=false for a non-positive density.
func GratingSpacingFromLinesPerMM(linesPerMM float64) (float64, bool) {
	if linesPerMM <= 0 {
		return 0, false
	}
	return 1.0 / (linesPerMM * 1000.0), true
}

// CalibratePixelPitch infers the physical pixel pitch from one known
// on-sensor distance between the zero-order line and a reference peak.
// The result feeds back into InstrumentGeometry.PixelPitchM for
// subsequent wavelength passes.
func CalibratePixelPitch(knownDistanceM float64, zeroOrderIndex, referencePeakIndex int) (float64, error) {
	if knownDistanceM <= 0 {
		return 0, fmt.Errorf("known distance %g m must be positive: %w", knownDistanceM, ErrInvalidCalibration)
	}
	delta := referencePeakIndex - zeroOrderIndex
	if delta < 0 {
		delta = -delta
	}
	if delta == 0 {
		return 0, fmt.Errorf("reference peak and zero-order line share pixel index %d: %w",
			zeroOrderIndex, ErrInvalidCalibration)
	}
	return knownDistanceM / float64(delta), nil
}

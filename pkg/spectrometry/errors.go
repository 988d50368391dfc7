package spectrometry

import "errors"

// Sentinel errors for the analysis pipeline. Callers are expected to test
// with errors.Is; all wrapping adds context with fmt.Errorf("...: %w", ...).
var (
	// ErrDecode is wrapped by the image loaders when a file cannot be
	// read or decoded into an RGB raster.
	ErrDecode = errors.New("image cannot be decoded")

	// ErrInvalidImage marks a decoded raster with zero width or height.
	ErrInvalidImage = errors.New("image has zero dimensions")

	// ErrInvalidParameter marks a non-positive count or distance supplied
	// to the slit locator or instrument geometry.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyBand marks a degenerate analysis band.
	ErrEmptyBand = errors.New("analysis band is empty")

	// ErrInvalidCalibration marks calibration inputs that would divide by
	// zero or use a non-positive known distance.
	ErrInvalidCalibration = errors.New("invalid calibration inputs")
)

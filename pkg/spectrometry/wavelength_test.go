package spectrometry

import (
	"errors"
	"math"
	"testing"
)

func testGeometry() InstrumentGeometry {
	return InstrumentGeometry{
		GratingSpacingM:  1.667e-6,
		SensorDistanceM:  0.1,
		PixelPitchM:      2e-6,
		ZeroOrderIndex:   200,
		DiffractionOrder: 1,
	}
}

func TestGratingSpacingFromLinesPerMM(t *testing.T) {
	d, ok := GratingSpacingFromLinesPerMM(600)
	if !ok {
		t.Fatal("expected ok for 600 lines/mm")
	}
	want := 1.0 / 600000.0 // ~1.667e-6 m
	if math.Abs(d-want) > 1e-15 {
		t.Errorf("d = %g, want %g", d, want)
	}

	for _, lines := range []float64{0, -600} {
		if _, ok := GratingSpacingFromLinesPerMM(lines); ok {
			t.Errorf("lines=%g: expected not ok", lines)
		}
	}
}

func TestWavelengthNmZeroOrderIsExactlyZero(t *testing.T) {
	geo := testGeometry()
	nm, ok := WavelengthNm(geo.ZeroOrderIndex, geo)
	if !ok {
		t.Fatal("expected determinate result")
	}
	if nm != 0.0 {
		t.Errorf("wavelength at zero order = %g, want exactly 0.0", nm)
	}
}

func TestWavelengthNmClosedForm(t *testing.T) {
	geo := testGeometry()

	nm, ok := WavelengthNm(300, geo)
	if !ok {
		t.Fatal("expected determinate result")
	}

	// y = 100 px * 2e-6 m = 2e-4 m; theta = atan2(2e-4, 0.1);
	// lambda = |1.667e-6 * sin(theta)| * 1e9 ~= 3.3339933 nm.
	if math.Abs(nm-3.3339933) > 1e-5 {
		t.Errorf("wavelength = %.7f nm, want ~3.3339933 nm", nm)
	}

	// The closed-form grating equation, computed independently.
	y := 100.0 * geo.PixelPitchM
	want := math.Abs(geo.GratingSpacingM*y/math.Hypot(y, geo.SensorDistanceM)) * 1e9
	if math.Abs(nm-want) > 1e-12 {
		t.Errorf("wavelength = %.12f nm, closed form gives %.12f nm", nm, want)
	}
}

func TestWavelengthNmSignDiscarded(t *testing.T) {
	geo := testGeometry()

	plus, ok1 := WavelengthNm(geo.ZeroOrderIndex+80, geo)
	minus, ok2 := WavelengthNm(geo.ZeroOrderIndex-80, geo)
	if !ok1 || !ok2 {
		t.Fatal("expected determinate results")
	}
	if plus != minus {
		t.Errorf("magnitudes differ: +side %g, -side %g", plus, minus)
	}
	if plus <= 0 {
		t.Errorf("wavelength = %g, want positive magnitude", plus)
	}
}

func TestWavelengthNmIndeterminateGeometry(t *testing.T) {
	base := testGeometry()

	tests := []struct {
		name   string
		mutate func(*InstrumentGeometry)
	}{
		{"zero grating spacing", func(g *InstrumentGeometry) { g.GratingSpacingM = 0 }},
		{"negative grating spacing", func(g *InstrumentGeometry) { g.GratingSpacingM = -1e-6 }},
		{"zero sensor distance", func(g *InstrumentGeometry) { g.SensorDistanceM = 0 }},
		{"zero pixel pitch", func(g *InstrumentGeometry) { g.PixelPitchM = 0 }},
		{"zero diffraction order", func(g *InstrumentGeometry) { g.DiffractionOrder = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := base
			tt.mutate(&geo)
			if _, ok := WavelengthNm(300, geo); ok {
				t.Error("expected indeterminate result")
			}
		})
	}

	// Zero-order index zero and negative diffraction orders stay valid.
	geo := base
	geo.ZeroOrderIndex = 0
	geo.DiffractionOrder = -1
	if _, ok := WavelengthNm(300, geo); !ok {
		t.Error("zeroOrderIndex=0, order=-1 must be determinate")
	}
}

func TestCalibratePixelPitch(t *testing.T) {
	pitch, err := CalibratePixelPitch(0.005, 200, 700)
	if err != nil {
		t.Fatalf("CalibratePixelPitch: %v", err)
	}
	if want := 1e-5; math.Abs(pitch-want) > 1e-18 {
		t.Errorf("pitch = %g, want %g", pitch, want)
	}

	// Direction of the reference peak does not matter.
	reversed, err := CalibratePixelPitch(0.005, 700, 200)
	if err != nil {
		t.Fatalf("CalibratePixelPitch reversed: %v", err)
	}
	if reversed != pitch {
		t.Errorf("reversed pitch = %g, want %g", reversed, pitch)
	}
}

func TestCalibratePixelPitchErrors(t *testing.T) {
	if _, err := CalibratePixelPitch(0, 100, 200); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("zero distance: got %v, want ErrInvalidCalibration", err)
	}
	if _, err := CalibratePixelPitch(-0.005, 100, 200); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("negative distance: got %v, want ErrInvalidCalibration", err)
	}
	if _, err := CalibratePixelPitch(0.005, 150, 150); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("equal indices: got %v, want ErrInvalidCalibration", err)
	}
}

func TestCalibrationWavelengthRoundTrip(t *testing.T) {
	// A pitch inferred from a known on-sensor distance must make the
	// wavelength at the reference peak equal the wavelength computed
	// from that distance directly.
	const (
		known   = 0.005 // m
		zeroIdx = 120
		refIdx  = 620
	)
	pitch, err := CalibratePixelPitch(known, zeroIdx, refIdx)
	if err != nil {
		t.Fatalf("CalibratePixelPitch: %v", err)
	}

	geo := testGeometry()
	geo.ZeroOrderIndex = zeroIdx
	geo.PixelPitchM = pitch

	got, ok := WavelengthNm(refIdx, geo)
	if !ok {
		t.Fatal("expected determinate result")
	}
	want := math.Abs(geo.GratingSpacingM*math.Sin(math.Atan2(known, geo.SensorDistanceM))) * 1e9
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("wavelength from calibrated pitch = %.9f nm, want %.9f nm", got, want)
	}
}

package spectrometry

import (
	"reflect"
	"testing"
)

// spectrumRaster builds a raster with a dominant white line at row 100
// (the zero order) and a weaker green line at row 140.
func spectrumRaster(t *testing.T) *Raster {
	t.Helper()
	return makeRaster(t, 20, 200, func(row, col int) (uint8, uint8, uint8) {
		switch row {
		case 100:
			return 250, 250, 250
		case 140:
			return 0, 180, 0
		default:
			return 0, 0, 0
		}
	})
}

func spectrumParams() Params {
	return Params{
		Peaks:         PeakParams{MinHeight: 2.5, MinDistance: 10},
		AutoZeroOrder: true,
	}
}

func TestAnalyzeAutoZeroOrder(t *testing.T) {
	raster := spectrumRaster(t)
	geo := testGeometry()
	geo.ZeroOrderIndex = 0

	res, err := Analyze(raster, RowStrategy{}, spectrumParams(), geo)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !res.ZeroOrderAutoDetected {
		t.Error("expected auto-detected zero order")
	}
	if res.Geometry.ZeroOrderIndex != 100 {
		t.Errorf("zero order = %d, want tallest peak at 100", res.Geometry.ZeroOrderIndex)
	}

	// The zero-order peak itself must measure exactly 0 nm.
	var zeroPeak *MeasuredPeak
	for i, pk := range res.Channels[ChannelRed].Peaks {
		if pk.Index == 100 {
			zeroPeak = &res.Channels[ChannelRed].Peaks[i]
		}
	}
	if zeroPeak == nil {
		t.Fatalf("red peaks %v missing the zero-order line", res.Channels[ChannelRed].Peaks)
	}
	if !zeroPeak.WavelengthOK || zeroPeak.WavelengthNm != 0.0 {
		t.Errorf("zero-order peak = %v, want determinate 0.0 nm", zeroPeak)
	}

	// The green line at 140 must carry a positive wavelength.
	var linePeak *MeasuredPeak
	for i, pk := range res.Channels[ChannelGreen].Peaks {
		if pk.Index == 140 {
			linePeak = &res.Channels[ChannelGreen].Peaks[i]
		}
	}
	if linePeak == nil {
		t.Fatalf("green peaks %v missing the line at 140", res.Channels[ChannelGreen].Peaks)
	}
	if !linePeak.WavelengthOK || linePeak.WavelengthNm <= 0 {
		t.Errorf("line peak = %v, want positive determinate wavelength", linePeak)
	}
}

func TestAnalyzeIncompleteGeometryDegradesGracefully(t *testing.T) {
	raster := spectrumRaster(t)

	res, err := Analyze(raster, RowStrategy{}, spectrumParams(), InstrumentGeometry{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	found := 0
	for _, ch := range res.Channels {
		for _, pk := range ch.Peaks {
			found++
			if pk.WavelengthOK {
				t.Errorf("peak %v: wavelength must be indeterminate with empty geometry", pk)
			}
		}
	}
	if found == 0 {
		t.Error("expected peaks despite missing geometry")
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	raster := spectrumRaster(t)
	params := spectrumParams()
	geo := testGeometry()

	first, err := Analyze(raster, RowStrategy{}, params, geo)
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := Analyze(raster, RowStrategy{}, params, geo)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs with identical inputs produced different results")
	}
}

func TestAnalyzeSlitBandPath(t *testing.T) {
	// A bright horizontal slit around row 30 with a vertical line at
	// column 50 standing out inside the band.
	raster := makeRaster(t, 120, 60, func(row, col int) (uint8, uint8, uint8) {
		if row < 28 || row > 32 {
			return 0, 0, 0
		}
		if col == 50 {
			return 255, 255, 255
		}
		return 40, 40, 40
	})

	params := Params{
		Peaks:         PeakParams{MinHeight: 2.5, MinDistance: 10},
		AutoZeroOrder: true,
	}
	res, err := Analyze(raster, SlitBandStrategy{SlitRows: 5, BandHeight: 11}, params, testGeometry())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.AxisLabel != ColumnAxisLabel {
		t.Errorf("axis label = %q, want %q", res.AxisLabel, ColumnAxisLabel)
	}
	if len(res.Channels[ChannelRed].Profile) != 120 {
		t.Errorf("profile length = %d, want width 120", len(res.Channels[ChannelRed].Profile))
	}
	if res.Geometry.ZeroOrderIndex != 50 {
		t.Errorf("auto zero order = %d, want column 50", res.Geometry.ZeroOrderIndex)
	}
}

func TestTallestPeakIndexEmpty(t *testing.T) {
	var none [NumChannels][]Peak
	if _, ok := TallestPeakIndex(none); ok {
		t.Error("expected no tallest peak for empty peak sets")
	}
}

func TestTallestPeakIndexAcrossChannels(t *testing.T) {
	var sets [NumChannels][]Peak
	sets[ChannelRed] = []Peak{{Index: 10, Height: 50}, {Index: 90, Height: 70}}
	sets[ChannelGreen] = []Peak{{Index: 40, Height: 220}}
	sets[ChannelBlue] = []Peak{{Index: 60, Height: 219.5}}

	idx, ok := TallestPeakIndex(sets)
	if !ok {
		t.Fatal("expected a tallest peak")
	}
	if idx != 40 {
		t.Errorf("tallest peak index = %d, want 40", idx)
	}
}

package spectrometry

import "gonum.org/v1/gonum/floats"

// Params configures one pipeline run.
type Params struct {
	// Peaks holds the detection thresholds applied to every channel.
	Peaks PeakParams

	// AutoZeroOrder replaces the geometry's zero-order index with the
	// pixel index of the globally tallest detected peak before the
	// wavelength pass.
	AutoZeroOrder bool
}

// DefaultParams returns the pipeline defaults used by the CLI.
func DefaultParams() Params {
	return Params{
		Peaks:         DefaultPeakParams(),
		AutoZeroOrder: true,
	}
}

// Analyze runs the full measurement pipeline on one raster: profile
// extraction via the given strategy, peak detection per channel, the
// optional zero-order auto-detection policy, and the wavelength pass.
//
// The run is synchronous and carries no state; repeated calls with the
// same inputs produce identical results.
func Analyze(r *Raster, strategy ExtractionStrategy, params Params, geo InstrumentGeometry) (*Result, error) {
	set, err := strategy.Extract(r)
	if err != nil {
		return nil, err
	}

	var peakSets [NumChannels][]Peak
	var metrics [NumChannels]DetectorMetrics
	for c := range set.Profiles {
		peakSets[c], metrics[c] = FindPeaks(set.Profiles[c], params.Peaks)
	}

	res := &Result{AxisLabel: set.AxisLabel}
	if params.AutoZeroOrder {
		if idx, ok := TallestPeakIndex(peakSets); ok {
			geo.ZeroOrderIndex = idx
			res.ZeroOrderAutoDetected = true
		}
	}
	res.Geometry = geo

	for c := range set.Profiles {
		measured := make([]MeasuredPeak, len(peakSets[c]))
		for i, pk := range peakSets[c] {
			nm, ok := WavelengthNm(pk.Index, geo)
			measured[i] = MeasuredPeak{Peak: pk, WavelengthNm: nm, WavelengthOK: ok}
		}
		res.Channels[c] = ChannelResult{
			Channel: Channel(c),
			Axis:    set.Axis,
			Profile: set.Profiles[c],
			Peaks:   measured,
			Metrics: metrics[c],
		}
	}
	return res, nil
}

// TallestPeakIndex returns the pixel index of the globally tallest peak
// across all channels, or ok=false when no channel detected any peak.
// This is the zero-order auto-detection policy: the undiffracted line is
// by far the brightest feature in a spectrometer photograph.
func TallestPeakIndex(peakSets [NumChannels][]Peak) (int, bool) {
	bestIdx := 0
	bestHeight := -1.0
	found := false
	for c := range peakSets {
		if len(peakSets[c]) == 0 {
			continue
		}
		heights := make([]float64, len(peakSets[c]))
		for i, pk := range peakSets[c] {
			heights[i] = pk.Height
		}
		tallest := floats.MaxIdx(heights)
		if heights[tallest] > bestHeight {
			bestHeight = heights[tallest]
			bestIdx = peakSets[c][tallest].Index
			found = true
		}
	}
	return bestIdx, found
}

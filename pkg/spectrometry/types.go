package spectrometry

import "fmt"

// Channel identifies one of the three color channels of a raster.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// NumChannels is the number of color channels in a decoded raster.
const NumChannels = 3

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// ChannelProfile is an ordered sequence of averaged intensity samples for
// one channel, indexed by row or by column depending on the extraction
// strategy that produced it. Values lie in [0, 255].
type ChannelProfile []float64

// Peak is a detected local maximum in a ChannelProfile.
type Peak struct {
	Index  int
	Height float64
}

func (p Peak) String() string {
	return fmt.Sprintf("{Index=%d, Height=%.3f}", p.Index, p.Height)
}

// MeasuredPeak is a Peak with the wavelength assigned by the instrument
// geometry. WavelengthOK is false when the geometry was incomplete and the
// wavelength is indeterminate.
type MeasuredPeak struct {
	Peak
	WavelengthNm float64
	WavelengthOK bool
}

func (p MeasuredPeak) String() string {
	if !p.WavelengthOK {
		return fmt.Sprintf("{Index=%d, Height=%.3f, Wavelength=indeterminate}", p.Index, p.Height)
	}
	return fmt.Sprintf("{Index=%d, Height=%.3f, Wavelength=%.2fnm}", p.Index, p.Height, p.WavelengthNm)
}

// PeakParams holds the thresholds for peak detection.
type PeakParams struct {
	// MinHeight is the minimum averaged intensity a local maximum must
	// reach to count as a spectral line.
	MinHeight float64

	// MinDistance is the minimum index separation between two surviving
	// peaks. When two candidates conflict the taller one wins.
	MinDistance int
}

// DefaultPeakParams returns the domain-tuned detection defaults. They suit
// typical spectrometer photographs and are meant to be overridden.
func DefaultPeakParams() PeakParams {
	return PeakParams{
		MinHeight:   2.5,
		MinDistance: 200,
	}
}

// DetectorMetrics tracks peak detection filtering statistics.
type DetectorMetrics struct {
	Candidates  int // strict local maxima found before filtering
	BelowHeight int // rejected by the height threshold
	TooClose    int // rejected by the minimum distance reduction
}

func (m DetectorMetrics) String() string {
	return fmt.Sprintf("{Candidates=%d, BelowHeight=%d, TooClose=%d}", m.Candidates, m.BelowHeight, m.TooClose)
}

// SlitSelection is the result of locating the illuminated slit rows.
type SlitSelection struct {
	// Rows are the selected brightest row indices, sorted ascending.
	Rows []int

	// Center is the truncated median of Rows.
	Center int

	// Clamped reports that the requested row count exceeded the image
	// height and every row was selected instead. Non-fatal.
	Clamped bool
}

// SlitBand is a contiguous range of rows [Start, End) centered on the slit.
type SlitBand struct {
	Start  int
	End    int
	Center int
}

// Height returns the number of rows in the band.
func (b SlitBand) Height() int { return b.End - b.Start }

func (b SlitBand) String() string {
	return fmt.Sprintf("{Start=%d, End=%d, Center=%d}", b.Start, b.End, b.Center)
}

// ProfileSet holds the three channel profiles produced by one extraction
// strategy, together with the index axis they are plotted against.
type ProfileSet struct {
	// Axis holds the row or column index for each profile sample.
	Axis []int

	// AxisLabel names the axis ("Row Index" or "Column Index").
	AxisLabel string

	// Profiles are the averaged intensity sequences, one per channel.
	Profiles [NumChannels]ChannelProfile

	// Band is the slit band the profiles were averaged over, or nil for
	// the whole-image row strategy.
	Band *SlitBand
}

// ChannelResult is the per-channel output of one pipeline run.
type ChannelResult struct {
	Channel Channel
	Axis    []int
	Profile ChannelProfile
	Peaks   []MeasuredPeak
	Metrics DetectorMetrics
}

// Result is the output of one full pipeline run.
type Result struct {
	Channels [NumChannels]ChannelResult

	// AxisLabel names the profile axis of every channel.
	AxisLabel string

	// Geometry is the snapshot actually used for the wavelength pass,
	// including an auto-detected zero-order index when that policy ran.
	Geometry InstrumentGeometry

	// ZeroOrderAutoDetected reports that the zero-order index in Geometry
	// came from the tallest-peak policy rather than the caller.
	ZeroOrderAutoDetected bool
}

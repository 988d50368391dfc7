package spectrometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	// RowAxisLabel names the profile axis of the whole-image strategy.
	RowAxisLabel = "Row Index"

	// ColumnAxisLabel names the profile axis of the slit-band strategy.
	ColumnAxisLabel = "Column Index"
)

// ExtractionStrategy converts a raster into per-channel intensity
// profiles. The two implementations profile along orthogonal axes but feed
// the same downstream peak and wavelength logic.
type ExtractionStrategy interface {
	Extract(r *Raster) (*ProfileSet, error)
}

// RowStrategy averages every full image row, producing profiles indexed by
// row. This is the primary extraction path for spectra dispersed
// vertically across the frame.
type RowStrategy struct{}

func (RowStrategy) Extract(r *Raster) (*ProfileSet, error) {
	return RowProfiles(r)
}

// SlitBandStrategy first locates the brightest slit rows, then averages
// the columns of a narrow band around the slit center, producing profiles
// indexed by column.
type SlitBandStrategy struct {
	// SlitRows is how many brightest rows locate the slit center.
	SlitRows int

	// BandHeight is the total height of the analysis band.
	BandHeight int
}

func (s SlitBandStrategy) Extract(r *Raster) (*ProfileSet, error) {
	sel, err := LocateSlit(r, s.SlitRows)
	if err != nil {
		return nil, err
	}
	return BandProfiles(r, sel.Center, s.BandHeight)
}

// RowProfiles computes the mean of each image row per channel. The
// returned profiles have length r.Height().
func RowProfiles(r *Raster) (*ProfileSet, error) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("row profiles on %dx%d raster: %w", w, h, ErrInvalidImage)
	}

	set := &ProfileSet{
		Axis:      indexAxis(h),
		AxisLabel: RowAxisLabel,
	}
	for c := range set.Profiles {
		set.Profiles[c] = make(ChannelProfile, h)
	}

	for row := 0; row < h; row++ {
		var sumR, sumG, sumB float64
		for col := 0; col < w; col++ {
			pr, pg, pb := r.RGB(row, col)
			sumR += float64(pr)
			sumG += float64(pg)
			sumB += float64(pb)
		}
		set.Profiles[ChannelRed][row] = sumR
		set.Profiles[ChannelGreen][row] = sumG
		set.Profiles[ChannelBlue][row] = sumB
	}
	for c := range set.Profiles {
		floats.Scale(1.0/float64(w), set.Profiles[c])
	}
	return set, nil
}

// BandProfiles computes the mean of each column per channel across the
// band of rows around center. The returned profiles have length
// r.Width(); the band itself is reported in the result.
func BandProfiles(r *Raster, center, bandHeight int) (*ProfileSet, error) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("band profiles on %dx%d raster: %w", w, h, ErrInvalidImage)
	}

	band, err := bandAround(center, bandHeight, h)
	if err != nil {
		return nil, err
	}

	set := &ProfileSet{
		Axis:      indexAxis(w),
		AxisLabel: ColumnAxisLabel,
		Band:      &band,
	}
	for c := range set.Profiles {
		set.Profiles[c] = make(ChannelProfile, w)
	}

	for row := band.Start; row < band.End; row++ {
		for col := 0; col < w; col++ {
			pr, pg, pb := r.RGB(row, col)
			set.Profiles[ChannelRed][col] += float64(pr)
			set.Profiles[ChannelGreen][col] += float64(pg)
			set.Profiles[ChannelBlue][col] += float64(pb)
		}
	}
	for c := range set.Profiles {
		floats.Scale(1.0/float64(band.Height()), set.Profiles[c])
	}
	return set, nil
}

// bandAround clamps a band of the requested height around center to the
// image rows. The band is re-centered against the boundaries rather than
// shrunk, unless the image itself is shorter than the requested height.
func bandAround(center, bandHeight, imageHeight int) (SlitBand, error) {
	start := center - bandHeight/2
	if start < 0 {
		start = 0
	}
	if start > imageHeight {
		start = imageHeight
	}
	end := start + bandHeight
	if end > imageHeight {
		end = imageHeight
	}
	if s := end - bandHeight; s > 0 {
		start = s
	} else {
		start = 0
	}

	if end-start <= 0 {
		return SlitBand{}, fmt.Errorf("band of height %d around row %d in %d rows: %w",
			bandHeight, center, imageHeight, ErrEmptyBand)
	}
	return SlitBand{Start: start, End: end, Center: center}, nil
}

func indexAxis(n int) []int {
	axis := make([]int, n)
	for i := range axis {
		axis[i] = i
	}
	return axis
}

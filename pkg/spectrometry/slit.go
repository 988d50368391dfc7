package spectrometry

import (
	"fmt"
	"sort"
)

// LocateSlit finds the k brightest rows of the raster (the illuminated
// slit / zero-order band) and their center row.
//
// Row brightness is the sum of all three channel samples over the row,
// accumulated in uint64 so large frames cannot overflow. Ties are broken
// deterministically by lower row index. If k exceeds the image height the
// selection is clamped to every row and Clamped is set; k <= 0 is an
// error.
//
// The center is the median of the selected row indices. For an even
// selection the two middle values are averaged and the result truncated
// toward zero, matching the lower-median convention the rest of the
// pipeline is aligned against.
func LocateSlit(r *Raster, k int) (SlitSelection, error) {
	if k <= 0 {
		return SlitSelection{}, fmt.Errorf("slit row count %d: %w", k, ErrInvalidParameter)
	}

	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return SlitSelection{}, fmt.Errorf("slit location on %dx%d raster: %w", w, h, ErrInvalidImage)
	}

	brightness := make([]uint64, h)
	for row := 0; row < h; row++ {
		var sum uint64
		for col := 0; col < w; col++ {
			pr, pg, pb := r.RGB(row, col)
			sum += uint64(pr) + uint64(pg) + uint64(pb)
		}
		brightness[row] = sum
	}

	sel := SlitSelection{}
	if k > h {
		k = h
		sel.Clamped = true
	}

	order := make([]int, h)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return brightness[order[i]] > brightness[order[j]]
	})

	rows := append([]int(nil), order[:k]...)
	sort.Ints(rows)

	sel.Rows = rows
	sel.Center = truncatedMedian(rows)
	return sel, nil
}

// truncatedMedian returns the median of a sorted, non-empty index slice.
// Even-sized slices average the two middle values and truncate toward
// zero.
func truncatedMedian(sorted []int) int {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return int((float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2.0)
}

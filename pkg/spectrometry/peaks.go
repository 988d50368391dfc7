package spectrometry

import "sort"

// FindPeaks detects spectral-line candidates in one intensity profile.
//
// A candidate is a strict local maximum: a sample greater than both
// immediate neighbors. A plateau of equal samples counts once and is
// reported at the first index of the run. Candidates below p.MinHeight
// are dropped, then the survivors are reduced so that no two peaks are
// closer than p.MinDistance, keeping the taller peak of any conflicting
// pair (ties keep the lower index). The result is sorted ascending by
// index.
//
// FindPeaks never fails; a profile shorter than three samples simply
// yields no peaks.
func FindPeaks(profile ChannelProfile, p PeakParams) ([]Peak, DetectorMetrics) {
	var metrics DetectorMetrics

	candidates := localMaxima(profile)
	metrics.Candidates = len(candidates)

	tall := candidates[:0]
	for _, c := range candidates {
		if c.Height >= p.MinHeight {
			tall = append(tall, c)
		}
	}
	metrics.BelowHeight = metrics.Candidates - len(tall)

	peaks := enforceDistance(tall, p.MinDistance)
	metrics.TooClose = len(tall) - len(peaks)
	return peaks, metrics
}

// localMaxima scans for strict local maxima, ascending by index.
func localMaxima(profile ChannelProfile) []Peak {
	n := len(profile)
	var peaks []Peak
	i := 1
	for i < n-1 {
		if profile[i] <= profile[i-1] {
			i++
			continue
		}
		// Extend across a flat run; the peak index is the run's start.
		j := i
		for j < n-1 && profile[j+1] == profile[i] {
			j++
		}
		if j < n-1 && profile[j+1] < profile[i] {
			peaks = append(peaks, Peak{Index: i, Height: profile[i]})
		}
		i = j + 1
	}
	return peaks
}

// enforceDistance drops peaks within minDistance of a taller peak.
// Processing tallest-first guarantees the higher of two conflicting
// candidates survives.
func enforceDistance(peaks []Peak, minDistance int) []Peak {
	if minDistance <= 1 || len(peaks) < 2 {
		return append([]Peak(nil), peaks...)
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return peaks[order[a]].Height > peaks[order[b]].Height
	})

	suppressed := make([]bool, len(peaks))
	for _, i := range order {
		if suppressed[i] {
			continue
		}
		for j := i - 1; j >= 0 && peaks[i].Index-peaks[j].Index < minDistance; j-- {
			suppressed[j] = true
		}
		for j := i + 1; j < len(peaks) && peaks[j].Index-peaks[i].Index < minDistance; j++ {
			suppressed[j] = true
		}
	}

	kept := make([]Peak, 0, len(peaks))
	for i, pk := range peaks {
		if !suppressed[i] {
			kept = append(kept, pk)
		}
	}
	return kept
}

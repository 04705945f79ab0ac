package dsp

import "math"

// NormalizedAutocorr computes the normalized autocorrelation of frame at
// the given lag: the overlapping product sum divided by the geometric mean
// of the two segment energies. Result is in [-1, 1]; 0 when the lag leaves
// no overlap or the frame is degenerate.
func NormalizedAutocorr(frame []float64, lag int) float64 {
	n := len(frame)
	if lag <= 0 || lag >= n {
		return 0
	}

	var cross, energy1, energy2 float64
	for i := 0; i < n-lag; i++ {
		cross += frame[i] * frame[i+lag]
		energy1 += frame[i] * frame[i]
		energy2 += frame[i+lag] * frame[i+lag]
	}

	denom := math.Sqrt(energy1 * energy2)
	if denom < EpsilonEnergy {
		return 0
	}
	return cross / denom
}

// BestLagInRange scans integer lags in [minLag, maxLag] and returns the
// lag with the maximum normalized autocorrelation, refined to sub-sample
// precision by parabolic interpolation over the neighboring correlations.
// Returns (0, 0) when no lag in range can be evaluated.
func BestLagInRange(frame []float64, minLag, maxLag int) (float64, float64) {
	n := len(frame)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if minLag > maxLag {
		return 0, 0
	}

	bestLag := -1
	bestCorr := math.Inf(-1)
	corrs := make([]float64, maxLag-minLag+1)
	for lag := minLag; lag <= maxLag; lag++ {
		c := NormalizedAutocorr(frame, lag)
		corrs[lag-minLag] = c
		if c > bestCorr {
			bestCorr = c
			bestLag = lag
		}
	}
	if bestLag < 0 {
		return 0, 0
	}

	refined := float64(bestLag)
	peak := bestCorr
	idx := bestLag - minLag
	if idx > 0 && idx < len(corrs)-1 {
		offset, value := ParabolicInterp(corrs[idx-1], corrs[idx], corrs[idx+1])
		refined += offset
		if value > peak {
			peak = value
		}
	}

	return refined, peak
}

// ParabolicInterp fits a parabola through three equally spaced samples
// centered on y2 and returns the vertex offset in [-1, 1] relative to the
// center plus the interpolated peak value.
func ParabolicInterp(y1, y2, y3 float64) (float64, float64) {
	a := (y1 - 2*y2 + y3) / 2.0
	b := (y3 - y1) / 2.0

	if math.Abs(a) < EpsilonDenominator {
		return 0, y2
	}

	offset := -b / (2 * a)
	if offset > 1 {
		offset = 1
	} else if offset < -1 {
		offset = -1
	}
	value := y2 - b*b/(4*a)
	return offset, value
}

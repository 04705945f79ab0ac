package dsp

// LinearSlope fits y = a + b*i over indices 0..n-1 by closed-form least
// squares and returns the slope b. Returns 0 for fewer than two points or
// a degenerate denominator.
func LinearSlope(y []float64) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom < EpsilonDenominator && denom > -EpsilonDenominator {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

package tremor

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// ComposeScore combines filtered RMS amplitude, oscillation frequency, and
// regularity into the 0-10 tremor score: a piecewise-linear amplitude
// score, multiplied by a frequency-band factor and a regularity boost,
// clamped and rounded to one decimal. Pure function; identical inputs
// always produce the identical rounded output.
func ComposeScore(amplitude, frequencyHz, regularity float64) float64 {
	raw := amplitudeScore(amplitude) * frequencyFactor(frequencyHz) * (1.0 + regularity*regularityBoostWeight)
	return dsp.RoundTo(dsp.Clamp(raw, 0, scoreMax), 1)
}

// ClassifySeverity maps a composite score to its display label.
func ClassifySeverity(score float64) string {
	switch {
	case score < labelCutoffMinimal:
		return LabelMinimal
	case score < labelCutoffMild:
		return LabelMild
	case score < labelCutoffModerate:
		return LabelModerate
	default:
		return LabelSevere
	}
}

// amplitudeScore maps filtered RMS amplitude onto 0-10 points. The curve
// rises steeply through faint tremor, then flattens so that very large
// amplitudes saturate instead of dominating the frequency and regularity
// terms.
func amplitudeScore(amplitude float64) float64 {
	switch {
	case amplitude < ampKneeFaint:
		return 4.0 * amplitude
	case amplitude < ampKneeModerate:
		return 2.0 + 2.0*(amplitude-ampKneeFaint)
	case amplitude < ampKneeStrong:
		return 5.0 + (amplitude - ampKneeModerate)
	default:
		return math.Min(scoreMax, 9.0+0.5*(amplitude-ampKneeStrong))
	}
}

// frequencyFactor weights the amplitude score by how characteristic the
// oscillation frequency is: full boost inside the 4-6 Hz band, partial in
// the broader 2-8 Hz band, none outside.
func frequencyFactor(frequencyHz float64) float64 {
	switch {
	case frequencyHz >= TremorBandLowHz && frequencyHz <= TremorBandHighHz:
		return frequencyFactorInBand
	case frequencyHz >= broadBandLowHz && frequencyHz <= broadBandHighHz:
		return frequencyFactorNearBand
	default:
		return 1.0
	}
}

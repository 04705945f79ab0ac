package voice

// RecommendRetake applies the capture-quality gates: too few recognized
// words, too few of the unique target words matched, or too many
// sub-metrics that could not be calculated. Any single failed gate
// recommends a retake.
func RecommendRetake(wordCount int, transcript string, metrics Metrics) bool {
	if wordCount < RetakeMinWordCount {
		return true
	}
	if MatchedUniqueTargets(transcript) < RetakeMinUniqueMatches {
		return true
	}
	return nilSeverityCount(metrics) >= RetakeMaxNilMetrics
}

func nilSeverityCount(metrics Metrics) int {
	count := 0
	for _, m := range []MetricResult{
		metrics.VOT,
		metrics.Transitions,
		metrics.Fatigue,
		metrics.Vowels,
		metrics.Steadiness,
	} {
		if m.Severity == nil {
			count++
		}
	}
	return count
}

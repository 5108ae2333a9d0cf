package prediction

import (
	"math"
	"strings"
)

const (
	trendWindow       = 5
	trendThreshold    = 2.0
	defaultTrendScore = 85.0
)

type trend struct {
	TrendAnalysis
	Score float64 // most recent percentage, used as the trend factor of the blend
}

// analyzeTrend characterises the direction of the last few assignments.
func analyzeTrend(previousGrades []float64, assignments []Assignment) trend {
	recent := assignments
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	if len(recent) < 2 {
		score := defaultTrendScore
		if len(previousGrades) > 0 {
			score = previousGrades[len(previousGrades)-1]
		}
		return trend{
			TrendAnalysis: TrendAnalysis{
				Direction:  Stable,
				Strength:   0,
				KeyFactors: []string{"Insufficient data for trend analysis"},
			},
			Score: score,
		}
	}

	scores := make([]float64, len(recent))
	for i, a := range recent {
		scores[i] = a.Percentage()
	}
	slope, _ := linearTrend(scores)

	t := trend{
		TrendAnalysis: TrendAnalysis{
			Direction: Stable,
			Strength:  math.Min(1, math.Abs(slope)/10),
		},
		Score: scores[len(scores)-1],
	}
	switch {
	case slope > trendThreshold:
		t.Direction = Improving
		t.KeyFactors = append(t.KeyFactors, "Recent assignment scores showing upward trend")
	case slope < -trendThreshold:
		t.Direction = Declining
		t.KeyFactors = append(t.KeyFactors, "Recent assignment scores showing downward trend")
	default:
		t.KeyFactors = append(t.KeyFactors, "Performance remains consistent")
	}

	var examSum float64
	var examCount int
	for _, a := range recent {
		if strings.Contains(strings.ToLower(a.Type), "exam") {
			examSum += a.Percentage()
			examCount++
		}
	}
	if examCount > 0 {
		examAvg := examSum / float64(examCount)
		if examAvg > 90 {
			t.KeyFactors = append(t.KeyFactors, "Strong exam performance")
		} else if examAvg < 70 {
			t.KeyFactors = append(t.KeyFactors, "Exam performance needs improvement")
		}
	}
	return t
}

// linearTrend fits y = slope*x + intercept over x = 0..n-1 by ordinary least squares.
func linearTrend(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	sumX := n * (n - 1) / 2
	sumXX := n * (n - 1) * (2*n - 1) / 6

	var sumY, sumXY float64
	for i, v := range values {
		sumY += v
		sumXY += v * float64(i)
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

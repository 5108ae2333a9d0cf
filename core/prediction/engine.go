// Package prediction implements the grade prediction engine: a fixed-formula scorer that turns a
// student's graded and upcoming work into a predicted final grade and the advice that goes with it.
//
// Every function in this package is pure. Nothing is cached or shared between calls.
package prediction

import (
	"math"

	"github.com/trezcool/alama/core"
)

// Blend weights; they sum to 1.
const (
	weightCurrentPerformance = 0.35
	weightTrend              = 0.25
	weightAttendance         = 0.15
	weightParticipation      = 0.10
	weightStudyHabits        = 0.10
	weightUpcoming           = 0.05
)

const (
	baseConfidence = 0.70
	maxConfidence  = 0.95
)

// Predict builds the full prediction report for `in`.
func Predict(in Input) Result {
	trend := analyzeTrend(in.PreviousGrades, in.Assignments)
	predicted := blend(in, trend)
	confidence := estimateConfidence(in, trend)
	// thresholds apply to the reported grade
	reported := core.Round(predicted, 2)

	return Result{
		PredictedFinalGrade:     reported,
		Confidence:              int(math.Round(confidence * 100)),
		LetterGrade:             LetterGrade(reported),
		ProbabilityDistribution: distribute(predicted, confidence),
		TrendAnalysis:           trend.TrendAnalysis,
		Scenarios:               scenarios(predicted, trend.Strength),
		Recommendations:         recommend(in, reported, trend.Direction),
		RiskFactors:             riskFactors(in, reported),
		Milestones:              milestones(in, reported),
	}
}

// blend combines every factor into one 0-100 percentage.
func blend(in Input, trend trend) float64 {
	base := CurrentPerformance(in)*weightCurrentPerformance +
		trend.Score*weightTrend +
		AttendanceImpact(in.Attendance)*weightAttendance +
		ParticipationImpact(in.ParticipationScore)*weightParticipation +
		StudyHabitsImpact(in.StudyHours)*weightStudyHabits +
		ForecastUpcoming(in).AverageScore*weightUpcoming

	return core.Clamp(base+momentum(trend.TrendAnalysis, in.TimeToFinals), 0, 100)
}

// momentum grows as finals get closer; improving trends are rewarded more than declining ones are punished.
func momentum(t TrendAnalysis, timeToFinals int) float64 {
	factor := math.Max(0.1, 1-float64(timeToFinals)/16)
	switch t.Direction {
	case Improving:
		return t.Strength * 5 * factor
	case Declining:
		return -t.Strength * 3 * factor
	}
	return 0
}

func estimateConfidence(in Input, trend trend) float64 {
	confidence := baseConfidence
	confidence += math.Min(0.2, float64(len(in.Assignments))*0.02)
	if trend.Direction == Stable {
		confidence += 0.1
	}
	if in.Attendance > 90 {
		confidence += 0.05
	}
	if in.TimeToFinals > 4 {
		confidence += 0.05
	}
	return math.Min(maxConfidence, confidence)
}

// scenarios brackets the prediction; a strong trend widens the optimistic side twice as much.
func scenarios(predicted, strength float64) Scenarios {
	const baseVariation = 5
	trendImpact := strength * 10
	return Scenarios{
		Optimistic:  math.Min(100, predicted+baseVariation+trendImpact),
		Realistic:   predicted,
		Pessimistic: math.Max(0, predicted-baseVariation-trendImpact*0.5),
	}
}

package prediction

import (
	"math"
	"strings"

	"github.com/trezcool/alama/core"
)

// gpaPercentage converts a 4.0-scale GPA to a percentage (4.0 ~ 100%).
func gpaPercentage(gpa float64) float64 {
	return gpa * 25
}

// CurrentPerformance is the weight-averaged percentage of all graded assignments.
// It falls back to the GPA heuristic when there is nothing (or no weight) to average.
// Bonus scores above 100% are not clamped.
func CurrentPerformance(in Input) float64 {
	if len(in.Assignments) == 0 {
		return gpaPercentage(in.CurrentGPA)
	}
	var weightedSum, totalWeight float64
	for _, a := range in.Assignments {
		weightedSum += a.Percentage() * a.Weight
		totalWeight += a.Weight
	}
	if totalWeight > 0 {
		return weightedSum / totalWeight
	}
	return gpaPercentage(in.CurrentGPA)
}

// AttendanceImpact has diminishing returns above 90%.
func AttendanceImpact(attendance float64) float64 {
	switch {
	case attendance >= 95:
		return 95
	case attendance >= 90:
		return 85 + (attendance-90)*2
	case attendance >= 80:
		return 70 + (attendance-80)*1.5
	}
	return math.Max(50, attendance*0.8)
}

func ParticipationImpact(participation float64) float64 {
	return math.Min(95, participation*0.9+10)
}

// StudyHabitsImpact peaks at 10-15 hours per week.
func StudyHabitsImpact(hours float64) float64 {
	switch {
	case hours >= 10 && hours <= 15:
		return 90
	case hours >= 8:
		return 85
	case hours >= 5:
		return 75
	}
	return math.Max(60, 60+hours*2)
}

// ForecastUpcoming estimates a score for every upcoming assignment from the GPA,
// the student's history on the same assignment type and the assignment difficulty.
func ForecastUpcoming(in Input) Forecast {
	fc := Forecast{
		AverageScore: gpaPercentage(in.CurrentGPA),
		Predictions:  make([]AssignmentForecast, 0, len(in.UpcomingAssignments)),
	}
	if len(in.UpcomingAssignments) == 0 {
		return fc
	}

	var sum float64
	for _, ua := range in.UpcomingAssignments {
		difficultyAdjustment := (5 - ua.Difficulty) * 2 // easier = higher score
		score := gpaPercentage(in.CurrentGPA)*typeMultiplier(ua.Type, in.Assignments) + difficultyAdjustment
		score = math.Round(core.Clamp(score, 0, 100))

		fc.Predictions = append(fc.Predictions, AssignmentForecast{Assignment: ua.Name, PredictedScore: score})
		sum += score
	}
	fc.AverageScore = sum / float64(len(fc.Predictions))
	return fc
}

// typeMultiplier is the mean fractional score on past assignments of the same type (1 when there are none).
func typeMultiplier(typ string, past []Assignment) float64 {
	var sum float64
	var count int
	for _, a := range past {
		if strings.EqualFold(a.Type, typ) {
			sum += a.Fraction()
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return sum / float64(count)
}

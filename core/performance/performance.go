// Package performance is the advisor dashboard's GPA-scale outlook: a weighted
// blend of the current GPA and engagement metrics, nudged by the grade trend.
package performance

import (
	"github.com/trezcool/alama/core"
)

const (
	gpaWeight           = 0.35
	attendanceWeight    = 0.20
	completionWeight    = 0.20
	participationWeight = 0.15
	behaviorWeight      = 0.10
	trendWeight         = 0.10

	maxGPA = 4.0
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Snapshot holds a student's current metrics. Percentages are on a 0-100 scale.
type Snapshot struct {
	CurrentGPA           float64   `json:"current_gpa" validate:"gte=0,lte=4"`
	Attendance           float64   `json:"attendance" validate:"gte=0,lte=100"`
	AssignmentCompletion float64   `json:"assignment_completion" validate:"gte=0,lte=100"`
	Participation        float64   `json:"participation" validate:"gte=0,lte=100"`
	PreviousGrades       []float64 `json:"previous_grades" validate:"dive,gte=0"`
	BehaviorScore        float64   `json:"behavior_score" validate:"gte=0,lte=100"`
}

type Outlook struct {
	PredictedGPA    float64   `json:"predicted_gpa"`
	Confidence      int       `json:"confidence"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
}

// Predict computes the outlook for `s`.
func Predict(s Snapshot) Outlook {
	gpa := s.CurrentGPA*gpaWeight +
		scale(s.Attendance)*attendanceWeight +
		scale(s.AssignmentCompletion)*completionWeight +
		scale(s.Participation)*participationWeight +
		scale(s.BehaviorScore)*behaviorWeight
	gpa += Trend(s.PreviousGrades) * trendWeight
	gpa = core.Clamp(gpa, 0, maxGPA)

	risk := riskLevel(gpa, s)
	return Outlook{
		PredictedGPA:    core.Round(gpa, 2),
		Confidence:      confidence(s),
		RiskLevel:       risk,
		Factors:         factors(s),
		Recommendations: recommendations(s, risk),
	}
}

// scale maps a percentage to the 4.0 scale.
func scale(pct float64) float64 {
	return pct / 100 * maxGPA
}

// Trend is the mean of the last three grades minus the mean of the earlier ones.
// With three grades or fewer the first grade is the baseline.
func Trend(grades []float64) float64 {
	if len(grades) < 2 {
		return 0
	}
	split := len(grades) - 3
	if split < 0 {
		split = 0
	}
	recent, earlier := grades[split:], grades[:split]
	if len(earlier) == 0 {
		earlier = grades[:1]
	}
	return mean(recent) - mean(earlier)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func confidence(s Snapshot) int {
	c := 85
	if s.Attendance < 80 {
		c -= 10
	}
	if s.AssignmentCompletion < 70 {
		c -= 10
	}
	if len(s.PreviousGrades) < 5 {
		c -= 5
	}
	if s.CurrentGPA > 3.5 && s.Attendance > 90 {
		c += 5
	}
	return int(core.Clamp(float64(c), 60, 95))
}

func riskLevel(gpa float64, s Snapshot) RiskLevel {
	switch {
	case gpa < 2.0 || s.Attendance < 75:
		return RiskHigh
	case gpa < 2.5 || s.Attendance < 85:
		return RiskMedium
	}
	return RiskLow
}

func factors(s Snapshot) []string {
	var fs []string
	if s.Attendance < 85 {
		fs = append(fs, "Low attendance rate")
	}
	if s.AssignmentCompletion < 80 {
		fs = append(fs, "Incomplete assignments")
	}
	if s.Participation < 70 {
		fs = append(fs, "Limited class participation")
	}
	if s.CurrentGPA < 2.5 {
		fs = append(fs, "Below-average current GPA")
	}
	if s.BehaviorScore < 75 {
		fs = append(fs, "Behavioral concerns")
	}
	if len(fs) == 0 {
		fs = append(fs, "Strong overall performance")
	}
	return fs
}

func recommendations(s Snapshot, risk RiskLevel) []string {
	var recs []string
	if risk == RiskHigh {
		recs = append(recs,
			"Schedule immediate intervention meeting",
			"Assign academic mentor or tutor",
			"Develop personalized learning plan",
		)
	}
	if s.Attendance < 85 {
		recs = append(recs, "Address attendance issues with family", "Identify barriers to regular attendance")
	}
	if s.AssignmentCompletion < 80 {
		recs = append(recs, "Implement assignment tracking system", "Provide additional homework support")
	}
	if s.Participation < 70 {
		recs = append(recs, "Encourage active class participation", "Consider alternative engagement strategies")
	}
	if len(recs) == 0 {
		recs = append(recs, "Continue current successful strategies", "Consider advanced placement opportunities")
	}
	return recs
}

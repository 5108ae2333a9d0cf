// Package grading holds the registry side of grades: grade points, CGPA and
// the checks run on uploaded result sheets.
package grading

import (
	"github.com/shopspring/decimal"

	"github.com/trezcool/alama/core/prediction"
)

var gradePoints = map[string]decimal.Decimal{
	prediction.GradeAPlus:  decimal.NewFromInt(4),
	prediction.GradeA:      decimal.NewFromInt(4),
	prediction.GradeAMinus: decimal.RequireFromString("3.7"),
	prediction.GradeBPlus:  decimal.RequireFromString("3.3"),
	prediction.GradeB:      decimal.NewFromInt(3),
	prediction.GradeBMinus: decimal.RequireFromString("2.7"),
	prediction.GradeCPlus:  decimal.RequireFromString("2.3"),
	prediction.GradeC:      decimal.NewFromInt(2),
	prediction.GradeCMinus: decimal.RequireFromString("1.7"),
	prediction.GradeD:      decimal.NewFromInt(1),
	prediction.GradeF:      decimal.Zero,
}

// GradePoints returns the 4.0-scale points for `letter`.
func GradePoints(letter string) (decimal.Decimal, bool) {
	gp, ok := gradePoints[letter]
	return gp, ok
}

// CourseResult is a completed course on a transcript.
type CourseResult struct {
	Code    string          `json:"code" validate:"required"`
	Credits decimal.Decimal `json:"credits"`
	Grade   string          `json:"grade" validate:"required,lettergrade"`
}

// Transcript is the set of courses a CGPA is computed over.
type Transcript struct {
	Courses []CourseResult `json:"courses" validate:"required,dive"`
}

type Summary struct {
	CGPA             decimal.Decimal `json:"cgpa"`
	CreditsAttempted decimal.Decimal `json:"credits_attempted"`
	CreditsEarned    decimal.Decimal `json:"credits_earned"`
	QualityPoints    decimal.Decimal `json:"quality_points"`
}

// ComputeCGPA returns the credit-weighted grade point average of `courses`, rounded to 2 places.
// Courses with an unknown grade or non-positive credits are ignored.
func ComputeCGPA(courses []CourseResult) Summary {
	sum := Summary{
		CGPA:             decimal.Zero,
		CreditsAttempted: decimal.Zero,
		CreditsEarned:    decimal.Zero,
		QualityPoints:    decimal.Zero,
	}
	for _, c := range courses {
		gp, ok := GradePoints(c.Grade)
		if !ok || !c.Credits.IsPositive() {
			continue
		}
		sum.CreditsAttempted = sum.CreditsAttempted.Add(c.Credits)
		sum.QualityPoints = sum.QualityPoints.Add(gp.Mul(c.Credits))
		if c.Grade != prediction.GradeF {
			sum.CreditsEarned = sum.CreditsEarned.Add(c.Credits)
		}
	}
	if sum.CreditsAttempted.IsPositive() {
		sum.CGPA = sum.QualityPoints.Div(sum.CreditsAttempted).Round(2)
	}
	return sum
}

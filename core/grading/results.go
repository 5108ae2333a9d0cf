package grading

import (
	"fmt"

	"github.com/trezcool/alama/core/prediction"
)

const defaultMaxScore = 100

// ResultRow is one line of a lecturer's result upload.
// Scores are pointers so that a missing score can be told apart from a zero.
type ResultRow struct {
	StudentID   string   `json:"student_id"`
	Assignment  string   `json:"assignment"`
	CAScore     *float64 `json:"ca_score"`
	ExamScore   *float64 `json:"exam_score"`
	TotalScore  *float64 `json:"total_score"`
	MaxScore    float64  `json:"max_score"`
	Percentage  float64  `json:"percentage"`
	LetterGrade string   `json:"letter_grade"`
}

func (r ResultRow) maxScore() float64 {
	if r.MaxScore > 0 {
		return r.MaxScore
	}
	return defaultMaxScore
}

// RowError locates a problem in an upload. Row is 1-based.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// ValidateResults checks every row and returns the problems found, in row order.
func ValidateResults(rows []ResultRow) []RowError {
	errs := make([]RowError, 0)
	for i, r := range rows {
		row := i + 1
		if r.StudentID == "" {
			errs = append(errs, RowError{Row: row, Field: "student_id", Message: "Student ID is required"})
		}
		if r.CAScore == nil {
			errs = append(errs, RowError{Row: row, Field: "ca_score", Message: "CA score is required"})
		}
		if r.ExamScore == nil {
			errs = append(errs, RowError{Row: row, Field: "exam_score", Message: "Exam score is required"})
		}
		if r.TotalScore == nil {
			errs = append(errs, RowError{Row: row, Field: "total_score", Message: "Score is required"})
		} else if limit := r.maxScore(); *r.TotalScore < 0 || *r.TotalScore > limit {
			errs = append(errs, RowError{
				Row:     row,
				Field:   "total_score",
				Message: fmt.Sprintf("Score must be between 0 and %g", limit),
			})
		}
	}
	return errs
}

// AutoFix returns a copy of `rows` with totals brought into [0, max] and placeholders
// for missing student IDs and assignment names. Percentage and letter grade are recomputed.
// Missing scores cannot be fixed and are left alone.
func AutoFix(rows []ResultRow) []ResultRow {
	fixed := make([]ResultRow, len(rows))
	for i, r := range rows {
		limit := r.maxScore()
		if r.TotalScore != nil {
			total := *r.TotalScore
			if total > limit {
				total = limit
			}
			if total < 0 {
				total = 0
			}
			r.TotalScore = &total
			r.Percentage = total / limit * 100
			r.LetterGrade = prediction.LetterGrade(r.Percentage)
		}
		if r.StudentID == "" {
			r.StudentID = fmt.Sprintf("STU%03d", i+1)
		}
		if r.Assignment == "" {
			r.Assignment = fmt.Sprintf("Assignment %d", i+1)
		}
		fixed[i] = r
	}
	return fixed
}

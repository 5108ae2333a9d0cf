package grading

import (
	"reflect"
	"testing"
)

func score(f float64) *float64 {
	return &f
}

func TestValidateResults(t *testing.T) {
	rows := []ResultRow{
		{StudentID: "STU100", Assignment: "Midterm", CAScore: score(20), ExamScore: score(50), TotalScore: score(70)},
		{CAScore: score(0), ExamScore: score(0), TotalScore: score(0)},
		{StudentID: "STU102", TotalScore: score(120)},
		{StudentID: "STU103", CAScore: score(10), ExamScore: score(30), MaxScore: 50},
		{StudentID: "STU104", CAScore: score(10), ExamScore: score(30), TotalScore: score(-1), MaxScore: 50},
	}

	got := ValidateResults(rows)
	want := []RowError{
		{Row: 2, Field: "student_id", Message: "Student ID is required"},
		{Row: 3, Field: "ca_score", Message: "CA score is required"},
		{Row: 3, Field: "exam_score", Message: "Exam score is required"},
		{Row: 3, Field: "total_score", Message: "Score must be between 0 and 100"},
		{Row: 4, Field: "total_score", Message: "Score is required"},
		{Row: 5, Field: "total_score", Message: "Score must be between 0 and 50"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidateResults() =\n%+v\nwant\n%+v", got, want)
	}

	if errs := ValidateResults(rows[:1]); len(errs) != 0 {
		t.Errorf("ValidateResults() = %+v; want none", errs)
	}
}

func TestRowError_Error(t *testing.T) {
	err := RowError{Row: 3, Field: "ca_score", Message: "CA score is required"}
	if got, want := err.Error(), "row 3: ca_score: CA score is required"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}

func TestAutoFix(t *testing.T) {
	rows := []ResultRow{
		{StudentID: "STU100", Assignment: "Midterm", CAScore: score(20), ExamScore: score(50), TotalScore: score(70)},
		{TotalScore: score(130)},
		{StudentID: "STU102", Assignment: "Quiz", TotalScore: score(-4), MaxScore: 20},
		{StudentID: "STU103", Assignment: "Lab"},
	}

	got := AutoFix(rows)
	want := []ResultRow{
		{StudentID: "STU100", Assignment: "Midterm", CAScore: score(20), ExamScore: score(50), TotalScore: score(70),
			Percentage: 70, LetterGrade: "C-"},
		{StudentID: "STU002", Assignment: "Assignment 2", TotalScore: score(100), Percentage: 100, LetterGrade: "A+"},
		{StudentID: "STU102", Assignment: "Quiz", TotalScore: score(0), MaxScore: 20, Percentage: 0, LetterGrade: "F"},
		{StudentID: "STU103", Assignment: "Lab"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoFix() =\n%+v\nwant\n%+v", got, want)
	}

	if *rows[1].TotalScore != 130 || rows[1].StudentID != "" {
		t.Errorf("AutoFix() modified its input: %+v", rows[1])
	}
}

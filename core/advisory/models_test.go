package advisory_test

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/prediction"
	"github.com/trezcool/alama/tests"
)

func TestQueryFilter_Clean(t *testing.T) {
	qf := advisory.QueryFilter{StudentID: " STU001 ", Subject: "\tMaths ", LetterGrades: []string{"a", " B+", "E", "f"}}
	qf.Clean()

	want := advisory.QueryFilter{StudentID: "STU001", Subject: "Maths", LetterGrades: []string{"A", "B+", "F"}}
	if !reflect.DeepEqual(qf, want) {
		t.Errorf("Clean() = %+v; want %+v", qf, want)
	}
	if qf.IsEmpty() {
		t.Error("IsEmpty() = true; want false")
	}

	empty := advisory.QueryFilter{LetterGrades: []string{"Z"}}
	empty.Clean()
	if !empty.IsEmpty() {
		t.Errorf("IsEmpty() = false for %+v; want true", empty)
	}
}

func TestCleanOrdering(t *testing.T) {
	tests := []struct {
		name string
		in   []core.DBOrdering
		want []core.DBOrdering
	}{
		{name: "default", want: []core.DBOrdering{{Field: advisory.OrderCreatedAt}}},
		{name: "unknown only", in: []core.DBOrdering{{Field: "id; DROP TABLE prediction"}}, want: []core.DBOrdering{{Field: advisory.OrderCreatedAt}}},
		{
			name: "keeps known",
			in:   []core.DBOrdering{{Field: advisory.OrderConfidence, Ascending: true}, {Field: "input"}, {Field: advisory.OrderSubject}},
			want: []core.DBOrdering{{Field: advisory.OrderConfidence, Ascending: true}, {Field: advisory.OrderSubject}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := advisory.CleanOrdering(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanOrdering() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewPrediction_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	np := advisory.NewPrediction{StudentID: "  STU001 ", Subject: " Maths", Input: testutil.SampleInput()}
	if err := np.Validate(validate); err != nil {
		t.Fatalf("Validate() = %v; want nil", err)
	}
	if np.StudentID != "STU001" || np.Subject != "Maths" {
		t.Errorf("Validate() did not clean: %q, %q", np.StudentID, np.Subject)
	}

	bad := advisory.NewPrediction{Subject: "Maths", Input: testutil.SampleInput()}
	bad.Input.Attendance = 120
	err := bad.Validate(validate)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Validate() = %v; want validator.ValidationErrors", err)
	}
	got := make(map[string]string)
	for _, fe := range verrs {
		got[fe.Field()] = fe.Translate(translator)
	}
	want := map[string]string{
		"student_id": "this field is required",
		"attendance": "attendance must be 100 or less",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() errors = %v; want %v", got, want)
	}
}

func TestRecord_AtRisk(t *testing.T) {
	tests := []struct {
		name string
		rec  advisory.Record
		want bool
	}{
		{name: "no risks", rec: advisory.Record{LetterGrade: prediction.GradeB}},
		{
			name: "other risks only",
			rec: advisory.Record{LetterGrade: prediction.GradeD, Result: prediction.Result{
				RiskFactors: []string{"Poor attendance affecting learning continuity"},
			}},
		},
		{
			name: "failing",
			rec: advisory.Record{LetterGrade: prediction.GradeF, Result: prediction.Result{
				RiskFactors: []string{prediction.RiskFailing},
			}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.AtRisk(); got != tt.want {
				t.Errorf("AtRisk() = %t; want %t", got, tt.want)
			}
		})
	}
}

package prediction

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

func newValidate() (*validator.Validate, func(error) map[string]string) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	translate := func(err error) map[string]string {
		msgs := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs[fe.Namespace()] = fe.Translate(translator)
			}
		}
		return msgs
	}
	return validate, translate
}

func TestInput_Validate(t *testing.T) {
	validate, translate := newValidate()

	in := exampleInput()
	in.Assignments[0].Type = "  Exam "
	in.UpcomingAssignments = []UpcomingAssignment{{Name: " Final ", Weight: 30, Type: "Exam", Difficulty: 4, DueDate: "2024-03-01"}}
	if err := in.Validate(validate); err != nil {
		t.Fatalf("Validate() = %v; want nil", err)
	}
	if in.Assignments[0].Type != "Exam" || in.UpcomingAssignments[0].Name != "Final" {
		t.Errorf("Validate() did not clean strings: %q, %q", in.Assignments[0].Type, in.UpcomingAssignments[0].Name)
	}

	tests := []struct {
		name      string
		mutate    func(in *Input)
		namespace string
		want      string
	}{
		{
			name:      "gpa above 4",
			mutate:    func(in *Input) { in.CurrentGPA = 4.5 },
			namespace: "Input.current_gpa",
			want:      "current_gpa must be 4 or less",
		},
		{
			name:      "difficulty out of range",
			mutate:    func(in *Input) { in.Assignments[1].Difficulty = 6 },
			namespace: "Input.assignments[1].difficulty",
			want:      "difficulty must be between 1 and 5",
		},
		{
			name:      "non-positive max score",
			mutate:    func(in *Input) { in.Assignments[0].MaxScore = 0 },
			namespace: "Input.assignments[0].max_score",
		},
		{
			name:      "bad assignment date",
			mutate:    func(in *Input) { in.Assignments[0].Date = "next week" },
			namespace: "Input.assignments[0].date",
			want:      "date must be a date formatted as YYYY-MM-DD",
		},
		{
			name: "missing due date",
			mutate: func(in *Input) {
				in.UpcomingAssignments = []UpcomingAssignment{{Name: "Final", Weight: 30, Difficulty: 4}}
			},
			namespace: "Input.upcoming_assignments[0].due_date",
			want:      "this field is required",
		},
		{
			name:      "previous grade above 100",
			mutate:    func(in *Input) { in.PreviousGrades = []float64{80, 101} },
			namespace: "Input.previous_grades[1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := exampleInput()
			tt.mutate(&in)

			err := in.Validate(validate)
			if err == nil {
				t.Fatal("Validate() = nil; want error")
			}
			msgs := translate(err)
			msg, ok := msgs[tt.namespace]
			if !ok {
				t.Fatalf("Validate() errors = %v; want one on %s", msgs, tt.namespace)
			}
			if tt.want != "" && msg != tt.want {
				t.Errorf("Validate() error on %s = %q; want %q", tt.namespace, msg, tt.want)
			}
		})
	}
}

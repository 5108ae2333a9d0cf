package prediction

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

var (
	difficultyTag  = "difficulty"
	difficultyText = "{0} must be between 1 and 5"

	minDifficulty = 1.0
	maxDifficulty = 5.0
)

// InitValidators registers the validations used on Input.
// core.InitValidators must have been called on `validate` first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(difficultyTag, difficultyValidation)
	core.RegisterCustomTranslation(validate, translator, difficultyTag, difficultyText)
}

// Clean trims the free-text fields of `in`.
func (in *Input) Clean() {
	for i := range in.Assignments {
		in.Assignments[i].Type = core.CleanString(in.Assignments[i].Type)
		in.Assignments[i].Date = core.CleanString(in.Assignments[i].Date)
	}
	for i := range in.UpcomingAssignments {
		in.UpcomingAssignments[i].Name = core.CleanString(in.UpcomingAssignments[i].Name)
		in.UpcomingAssignments[i].Type = core.CleanString(in.UpcomingAssignments[i].Type)
		in.UpcomingAssignments[i].DueDate = core.CleanString(in.UpcomingAssignments[i].DueDate)
	}
}

// Validate checks `in` against the input contract. The engine itself accepts anything;
// this is for callers that take input from the outside world.
func (in *Input) Validate(validate *validator.Validate) error {
	in.Clean()
	return validate.Struct(in)
}

func difficultyValidation(fl validator.FieldLevel) bool {
	d := fl.Field().Float()
	return d >= minDifficulty && d <= maxDifficulty
}

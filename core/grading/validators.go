package grading

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/prediction"
)

var (
	letterGradeTag  = "lettergrade"
	letterGradeText = "{0} must be a letter grade (A+ to F)"
)

// InitValidators registers the validations used on transcripts.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(letterGradeTag, letterGradeValidation)
	core.RegisterCustomTranslation(validate, translator, letterGradeTag, letterGradeText)
}

// Validate cleans the course codes and grades, then validates the transcript.
func (t *Transcript) Validate(validate *validator.Validate) error {
	for i := range t.Courses {
		t.Courses[i].Code = core.CleanString(t.Courses[i].Code)
		t.Courses[i].Grade = core.CleanString(t.Courses[i].Grade)
	}
	return validate.Struct(t)
}

func letterGradeValidation(fl validator.FieldLevel) bool {
	return prediction.IsLetterGrade(fl.Field().String())
}

package advisory

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/prediction"
)

// Record is a saved prediction report.
type Record struct {
	ID             string            `json:"id" db:"id"`
	StudentID      string            `json:"student_id" db:"student_id"`
	Subject        string            `json:"subject" db:"subject"`
	Input          prediction.Input  `json:"input" db:"-"`
	Result         prediction.Result `json:"result" db:"-"`
	PredictedGrade float64           `json:"predicted_grade" db:"predicted_grade"`
	LetterGrade    string            `json:"letter_grade" db:"letter_grade"`
	Confidence     int               `json:"confidence" db:"confidence"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

// AtRisk reports whether the student is predicted to fail the course.
func (r Record) AtRisk() bool {
	for _, f := range r.Result.RiskFactors {
		if f == prediction.RiskFailing {
			return true
		}
	}
	return false
}

// NewPrediction contains what is needed to run and save a prediction.
type NewPrediction struct {
	StudentID string           `json:"student_id" validate:"required,max=64"`
	Subject   string           `json:"subject" validate:"required,max=128"`
	Input     prediction.Input `json:"input"`
}

func (np *NewPrediction) Validate(validate *validator.Validate) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.Subject = core.CleanString(np.Subject)
	np.Input.Clean()
	return validate.Struct(np)
}

type QueryFilter struct {
	StudentID    string
	Subject      string
	LetterGrades []string
	CreatedFrom  time.Time
	CreatedTo    time.Time
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.Subject == "" && qf.LetterGrades == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

// Clean trims the filter and drops unknown letter grades.
func (qf *QueryFilter) Clean() {
	qf.StudentID = core.CleanString(qf.StudentID)
	qf.Subject = core.CleanString(qf.Subject)

	var letters []string
	for _, l := range qf.LetterGrades {
		l = strings.ToUpper(core.CleanString(l))
		if prediction.IsLetterGrade(l) {
			letters = append(letters, l)
		}
	}
	qf.LetterGrades = letters
}

// Match reports whether `rec` satisfies every set field of the filter.
// Subject matching is case-insensitive.
func (qf *QueryFilter) Match(rec Record) bool {
	if qf.StudentID != "" && rec.StudentID != qf.StudentID {
		return false
	}
	if qf.Subject != "" && !strings.EqualFold(rec.Subject, qf.Subject) {
		return false
	}
	if len(qf.LetterGrades) > 0 {
		var found bool
		for _, l := range qf.LetterGrades {
			if rec.LetterGrade == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !qf.CreatedFrom.IsZero() && rec.CreatedAt.Before(qf.CreatedFrom) {
		return false
	}
	if !qf.CreatedTo.IsZero() && rec.CreatedAt.After(qf.CreatedTo) {
		return false
	}
	return true
}

// Orderable fields of a Record.
const (
	OrderCreatedAt      = "created_at"
	OrderPredictedGrade = "predicted_grade"
	OrderConfidence     = "confidence"
	OrderStudentID      = "student_id"
	OrderSubject        = "subject"
)

var orderableFields = map[string]bool{
	OrderCreatedAt:      true,
	OrderPredictedGrade: true,
	OrderConfidence:     true,
	OrderStudentID:      true,
	OrderSubject:        true,
}

// CleanOrdering drops orderings on unknown fields; the fields end up in SQL.
// It defaults to the newest records first.
func CleanOrdering(ordering []core.DBOrdering) []core.DBOrdering {
	cleaned := make([]core.DBOrdering, 0, len(ordering))
	for _, ord := range ordering {
		if orderableFields[ord.Field] {
			cleaned = append(cleaned, ord)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, core.DBOrdering{Field: OrderCreatedAt})
	}
	return cleaned
}

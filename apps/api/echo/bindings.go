package echoapi

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
)

var (
	orderingParam    = "ordering"
	studentIDParam   = "student_id"
	subjectParam     = "subject"
	letterGradeParam = "letter_grade"
	createdFromParam = "created_from"
	createdToParam   = "created_to"
	idParam          = "id"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// bindQueryFilter reads an advisory.QueryFilter from the query string.
// `letter_grade` may be repeated or comma separated.
func bindQueryFilter(ctx echo.Context) (*advisory.QueryFilter, error) {
	data := ctx.QueryParams()
	filter := &advisory.QueryFilter{
		StudentID: data.Get(studentIDParam),
		Subject:   data.Get(subjectParam),
	}
	for _, val := range data[letterGradeParam] {
		filter.LetterGrades = append(filter.LetterGrades, strings.Split(val, ",")...)
	}

	var fldErrs []core.FieldError
	parseDate := func(param string, dst *time.Time) {
		val := data.Get(param)
		if val == "" {
			return
		}
		tstamp, err := core.ParseDate(val)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: param, Error: "invalid date"})
			return
		}
		*dst = tstamp
	}
	parseDate(createdFromParam, &filter.CreatedFrom)
	parseDate(createdToParam, &filter.CreatedTo)
	if len(fldErrs) > 0 {
		return nil, core.NewValidationError(nil, fldErrs...)
	}

	filter.Clean()
	return filter, nil
}

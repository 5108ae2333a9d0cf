package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/grading"
)

var fixParam = "fix"

type (
	gradesApi struct {
		validate *validator.Validate
	}

	resultsUpload struct {
		Rows []grading.ResultRow `json:"rows"`
	}

	resultsReport struct {
		Errors []grading.RowError  `json:"errors"`
		Fixed  []grading.ResultRow `json:"fixed,omitempty"`
	}
)

func registerGradesAPI(g *echo.Group, validate *validator.Validate) {
	api := gradesApi{validate: validate}

	gg := g.Group("/grades")
	gg.POST("/cgpa", api.cgpa)
	gg.POST("/validate", api.validateResults)
}

func (api *gradesApi) cgpa(ctx echo.Context) error {
	var data grading.Transcript
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Transcript")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grading.ComputeCGPA(data.Courses))
}

func (api *gradesApi) validateResults(ctx echo.Context) error {
	var data resultsUpload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to results upload")
	}

	report := resultsReport{Errors: grading.ValidateResults(data.Rows)}
	if fix, _ := strconv.ParseBool(ctx.QueryParam(fixParam)); fix {
		report.Fixed = grading.AutoFix(data.Rows)
	}
	return ctx.JSON(http.StatusOK, report)
}

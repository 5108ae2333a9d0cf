package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/trezcool/alama/core/grading"
)

func Test_gradesApi(t *testing.T) {
	app, _ := setup(t)

	score := func(f float64) *float64 { return &f }
	rows := []grading.ResultRow{
		{StudentID: "STU001", Assignment: "Midterm", CAScore: score(30), ExamScore: score(50), TotalScore: score(80)},
		{CAScore: score(10), TotalScore: score(120)},
	}

	tests := []httpTest{
		{
			name:     "cgpa",
			method:   http.MethodPost,
			path:     "/v1/grades/cgpa",
			body:     []byte(`{"courses": [{"code": "MTH101", "credits": 3, "grade": "A"}, {"code": "PHY101", "credits": "4", "grade": "B+"}, {"code": "CHM101", "credits": 2, "grade": "F"}]}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"cgpa": "2.8", "credits_attempted": "9", "credits_earned": "7", "quality_points": "25.2"}`),
		},
		{
			name:     "cgpa (invalid)",
			method:   http.MethodPost,
			path:     "/v1/grades/cgpa",
			body:     []byte(`{"courses": [{"code": " ", "credits": 3, "grade": "E"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"courses[0].code":  "this field is required",
				"courses[0].grade": "grade must be a letter grade (A+ to F)",
			}),
		},
		{
			name:     "cgpa (no courses)",
			method:   http.MethodPost,
			path:     "/v1/grades/cgpa",
			body:     []byte(`{"courses": []}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"cgpa": "0", "credits_attempted": "0", "credits_earned": "0", "quality_points": "0"}`),
		},
		{
			name:     "validate",
			method:   http.MethodPost,
			path:     "/v1/grades/validate",
			body:     marchallObj(t, map[string]interface{}{"rows": rows}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{"errors": grading.ValidateResults(rows)}),
		},
		{
			name:     "validate and fix",
			method:   http.MethodPost,
			path:     "/v1/grades/validate?fix=true",
			body:     marchallObj(t, map[string]interface{}{"rows": rows}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"errors": grading.ValidateResults(rows),
				"fixed":  grading.AutoFix(rows),
			}),
		},
		{
			name:     "validate (nothing uploaded)",
			method:   http.MethodPost,
			path:     "/v1/grades/validate",
			body:     []byte(`{"rows": []}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"errors": []}`),
		},
	}
	runHTTPTests(t, app, tests)
}

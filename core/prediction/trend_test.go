package prediction

import (
	"reflect"
	"testing"
)

func pct(scores ...float64) []Assignment {
	as := make([]Assignment, len(scores))
	for i, s := range scores {
		as[i] = Assignment{Score: s, MaxScore: 100, Weight: 10, Type: "Homework"}
	}
	return as
}

func TestAnalyzeTrend_insufficientData(t *testing.T) {
	tests := []struct {
		name        string
		prev        []float64
		assignments []Assignment
		wantScore   float64
	}{
		{name: "no data", wantScore: 85},
		{name: "previous grades", prev: []float64{70, 75, 78}, wantScore: 78},
		{name: "single assignment", prev: []float64{91}, assignments: pct(60), wantScore: 91},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeTrend(tt.prev, tt.assignments)
			if got.Direction != Stable || got.Strength != 0 {
				t.Errorf("analyzeTrend() = %v/%v; want stable/0", got.Direction, got.Strength)
			}
			if got.Score != tt.wantScore {
				t.Errorf("analyzeTrend().Score = %v; want %v", got.Score, tt.wantScore)
			}
			want := []string{"Insufficient data for trend analysis"}
			if !reflect.DeepEqual(got.KeyFactors, want) {
				t.Errorf("analyzeTrend().KeyFactors = %v; want %v", got.KeyFactors, want)
			}
		})
	}

	res := Predict(Input{Assignments: pct(60)})
	if res.TrendAnalysis.Direction != Stable || res.TrendAnalysis.Strength != 0 {
		t.Errorf("Predict().TrendAnalysis = %+v; want stable/0", res.TrendAnalysis)
	}
}

func TestAnalyzeTrend(t *testing.T) {
	exams := []Assignment{
		{Score: 92, MaxScore: 100, Type: "Midterm Exam"},
		{Score: 19, MaxScore: 20, Type: "quiz"},
		{Score: 47, MaxScore: 50, Type: "FINAL EXAM"},
	}
	weakExams := []Assignment{
		{Score: 60, MaxScore: 100, Type: "Exam"},
		{Score: 65, MaxScore: 100, Type: "Exam"},
	}

	tests := []struct {
		name         string
		assignments  []Assignment
		wantDir      Direction
		wantStrength float64
		wantScore    float64
		wantFactors  []string
	}{
		{
			name:         "improving",
			assignments:  pct(70, 75, 80, 85, 90),
			wantDir:      Improving,
			wantStrength: 0.5,
			wantScore:    90,
			wantFactors:  []string{"Recent assignment scores showing upward trend"},
		},
		{
			name:         "declining uses only the last five",
			assignments:  pct(10, 95, 90, 85, 80, 75),
			wantDir:      Declining,
			wantStrength: 0.5,
			wantScore:    75,
			wantFactors:  []string{"Recent assignment scores showing downward trend"},
		},
		{
			name:         "stable",
			assignments:  pct(80, 82, 81, 80),
			wantDir:      Stable,
			wantStrength: 0.01,
			wantScore:    80,
			wantFactors:  []string{"Performance remains consistent"},
		},
		{
			name:         "strength capped",
			assignments:  pct(10, 90),
			wantDir:      Improving,
			wantStrength: 1,
			wantScore:    90,
			wantFactors:  []string{"Recent assignment scores showing upward trend"},
		},
		{
			name:         "strong exams",
			assignments:  exams,
			wantDir:      Stable,
			wantStrength: 0.1,
			wantScore:    94,
			wantFactors:  []string{"Performance remains consistent", "Strong exam performance"},
		},
		{
			name:         "weak exams",
			assignments:  weakExams,
			wantDir:      Improving,
			wantStrength: 0.5,
			wantScore:    65,
			wantFactors:  []string{"Recent assignment scores showing upward trend", "Exam performance needs improvement"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeTrend(nil, tt.assignments)
			if got.Direction != tt.wantDir {
				t.Errorf("Direction = %v; want %v", got.Direction, tt.wantDir)
			}
			if !approxEqual(got.Strength, tt.wantStrength) {
				t.Errorf("Strength = %v; want %v", got.Strength, tt.wantStrength)
			}
			if !approxEqual(got.Score, tt.wantScore) {
				t.Errorf("Score = %v; want %v", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.KeyFactors, tt.wantFactors) {
				t.Errorf("KeyFactors = %v; want %v", got.KeyFactors, tt.wantFactors)
			}
		})
	}
}

func TestLinearTrend(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		wantSlope     float64
		wantIntercept float64
	}{
		{name: "empty", values: nil},
		{name: "single", values: []float64{42}, wantSlope: 0, wantIntercept: 42},
		{name: "line", values: []float64{1, 3, 5, 7}, wantSlope: 2, wantIntercept: 1},
		{name: "flat", values: []float64{5, 5, 5}, wantSlope: 0, wantIntercept: 5},
		{name: "noisy", values: []float64{2, 4, 5, 4, 5}, wantSlope: 0.6, wantIntercept: 2.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, intercept := linearTrend(tt.values)
			if !approxEqual(slope, tt.wantSlope) || !approxEqual(intercept, tt.wantIntercept) {
				t.Errorf("linearTrend() = (%v, %v); want (%v, %v)", slope, intercept, tt.wantSlope, tt.wantIntercept)
			}
		})
	}
}

package prediction

// Assignment is a graded piece of work.
type Assignment struct {
	Score      float64 `json:"score" validate:"gte=0"`
	MaxScore   float64 `json:"max_score" validate:"gt=0"`
	Weight     float64 `json:"weight" validate:"gte=0"` // percentage points; need not sum to 100
	Type       string  `json:"type"`
	Date       string  `json:"date" validate:"omitempty,isodate"`
	Difficulty float64 `json:"difficulty" validate:"difficulty"`
}

// Fraction returns Score/MaxScore, or 0 when MaxScore is not positive.
func (a Assignment) Fraction() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.Score / a.MaxScore
}

// Percentage returns the assignment score on a 0-100 scale (bonus points may exceed 100).
func (a Assignment) Percentage() float64 {
	return a.Fraction() * 100
}

// UpcomingAssignment is work that has not been graded yet.
type UpcomingAssignment struct {
	Name           string   `json:"name" validate:"required"`
	Weight         float64  `json:"weight" validate:"gte=0"`
	Type           string   `json:"type"`
	Difficulty     float64  `json:"difficulty" validate:"difficulty"`
	DueDate        string   `json:"due_date" validate:"required,isodate"`
	EstimatedScore *float64 `json:"estimated_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Input is a snapshot of a student's performance in one subject.
type Input struct {
	CurrentGPA          float64              `json:"current_gpa" validate:"gte=0,lte=4"`
	Assignments         []Assignment         `json:"assignments" validate:"dive"`
	Attendance          float64              `json:"attendance" validate:"gte=0,lte=100"`
	ParticipationScore  float64              `json:"participation_score" validate:"gte=0,lte=100"`
	StudyHours          float64              `json:"study_hours" validate:"gte=0"`
	PreviousGrades      []float64            `json:"previous_grades" validate:"dive,gte=0,lte=100"`
	SubjectDifficulty   float64              `json:"subject_difficulty"` // accepted but not used by any formula
	TimeToFinals        int                  `json:"time_to_finals" validate:"gte=0"`
	UpcomingAssignments []UpcomingAssignment `json:"upcoming_assignments" validate:"dive"`
}

type Direction string

const (
	Improving Direction = "improving"
	Declining Direction = "declining"
	Stable    Direction = "stable"
)

type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

var priorityRanks = map[Priority]int{High: 3, Medium: 2, Low: 1}

// Rank orders priorities: high > medium > low.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

type RecommendationType string

const (
	TypeStudy         RecommendationType = "study"
	TypeAttendance    RecommendationType = "attendance"
	TypeAssignment    RecommendationType = "assignment"
	TypeParticipation RecommendationType = "participation"
)

type TrendAnalysis struct {
	Direction  Direction `json:"direction"`
	Strength   float64   `json:"strength"` // 0-1
	KeyFactors []string  `json:"key_factors"`
}

type Scenarios struct {
	Optimistic  float64 `json:"optimistic"`
	Realistic   float64 `json:"realistic"`
	Pessimistic float64 `json:"pessimistic"`
}

type Recommendation struct {
	Type      RecommendationType `json:"type"`
	Priority  Priority           `json:"priority"`
	Action    string             `json:"action"`
	Impact    float64            `json:"impact"` // expected grade improvement
	Timeframe string             `json:"timeframe"`
}

type Milestone struct {
	Assignment    string  `json:"assignment"`
	RequiredScore float64 `json:"required_score"`
	Impact        string  `json:"impact"`
	Date          string  `json:"date"`
}

// Distribution holds the integer percentage chance of each letter grade.
// Bands are integrated independently so entries need not sum to 100.
type Distribution struct {
	APlus  int `json:"A+"`
	A      int `json:"A"`
	AMinus int `json:"A-"`
	BPlus  int `json:"B+"`
	B      int `json:"B"`
	BMinus int `json:"B-"`
	CPlus  int `json:"C+"`
	C      int `json:"C"`
	CMinus int `json:"C-"`
	D      int `json:"D"`
	F      int `json:"F"`
}

func (d *Distribution) slot(letter string) *int {
	switch letter {
	case GradeAPlus:
		return &d.APlus
	case GradeA:
		return &d.A
	case GradeAMinus:
		return &d.AMinus
	case GradeBPlus:
		return &d.BPlus
	case GradeB:
		return &d.B
	case GradeBMinus:
		return &d.BMinus
	case GradeCPlus:
		return &d.CPlus
	case GradeC:
		return &d.C
	case GradeCMinus:
		return &d.CMinus
	case GradeD:
		return &d.D
	case GradeF:
		return &d.F
	}
	return nil
}

// Get returns the percentage for `letter` (0 for unknown letters).
func (d Distribution) Get(letter string) int {
	if p := d.slot(letter); p != nil {
		return *p
	}
	return 0
}

func (d *Distribution) set(letter string, pct int) {
	if p := d.slot(letter); p != nil {
		*p = pct
	}
}

// Result is the prediction report for one Input.
type Result struct {
	PredictedFinalGrade     float64          `json:"predicted_final_grade"`
	Confidence              int              `json:"confidence"`
	LetterGrade             string           `json:"letter_grade"`
	ProbabilityDistribution Distribution     `json:"probability_distribution"`
	TrendAnalysis           TrendAnalysis    `json:"trend_analysis"`
	Scenarios               Scenarios        `json:"scenarios"`
	Recommendations         []Recommendation `json:"recommendations"`
	RiskFactors             []string         `json:"risk_factors"`
	Milestones              []Milestone      `json:"milestones"`
}

// AssignmentForecast is the predicted score of one upcoming assignment.
type AssignmentForecast struct {
	Assignment     string  `json:"assignment"`
	PredictedScore float64 `json:"predicted_score"`
}

// Forecast is the outlook for all upcoming assignments.
type Forecast struct {
	AverageScore float64              `json:"average_score"`
	Predictions  []AssignmentForecast `json:"predictions"`
}

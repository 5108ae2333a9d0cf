package prediction

const (
	GradeAPlus  = "A+"
	GradeA      = "A"
	GradeAMinus = "A-"
	GradeBPlus  = "B+"
	GradeB      = "B"
	GradeBMinus = "B-"
	GradeCPlus  = "C+"
	GradeC      = "C"
	GradeCMinus = "C-"
	GradeD      = "D"
	GradeF      = "F"
)

// Band is the percentage range a letter grade covers.
type Band struct {
	Letter string
	Min    float64 // lower threshold for LetterGrade, lower bound for the distribution
	Max    float64 // upper bound for the distribution
}

// Bands lists letter grades from best to worst.
var Bands = []Band{
	{Letter: GradeAPlus, Min: 97, Max: 100},
	{Letter: GradeA, Min: 93, Max: 96},
	{Letter: GradeAMinus, Min: 90, Max: 92},
	{Letter: GradeBPlus, Min: 87, Max: 89},
	{Letter: GradeB, Min: 83, Max: 86},
	{Letter: GradeBMinus, Min: 80, Max: 82},
	{Letter: GradeCPlus, Min: 77, Max: 79},
	{Letter: GradeC, Min: 73, Max: 76},
	{Letter: GradeCMinus, Min: 70, Max: 72},
	{Letter: GradeD, Min: 60, Max: 69},
	{Letter: GradeF, Min: 0, Max: 59},
}

// LetterGrade maps a 0-100 percentage to its letter grade.
func LetterGrade(percentage float64) string {
	for _, b := range Bands[:len(Bands)-1] {
		if percentage >= b.Min {
			return b.Letter
		}
	}
	return GradeF
}

// IsLetterGrade reports whether `s` is one of the letter grades.
func IsLetterGrade(s string) bool {
	for _, b := range Bands {
		if b.Letter == s {
			return true
		}
	}
	return false
}

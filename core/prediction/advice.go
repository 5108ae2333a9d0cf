package prediction

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/trezcool/alama/core"
)

const (
	milestoneMinWeight = 15
	maxMilestones      = 3
)

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// recommend lists actions for the student, high priority first.
// Recommendations of equal priority keep the order the rules are checked in.
func recommend(in Input, predicted float64, direction Direction) []Recommendation {
	recs := make([]Recommendation, 0, 5)

	if in.StudyHours < 8 {
		recs = append(recs, Recommendation{
			Type:      TypeStudy,
			Priority:  High,
			Action:    fmt.Sprintf("Increase study time to 8-10 hours per week (currently %s hours)", formatNumber(in.StudyHours)),
			Impact:    5,
			Timeframe: "2-3 weeks",
		})
	}
	if in.Attendance < 90 {
		recs = append(recs, Recommendation{
			Type:      TypeAttendance,
			Priority:  High,
			Action:    "Improve attendance to above 90% to maximize learning opportunities",
			Impact:    8,
			Timeframe: "Immediate",
		})
	}
	if direction == Declining {
		recs = append(recs, Recommendation{
			Type:      TypeAssignment,
			Priority:  High,
			Action:    "Focus on upcoming high-weight assignments to reverse declining trend",
			Impact:    10,
			Timeframe: "1-2 weeks",
		})
	}
	if in.ParticipationScore < 80 {
		recs = append(recs, Recommendation{
			Type:      TypeParticipation,
			Priority:  Medium,
			Action:    "Increase class participation and engagement",
			Impact:    3,
			Timeframe: "Ongoing",
		})
	}
	if predicted < 80 {
		recs = append(recs, Recommendation{
			Type:      TypeStudy,
			Priority:  High,
			Action:    "Consider forming study groups or seeking tutoring assistance",
			Impact:    12,
			Timeframe: "1 week",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority.Rank() > recs[j].Priority.Rank() })
	return recs
}

// RiskFailing is the risk factor reported when the predicted grade is below a C-.
const RiskFailing = "At risk of failing the course"

func riskFactors(in Input, predicted float64) []string {
	risks := make([]string, 0)

	if predicted < 70 {
		risks = append(risks, RiskFailing)
	}
	if in.Attendance < 80 {
		risks = append(risks, "Poor attendance affecting learning continuity")
	}
	if in.StudyHours < 5 {
		risks = append(risks, "Insufficient study time for course requirements")
	}
	if in.TimeToFinals < 3 {
		risks = append(risks, "Limited time remaining to improve grade")
	}

	last := in.Assignments
	if len(last) > 3 {
		last = last[len(last)-3:]
	}
	var lowScores int
	for _, a := range last {
		if a.Fraction() < 0.7 {
			lowScores++
		}
	}
	if lowScores >= 2 {
		risks = append(risks, "Recent assignment performance below expectations")
	}

	if predicted < 80 {
		for _, ua := range in.UpcomingAssignments {
			if ua.Weight > 20 {
				risks = append(risks, "High-weight assignments could significantly impact final grade")
				break
			}
		}
	}
	return risks
}

// milestones picks the (at most 3) earliest high-weight upcoming assignments and the score each needs.
// Unparsable due dates sort after every valid one.
func milestones(in Input, target float64) []Milestone {
	type critical struct {
		UpcomingAssignment
		due   int64
		valid bool
	}
	crits := make([]critical, 0, len(in.UpcomingAssignments))
	for _, ua := range in.UpcomingAssignments {
		if ua.Weight <= milestoneMinWeight {
			continue
		}
		c := critical{UpcomingAssignment: ua}
		if t, err := core.ParseDate(ua.DueDate); err == nil {
			c.due, c.valid = t.UnixNano(), true
		}
		crits = append(crits, c)
	}
	sort.SliceStable(crits, func(i, j int) bool {
		if crits[i].valid != crits[j].valid {
			return crits[i].valid
		}
		return crits[i].due < crits[j].due
	})
	if len(crits) > maxMilestones {
		crits = crits[:maxMilestones]
	}

	ms := make([]Milestone, 0, len(crits))
	for _, c := range crits {
		ms = append(ms, Milestone{
			Assignment:    c.Name,
			RequiredScore: requiredScore(in.Assignments, target),
			Impact:        formatNumber(c.Weight) + "% of final grade",
			Date:          c.DueDate,
		})
	}
	return ms
}

// requiredScore is the score needed on the remaining weight to reach `target`,
// given what has already been earned. With no weight left it is the target itself.
func requiredScore(graded []Assignment, target float64) float64 {
	var currentWeightedScore, totalWeight float64
	for _, a := range graded {
		currentWeightedScore += a.Fraction() * a.Weight
		totalWeight += a.Weight
	}

	remainingWeight := 100 - totalWeight
	if remainingWeight <= 0 {
		return target
	}
	required := (target*100 - currentWeightedScore) / remainingWeight * 100
	return core.Clamp(math.Round(required), 0, 100)
}

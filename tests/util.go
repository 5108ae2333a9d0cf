package testutil

import (
	"context"
	"io"
	"log"
	"os"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/grading"
	"github.com/trezcool/alama/core/prediction"
	"github.com/trezcool/alama/services/logger"
	"github.com/trezcool/alama/storage/database"
)

// NewConfig returns the configuration with test mode forced on.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.TestMode = true
	return conf
}

// NewLogger returns a logger that discards its output and never reports.
func NewLogger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{Env: "TEST", TestMode: true})
}

// NewValidator returns a validator with every custom validation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	prediction.InitValidators(validate, translator)
	grading.InitValidators(validate, translator)
	return validate, translator
}

// SampleInput is a mid-semester snapshot of a solid student.
func SampleInput() prediction.Input {
	return prediction.Input{
		CurrentGPA: 3.4,
		Assignments: []prediction.Assignment{
			{Score: 85, MaxScore: 100, Weight: 25, Type: "Exam", Date: "2024-01-01", Difficulty: 3},
			{Score: 90, MaxScore: 100, Weight: 25, Type: "Quiz", Date: "2024-01-08", Difficulty: 2},
		},
		Attendance:          92,
		ParticipationScore:  85,
		StudyHours:          8,
		PreviousGrades:      []float64{85, 87, 89},
		SubjectDifficulty:   3,
		TimeToFinals:        6,
		UpcomingAssignments: []prediction.UpcomingAssignment{},
	}
}

// StrugglingInput is a student heading for an F.
func StrugglingInput() prediction.Input {
	return prediction.Input{
		CurrentGPA: 2.0,
		Assignments: []prediction.Assignment{
			{Score: 60, MaxScore: 100, Weight: 20, Type: "Quiz", Date: "2024-01-01", Difficulty: 3},
			{Score: 55, MaxScore: 100, Weight: 20, Type: "Exam", Date: "2024-01-08", Difficulty: 3},
			{Score: 50, MaxScore: 100, Weight: 20, Type: "Exam", Date: "2024-01-15", Difficulty: 3},
		},
		Attendance:         70,
		ParticipationScore: 50,
		StudyHours:         3,
		TimeToFinals:       2,
		UpcomingAssignments: []prediction.UpcomingAssignment{
			{Name: "Final", Weight: 30, Type: "Exam", Difficulty: 4, DueDate: "2024-03-01"},
		},
	}
}

// CreateRecord runs the engine on `in` and saves the report straight through `repo`.
func CreateRecord(
	t *testing.T,
	repo advisory.Repository,
	studentID, subject string,
	in prediction.Input,
	createdAt ...time.Time,
) advisory.Record {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	res := prediction.Predict(in)
	rec, err := repo.CreateRecord(context.Background(), advisory.Record{
		StudentID:      studentID,
		Subject:        subject,
		Input:          in,
		Result:         res,
		PredictedGrade: res.PredictedFinalGrade,
		LetterGrade:    res.LetterGrade,
		Confidence:     res.Confidence,
		CreatedAt:      tstamp,
	})
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}

// PrepareDB opens the test database, migrates it and empties it once the test is over.
// The test is skipped unless TEST_DATABASE_HOST is set.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	t.Setenv("ENV", "TEST")

	conf := NewConfig()
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("CreateIfNotExist() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	t.Cleanup(func() {
		if _, err := db.Exec("TRUNCATE TABLE prediction"); err != nil {
			t.Errorf("truncating prediction: %v", err)
		}
		_ = db.Close()
	})
	return db
}

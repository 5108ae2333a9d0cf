// Package advisory runs predictions on behalf of students and keeps the reports
// so that advisors can follow them over time.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/performance"
	"github.com/trezcool/alama/core/prediction"
)

var (
	// errors
	ErrNotFound = errors.New("prediction not found")
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords applies AND operation on the set QueryFilter fields.
		QueryRecords(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error)
		GetRecordByID(ctx context.Context, id string) (Record, error)
		// DeleteRecordsByID returns the number of records deleted.
		DeleteRecordsByID(ctx context.Context, ids []string) (int, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
		now    func() time.Time

		mailSvc core.EmailService
		alerts  AlertConfig
	}

	// AlertConfig says who gets emailed when a student is predicted at risk.
	AlertConfig struct {
		AppName string
		To      []mail.Address
	}

	// AtRiskAlert is the data of the at_risk email template.
	AtRiskAlert struct {
		AppName        string
		PredictionID   string
		StudentID      string
		Subject        string
		PredictedGrade float64
		LetterGrade    string
		RiskFactors    []string
	}
)

const atRiskTemplate = "at_risk"

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnableAlerts makes Predict email `conf.To` about every student predicted at risk.
func (svc *Service) EnableAlerts(mailSvc core.EmailService, conf AlertConfig) {
	svc.mailSvc = mailSvc
	svc.alerts = conf
}

// Predict runs the engine on `np` and saves the report.
func (svc *Service) Predict(ctx context.Context, np NewPrediction) (Record, error) {
	res := prediction.Predict(np.Input)
	rec := Record{
		StudentID:      np.StudentID,
		Subject:        np.Subject,
		Input:          np.Input,
		Result:         res,
		PredictedGrade: res.PredictedFinalGrade,
		LetterGrade:    res.LetterGrade,
		Confidence:     res.Confidence,
		CreatedAt:      svc.now(),
	}
	rec, err := svc.repo.CreateRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}

	if rec.AtRisk() {
		svc.logger.Warn(
			"student predicted at risk",
			map[string]interface{}{
				"prediction_id":   rec.ID,
				"subject":         rec.Subject,
				"predicted_grade": rec.PredictedGrade,
				"risk_factors":    rec.Result.RiskFactors,
			},
			core.Person{ID: rec.StudentID},
		)
		svc.alert(rec)
	}
	return rec, nil
}

func (svc *Service) alert(rec Record) {
	if svc.mailSvc == nil || len(svc.alerts.To) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.alerts.To,
		Subject:      fmt.Sprintf("%s predicted at risk in %s", rec.StudentID, rec.Subject),
		TemplateName: atRiskTemplate,
		TemplateData: AtRiskAlert{
			AppName:        svc.alerts.AppName,
			PredictionID:   rec.ID,
			StudentID:      rec.StudentID,
			Subject:        rec.Subject,
			PredictedGrade: rec.PredictedGrade,
			LetterGrade:    rec.LetterGrade,
			RiskFactors:    rec.Result.RiskFactors,
		},
	})
}

// Preview runs the engine without saving anything.
func (svc *Service) Preview(in prediction.Input) prediction.Result {
	return prediction.Predict(in)
}

func (svc *Service) Forecast(in prediction.Input) prediction.Forecast {
	return prediction.ForecastUpcoming(in)
}

func (svc *Service) Outlook(s performance.Snapshot) performance.Outlook {
	return performance.Predict(s)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return svc.repo.GetRecordByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error) {
	return svc.repo.QueryRecords(ctx, filter, CleanOrdering(ordering))
}

func (svc *Service) Delete(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return svc.repo.DeleteRecordsByID(ctx, ids)
}

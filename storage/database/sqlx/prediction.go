package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
)

const (
	predictionTable   = "prediction"
	predictionColumns = "id, student_id, subject, input, result, predicted_grade, letter_grade, confidence, created_at"
)

// predictionRow is how a Record is laid out in the prediction table.
// The engine input and report are stored as JSONB.
type predictionRow struct {
	ID             string         `db:"id"`
	StudentID      string         `db:"student_id"`
	Subject        string         `db:"subject"`
	Input          types.JSONText `db:"input"`
	Result         types.JSONText `db:"result"`
	PredictedGrade float64        `db:"predicted_grade"`
	LetterGrade    string         `db:"letter_grade"`
	Confidence     int            `db:"confidence"`
	CreatedAt      time.Time      `db:"created_at"`
}

type predictionRepository struct {
	exec sqlx.ExtContext
}

var _ advisory.Repository = (*predictionRepository)(nil) // interface compliance check

// NewPredictionRepository works with either a *sqlx.DB or a *sqlx.Tx.
func NewPredictionRepository(exec sqlx.ExtContext) *predictionRepository {
	return &predictionRepository{exec: exec}
}

func toRow(rec advisory.Record) (predictionRow, error) {
	input, err := json.Marshal(rec.Input)
	if err != nil {
		return predictionRow{}, errors.Wrap(err, "encoding input")
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return predictionRow{}, errors.Wrap(err, "encoding result")
	}
	return predictionRow{
		ID:             rec.ID,
		StudentID:      rec.StudentID,
		Subject:        rec.Subject,
		Input:          types.JSONText(input),
		Result:         types.JSONText(result),
		PredictedGrade: rec.PredictedGrade,
		LetterGrade:    rec.LetterGrade,
		Confidence:     rec.Confidence,
		CreatedAt:      rec.CreatedAt.UTC(),
	}, nil
}

func fromRow(row predictionRow) (advisory.Record, error) {
	rec := advisory.Record{
		ID:             row.ID,
		StudentID:      row.StudentID,
		Subject:        row.Subject,
		PredictedGrade: row.PredictedGrade,
		LetterGrade:    row.LetterGrade,
		Confidence:     row.Confidence,
		CreatedAt:      row.CreatedAt.UTC(),
	}
	if err := row.Input.Unmarshal(&rec.Input); err != nil {
		return advisory.Record{}, errors.Wrap(err, "decoding input")
	}
	if err := row.Result.Unmarshal(&rec.Result); err != nil {
		return advisory.Record{}, errors.Wrap(err, "decoding result")
	}
	return rec, nil
}

func (repo predictionRepository) CreateRecord(ctx context.Context, rec advisory.Record) (advisory.Record, error) {
	rec.ID = uuid.New().String()
	row, err := toRow(rec)
	if err != nil {
		return advisory.Record{}, err
	}

	q := "INSERT INTO " + predictionTable + " (" + predictionColumns + ") VALUES " +
		"(:id, :student_id, :subject, :input, :result, :predicted_grade, :letter_grade, :confidence, :created_at)"
	if _, err = sqlx.NamedExecContext(ctx, repo.exec, q, row); err != nil {
		return advisory.Record{}, errors.Wrap(err, "inserting prediction")
	}
	return fromRow(row)
}

func (repo predictionRepository) QueryRecords(
	ctx context.Context,
	filter *advisory.QueryFilter,
	ordering []core.DBOrdering,
) ([]advisory.Record, error) {
	q, args, err := selectQuery(filter, ordering)
	if err != nil {
		return nil, errors.Wrap(err, "building prediction query")
	}

	var rows []predictionRow
	if err = sqlx.SelectContext(ctx, repo.exec, &rows, repo.exec.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying predictions")
	}

	recs := make([]advisory.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (repo predictionRepository) GetRecordByID(ctx context.Context, id string) (advisory.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return advisory.Record{}, advisory.ErrNotFound
	}

	var row predictionRow
	q := repo.exec.Rebind("SELECT " + predictionColumns + " FROM " + predictionTable + " WHERE id = ?")
	if err := sqlx.GetContext(ctx, repo.exec, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return advisory.Record{}, advisory.ErrNotFound
		}
		return advisory.Record{}, errors.Wrap(err, "finding prediction by ID")
	}
	return fromRow(row)
}

func (repo predictionRepository) DeleteRecordsByID(ctx context.Context, ids []string) (int, error) {
	validIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			validIDs = append(validIDs, id)
		}
	}
	if len(validIDs) == 0 {
		return 0, nil
	}

	q, args, err := sqlx.In("DELETE FROM "+predictionTable+" WHERE id IN (?)", validIDs)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}
	res, err := repo.exec.ExecContext(ctx, repo.exec.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting predictions")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting deleted predictions")
	}
	return int(n), nil
}

// selectQuery builds the filtered and ordered SELECT with `?` bind vars.
// Ordering fields must already be whitelisted (see advisory.CleanOrdering).
func selectQuery(filter *advisory.QueryFilter, ordering []core.DBOrdering) (string, []interface{}, error) {
	var where []string
	var args []interface{}

	if filter != nil {
		if filter.StudentID != "" {
			where = append(where, "student_id = ?")
			args = append(args, filter.StudentID)
		}
		if filter.Subject != "" {
			where = append(where, "LOWER(subject) = LOWER(?)")
			args = append(args, filter.Subject)
		}
		if len(filter.LetterGrades) > 0 {
			where = append(where, "letter_grade IN (?)")
			args = append(args, filter.LetterGrades)
		}
		if !filter.CreatedFrom.IsZero() {
			where = append(where, "created_at >= ?")
			args = append(args, filter.CreatedFrom.UTC())
		}
		if !filter.CreatedTo.IsZero() {
			where = append(where, "created_at <= ?")
			args = append(args, filter.CreatedTo.UTC())
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + predictionColumns + " FROM " + predictionTable)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		sb.WriteString(" ORDER BY " + strings.Join(orderList, ", "))
	}

	if len(args) == 0 {
		return sb.String(), nil, nil
	}
	return sqlx.In(sb.String(), args...)
}

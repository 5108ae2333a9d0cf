package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
)

type predictionRepository struct {
	db *predictionTable
}

var _ advisory.Repository = (*predictionRepository)(nil) // interface compliance check

func NewPredictionRepository(db *DB) *predictionRepository {
	return &predictionRepository{db: db.prediction}
}

func (repo *predictionRepository) CreateRecord(_ context.Context, rec advisory.Record) (advisory.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec.ID = uuid.New().String()
	rec.CreatedAt = rec.CreatedAt.UTC()
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *predictionRepository) QueryRecords(
	_ context.Context,
	filter *advisory.QueryFilter,
	ordering []core.DBOrdering,
) ([]advisory.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := make([]advisory.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		if filter == nil || filter.Match(*rec) {
			recs = append(recs, *rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(recs[i], recs[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

func (repo *predictionRepository) GetRecordByID(_ context.Context, id string) (advisory.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return *rec, nil
	}
	return advisory.Record{}, advisory.ErrNotFound
}

func (repo *predictionRepository) DeleteRecordsByID(_ context.Context, ids []string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			n++
		}
	}
	return n, nil
}

// compare returns -1, 0 or 1 as `a` sorts before, with or after `b` on `field`.
func compare(a, b advisory.Record, field string) int {
	switch field {
	case advisory.OrderCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
	case advisory.OrderPredictedGrade:
		return compareFloat(a.PredictedGrade, b.PredictedGrade)
	case advisory.OrderConfidence:
		return compareFloat(float64(a.Confidence), float64(b.Confidence))
	case advisory.OrderStudentID:
		return strings.Compare(a.StudentID, b.StudentID)
	case advisory.OrderSubject:
		return strings.Compare(a.Subject, b.Subject)
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

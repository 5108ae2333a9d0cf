// Package inmemdb keeps records in process memory. It backs the tests and
// deployments started with `database.in_memory`.
package inmemdb

import (
	"sync"

	"github.com/trezcool/alama/core/advisory"
)

type (
	DB struct {
		prediction *predictionTable
	}

	predictionTable struct {
		sync.RWMutex
		table map[string]*advisory.Record
	}
)

func Open() *DB {
	return &DB{
		prediction: &predictionTable{table: make(map[string]*advisory.Record)},
	}
}

// Reset drops every record.
func (db *DB) Reset() {
	db.prediction.Lock()
	defer db.prediction.Unlock()
	db.prediction.table = make(map[string]*advisory.Record)
}

package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/grading"
	"github.com/trezcool/alama/core/prediction"
	logsvc "github.com/trezcool/alama/services/logger"
	"github.com/trezcool/alama/storage/database"
	inmemdb "github.com/trezcool/alama/storage/database/inmem"
	sqlxrepos "github.com/trezcool/alama/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	prediction.InitValidators(validate, translator)
	grading.InitValidators(validate, translator)

	cl := commandLine{
		out:        os.Stdout,
		validate:   validate,
		translator: translator,
	}

	// set up DB
	var repo advisory.Repository
	if conf.Database.InMemory {
		repo = inmemdb.NewPredictionRepository(inmemdb.Open())
	} else {
		db, err := database.Open(conf)
		if err != nil {
			stdLogger.Fatal(err)
		}
		defer closeDB(stdLogger, db.DB)
		cl.db = db.DB
		repo = sqlxrepos.NewPredictionRepository(db)
	}
	cl.predictionSvc = advisory.NewService(repo, logger)

	// start CLI
	if err := cl.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		closeDB(stdLogger, cl.db)
		os.Exit(1)
	}
}

func closeDB(logger *log.Logger, db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Printf("closing database: %v", err)
	}
}

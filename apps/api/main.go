package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/alama/apps/api/echo"
	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/advisory"
	"github.com/trezcool/alama/core/grading"
	"github.com/trezcool/alama/core/prediction"
	appfs "github.com/trezcool/alama/fs"
	emailsvc "github.com/trezcool/alama/services/email"
	logsvc "github.com/trezcool/alama/services/logger"
	"github.com/trezcool/alama/storage/database"
	inmemdb "github.com/trezcool/alama/storage/database/inmem"
	sqlxrepos "github.com/trezcool/alama/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	repo, closeDB, err := setUpRepository(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB(); err != nil {
			dbLogger.Error("failed to close", err)
		}
	}()

	mailSvc, advisors, err := setUpMail(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up emails: %v", err), err)
	}
	predictionSvc := advisory.NewService(repo, logger)
	predictionSvc.EnableAlerts(mailSvc, advisory.AlertConfig{AppName: conf.AppName, To: advisors})

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : %v", conf))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	prediction.InitValidators(validate, translator)
	grading.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			PredictionSvc: predictionSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpMail picks the email service for the environment: emails are only printed in debug mode.
func setUpMail(conf *core.Config, logger core.Logger) (core.EmailService, []mail.Address, error) {
	advisors, err := core.ParseAddressList(conf.Email.Advisors)
	if err != nil {
		return nil, nil, err
	}
	tmpls, err := core.ParseEmailTemplates(appfs.FS, conf.Debug || conf.TestMode)
	if err != nil {
		return nil, nil, err
	}
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, tmpls, log.New(os.Stdout, "MAIL : ", log.LstdFlags), logger), advisors, nil
	}
	return emailsvc.NewSendgridService(conf, tmpls, logger), advisors, nil
}

// setUpRepository returns the prediction repository for the configured database
// along with the func that releases it.
func setUpRepository(conf *core.Config) (advisory.Repository, func() error, error) {
	if conf.Database.InMemory {
		return inmemdb.NewPredictionRepository(inmemdb.Open()), func() error { return nil }, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxrepos.NewPredictionRepository(db), db.Close, nil
}

package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/berrycrepe/choco-chip/apps/api/echo"
	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/problem"
	"github.com/berrycrepe/choco-chip/core/ranking"
	"github.com/berrycrepe/choco-chip/core/stats"
	"github.com/berrycrepe/choco-chip/core/user"
	logsvc "github.com/berrycrepe/choco-chip/services/logger"
	"github.com/berrycrepe/choco-chip/storage/cache"
	"github.com/berrycrepe/choco-chip/storage/database"
	sqlxrepos "github.com/berrycrepe/choco-chip/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zlog, err := logsvc.NewZap(conf)
	if err != nil {
		panic(err)
	}
	logger := logsvc.NewRollbarLogger(zlog.Named("api"), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	defer logger.Close()

	dbLogger := logsvc.NewRollbarLogger(zlog.Named("db"), conf)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up cache
	rankingCache := cache.NewNoop()
	if conf.Redis.Enabled() {
		client, err := cache.Open(conf.Redis)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up redis: %v", err), err)
		}
		defer client.Close()
		rankingCache = cache.NewRedis(client, conf.AppName+":")
	}

	// set up services
	problemSvc := problem.NewService(sqlxrepos.NewProblemRepository(db))
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db))
	statsSvc := stats.NewService(sqlxrepos.NewStatsRepository(db), problemSvc)
	rankingSvc := ranking.NewService(
		sqlxrepos.NewRankingRepository(db), problemSvc, rankingCache, conf.Server.RankingCacheTTL, logger,
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			ProblemSvc: problemSvc,
			RankingSvc: rankingSvc,
			StatsSvc:   statsSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}


package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/user"
	logsvc "github.com/berrycrepe/choco-chip/services/logger"
	"github.com/berrycrepe/choco-chip/storage/database"
	sqlxrepos "github.com/berrycrepe/choco-chip/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	zlog, err := logsvc.NewZap(conf)
	if err != nil {
		panic(err)
	}
	logger := logsvc.NewRollbarLogger(zlog.Named("admin"), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	defer logger.Close()

	// set up DB
	if err = database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() { _ = db.Close() }()

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	// start CLI
	cli := commandLine{
		db:       db,
		usrSvc:   user.NewService(sqlxrepos.NewUserRepository(db)),
		validate: validate,
		out:      os.Stdout,
	}
	if err = cli.run(os.Args[1:]); err != nil {
		if !errors.Is(err, errHelp) {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		logger.Close()
		_ = db.Close()
		os.Exit(1)
	}
}

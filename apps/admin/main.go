package main

import (
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	sqlxrepos "github.com/trezcool/shule/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	cli := commandLine{conf: conf, out: os.Stdout}
	closeDB := func() error { return nil }

	// createdb connects on its own, as the admin user
	if len(os.Args) < 2 || os.Args[1] != "createdb" {
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal("opening database", err)
		}
		closeDB = db.Close

		var mailSvc core.EmailService
		if conf.Debug {
			mailSvc = emailsvc.NewConsoleService(conf, os.Stdout, logger)
		} else {
			mailSvc = emailsvc.NewSendgridService(conf, logger)
		}

		cli.db = db.DB
		cli.svc = school.NewService(sqlxrepos.NewStore(db))
		cli.mailSvc = mailSvc
	}

	err := cli.run(os.Args)
	if err != nil && err != errHelp {
		logger.Error("admin command failed", err)
	}
	if cErr := closeDB(); cErr != nil {
		logger.Error("closing database", cErr)
	}
	logger.Wait()
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/pressly/goose/v3"

	"github.com/trezcool/shule/storage/database"
)

var (
	gooseRunFunc = goose.Run                 // mockable
	createDBFunc = database.CreateIfNotExist // mockable
)

// migrate runs goose over the embedded migrations.
func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, "migrations", arguments...)
}

func (cli *commandLine) createDB() error {
	if err := createDBFunc(cli.conf); err != nil {
		return err
	}
	cli.printf("database %q is ready\n", cli.conf.Database.Name)
	return nil
}

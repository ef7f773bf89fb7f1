package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

var (
	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("no database connection")
)

type commandLine struct {
	conf    *core.Config
	db      *sql.DB
	svc     *school.Service
	mailSvc core.EmailService
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  createdb - create the application role and database if they do not exist")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  seed - create the default classes")
	fmt.Fprintln(cli.out, "  remind-overdue [-dry-run] - email overdue fee reminders")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	remindCmd := flag.NewFlagSet("remind-overdue", flag.ContinueOnError)
	remindCmd.SetOutput(cli.out)
	remindDryRun := remindCmd.Bool("dry-run", false, "List the reminders without sending them.")

	switch args[1] {
	case "createdb":
		return cli.createDB()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "remind-overdue":
		if err := remindCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		return cli.remindOverdue(*remindDryRun)
	default:
		cli.printUsage()
		return errHelp
	}
}

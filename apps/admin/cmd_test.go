package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/storage/database/storetest"
)

var now = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

type testCLI struct {
	*commandLine
	store   school.Store
	mailSvc *emailsvc.ConsoleService
	out     *bytes.Buffer
}

func setup(t *testing.T) testCLI {
	conf := &core.Config{AppName: "Shule", TestMode: true}
	conf.Database.Name = "shule_test"
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "ADMIN : ", log.LstdFlags), conf)

	store := inmemdb.NewStore(inmemdb.Open())
	mailSvc := emailsvc.NewConsoleService(conf, nil, logger)
	out := new(bytes.Buffer)

	return testCLI{
		commandLine: &commandLine{
			conf:    conf,
			db:      new(sql.DB), // never used: goose is mocked
			svc:     school.NewServiceWithClock(store, func() time.Time { return now }),
			mailSvc: mailSvc,
			out:     out,
		},
		store:   store,
		mailSvc: mailSvc,
		out:     out,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
		}
		return
	}
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	default:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"remind-overdue", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
	assert.Contains(t, cli.out.String(), "remind-overdue [-dry-run]")
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		if dir != "migrations" {
			return fmt.Errorf("unexpected dir %q", dir)
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "add_attendance", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	t.Run("no database", func(t *testing.T) {
		noDB := setup(t)
		noDB.db = nil
		assert.Equal(t, errNoDatabase, noDB.run([]string{"admin", "migrate", "up"}))
	})
}

func Test_commandLine_createdb(t *testing.T) {
	cli := setup(t)

	var gotName string
	createDBFunc = func(conf *core.Config) error {
		gotName = conf.Database.Name
		return nil
	}

	require.NoError(t, cli.run([]string{"admin", "createdb"}))
	assert.Equal(t, "shule_test", gotName)
	assert.Contains(t, cli.out.String(), `database "shule_test" is ready`)
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	storetest.CreateClass(t, cli.store, "10-A", 10, "A")

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Contains(t, cli.out.String(), "class 10-A already exists, skipped")
	assert.Contains(t, cli.out.String(), "5 classes created")

	classes, err := cli.store.ListClasses(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"10-A", "9-A", "9-B", "10-B", "11-A", "12-A"}, names)

	// the pre-existing class is left untouched
	assert.Equal(t, school.DefaultClassCapacity, classes[0].Capacity)
	assert.False(t, classes[0].ClassTeacher.Valid)
	assert.Equal(t, "Dr. Reddy", classes[4].ClassTeacher.String)
	assert.Equal(t, 30, classes[4].Capacity)

	cli.out.Reset()
	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Contains(t, cli.out.String(), "0 classes created")
}

func Test_commandLine_remindOverdue(t *testing.T) {
	t.Run("nothing overdue", func(t *testing.T) {
		cli := setup(t)
		asha := storetest.CreateStudent(t, cli.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
		storetest.CreateFee(t, cli.store, asha.ID, "1500", "0", school.FeePending, now.AddDate(0, 0, 1))

		require.NoError(t, cli.run([]string{"admin", "remind-overdue"}))
		assert.Contains(t, cli.out.String(), "no overdue fees")
		assert.Empty(t, cli.mailSvc.SentMessages())
	})

	setupOverdue := func(t *testing.T) testCLI {
		cli := setup(t)
		asha := storetest.CreateStudent(t, cli.store, "STU001", "Asha", "Verma", "asha@school.test", "10-A", now)
		ravi := storetest.CreateStudent(t, cli.store, "STU002", "Ravi", "Kumar", "ravi@school.test", "9-B", now)
		meera := storetest.CreateStudent(t, cli.store, "STU003", "Meera", "Iyer", "meera@school.test", "9-B", now)
		storetest.CreateFee(t, cli.store, asha.ID, "1500", "500", school.FeePending, now.AddDate(0, 0, -3))
		storetest.CreateFee(t, cli.store, asha.ID, "300", "0", school.FeePending, now.AddDate(0, 0, -1))
		storetest.CreateFee(t, cli.store, ravi.ID, "900", "0", school.FeePending, now.AddDate(0, -1, 0))
		storetest.CreateFee(t, cli.store, meera.ID, "900", "900", school.FeePaid, now.AddDate(0, -1, 0), now.AddDate(0, -1, 0))
		return cli
	}

	t.Run("dry run", func(t *testing.T) {
		cli := setupOverdue(t)
		require.NoError(t, cli.run([]string{"admin", "remind-overdue", "-dry-run"}))
		assert.Contains(t, cli.out.String(), `reminder: "Asha Verma" <asha@school.test>`)
		assert.Contains(t, cli.out.String(), "2 reminders (dry run, nothing sent)")
		assert.Empty(t, cli.mailSvc.SentMessages())
	})

	t.Run("send", func(t *testing.T) {
		cli := setupOverdue(t)
		require.NoError(t, cli.run([]string{"admin", "remind-overdue"}))
		assert.Contains(t, cli.out.String(), "2 reminders sent")

		sent := cli.mailSvc.SentMessages()
		require.Len(t, sent, 2)
		byRecipient := make(map[string]core.EmailMessage)
		for _, msg := range sent {
			byRecipient[msg.To[0].Address] = msg
		}
		require.Contains(t, byRecipient, "asha@school.test")
		require.Contains(t, byRecipient, "ravi@school.test")
		assert.Equal(t, "Fee payment reminder", byRecipient["asha@school.test"].Subject)
		assert.Contains(t, byRecipient["asha@school.test"].TextContent, "Total outstanding: 1300.00")
		assert.Contains(t, byRecipient["ravi@school.test"].TextContent, "Total outstanding: 900.00")
	})
}

package main

import (
	"context"

	"github.com/pkg/errors"
)

// remindOverdue emails one reminder per student with overdue fees.
func (cli *commandLine) remindOverdue(dryRun bool) error {
	messages, err := cli.svc.OverdueReminders(context.Background())
	if err != nil {
		return errors.Wrap(err, "building reminders")
	}
	if len(messages) == 0 {
		cli.printf("no overdue fees\n")
		return nil
	}

	for _, msg := range messages {
		for _, to := range msg.To {
			cli.printf("reminder: %s\n", to.String())
		}
	}
	if dryRun {
		cli.printf("%d reminders (dry run, nothing sent)\n", len(messages))
		return nil
	}

	cli.mailSvc.SendMessages(messages...)
	cli.printf("%d reminders sent\n", len(messages))
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

var defaultClasses = []school.NewClass{
	{Name: "9-A", Standard: 9, Section: "A", ClassTeacher: "Mrs. Sharma", Room: "101", Capacity: 35},
	{Name: "9-B", Standard: 9, Section: "B", ClassTeacher: "Mr. Kumar", Room: "102", Capacity: 35},
	{Name: "10-A", Standard: 10, Section: "A", ClassTeacher: "Mrs. Patel", Room: "201", Capacity: 40},
	{Name: "10-B", Standard: 10, Section: "B", ClassTeacher: "Mr. Singh", Room: "202", Capacity: 40},
	{Name: "11-A", Standard: 11, Section: "A", ClassTeacher: "Dr. Reddy", Room: "301", Capacity: 30},
	{Name: "12-A", Standard: 12, Section: "A", ClassTeacher: "Prof. Gupta", Room: "401", Capacity: 25},
}

// seed creates the default classes, skipping the ones that already exist.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	created := 0
	for _, nc := range defaultClasses {
		c, err := cli.svc.CreateClass(ctx, nc)
		if err != nil {
			if core.IsValidationError(err) {
				cli.printf("class %s already exists, skipped\n", nc.Name)
				continue
			}
			return errors.Wrapf(err, "creating class %s", nc.Name)
		}
		created++
		cli.printf("class %s created (id %d)\n", c.Name, c.ID)
	}
	cli.printf("%d classes created\n", created)
	return nil
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	fmt.Fprintf(cli.out, format, args...)
}

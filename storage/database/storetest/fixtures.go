// Package storetest holds record fixtures and the behaviour suite every school.Store
// backend must pass.
package storetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Amount(t *testing.T, s string) core.Decimal {
	d, err := core.ParseDecimal(s)
	require.NoError(t, err)
	return d
}

func CreateStudent(t *testing.T, store school.Store, registryNo, firstName, lastName, email, class string, admittedAt ...time.Time) school.Student {
	tstamp := time.Now()
	if len(admittedAt) > 0 {
		tstamp = admittedAt[0]
	}
	s, err := store.CreateStudent(context.Background(), school.Student{
		RegistryNo:    registryNo,
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Class:         class,
		AdmissionDate: core.NormalizeTime(tstamp),
		Status:        school.StudentActive,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

// CreateFee stores a fee; a non-zero paidDate marks it paid on that date.
func CreateFee(t *testing.T, store school.Store, studentID int, amount, paidAmount, status string, dueDate time.Time, paidDate ...time.Time) school.Fee {
	f := school.Fee{
		StudentID:    studentID,
		AcademicYear: "2024-25",
		FeeType:      "Tuition",
		Amount:       Amount(t, amount),
		PaidAmount:   Amount(t, paidAmount),
		DueDate:      core.NormalizeTime(dueDate),
		Status:       status,
	}
	if len(paidDate) > 0 {
		f.PaidDate = null.TimeFrom(core.NormalizeTime(paidDate[0]))
	}
	f, err := store.CreateFee(context.Background(), f)
	if err != nil {
		t.Fatalf("CreateFee() failed: %v", err)
	}
	return f
}

func CreateExpense(t *testing.T, store school.Store, category, description, amount string, date time.Time) school.Expense {
	e, err := store.CreateExpense(context.Background(), school.Expense{
		Category:    category,
		Description: description,
		Amount:      Amount(t, amount),
		Date:        core.NormalizeTime(date),
	})
	if err != nil {
		t.Fatalf("CreateExpense() failed: %v", err)
	}
	return e
}

// CreatePerformance stores an exam result out of 100 marks.
func CreatePerformance(t *testing.T, store school.Store, studentID int, subject string, obtained int) school.Performance {
	p, err := store.CreatePerformance(context.Background(), school.Performance{
		StudentID:     studentID,
		Subject:       subject,
		ExamType:      "Final",
		AcademicYear:  "2024-25",
		Term:          "Term 1",
		MaxMarks:      100,
		ObtainedMarks: obtained,
		Percentage:    core.Percent(int64(obtained), 100),
	})
	if err != nil {
		t.Fatalf("CreatePerformance() failed: %v", err)
	}
	return p
}

func CreateClass(t *testing.T, store school.Store, name string, standard int, section string) school.Class {
	c, err := store.CreateClass(context.Background(), school.Class{
		Name:     name,
		Standard: standard,
		Section:  section,
		Capacity: school.DefaultClassCapacity,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return c
}

// RequireSameJSON compares records through their JSON form, which is what clients see:
// backends may differ in time zone pointers or decimal exponents for equal values.
func RequireSameJSON(t *testing.T, want, got interface{}) {
	t.Helper()
	wantData, err := json.Marshal(want)
	require.NoError(t, err)
	gotData, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, string(wantData), string(gotData))
}

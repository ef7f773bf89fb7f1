package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/school"
)

// Run runs the store behaviour suite; newStore must return an empty store whose
// id sequences start at 1.
func Run(t *testing.T, newStore func(t *testing.T) school.Store) {
	tests := []struct {
		name string
		test func(t *testing.T, store school.Store)
	}{
		{"ids", testIDs},
		{"not found", testNotFound},
		{"student round trip", testStudentRoundTrip},
		{"student uniqueness", testStudentUniqueness},
		{"fee queries", testFeeQueries},
		{"fee update", testFeeUpdate},
		{"expense queries", testExpenseQueries},
		{"performance queries", testPerformanceQueries},
		{"class uniqueness", testClassUniqueness},
		{"no cascade", testNoCascade},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.test(t, newStore(t))
		})
	}
}

func testIDs(t *testing.T, store school.Store) {
	ctx := context.Background()
	s1 := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	s2 := CreateStudent(t, store, "REG002", "Ravi", "Kumar", "ravi@test.in", "10-A")
	assert.Equal(t, 1, s1.ID)
	assert.Equal(t, 2, s2.ID)

	deleted, err := store.DeleteStudent(ctx, s2.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// ids are never reused
	s3 := CreateStudent(t, store, "REG003", "Meera", "Nair", "meera@test.in", "10-B")
	assert.Equal(t, 3, s3.ID)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Student{s1, s3}, students)

	c := CreateClass(t, store, "9-A", 9, "A")
	assert.Equal(t, 1, c.ID)
	f := CreateFee(t, store, s1.ID, "1000", "0", school.FeePending, Date(2025, 6, 30))
	assert.Equal(t, 1, f.ID)
	e := CreateExpense(t, store, "Utilities", "Electricity", "250.50", Date(2025, 6, 1))
	assert.Equal(t, 1, e.ID)
	p := CreatePerformance(t, store, s1.ID, "Math", 88)
	assert.Equal(t, 1, p.ID)
}

func testNotFound(t *testing.T, store school.Store) {
	ctx := context.Background()

	_, ok, err := store.GetStudent(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.GetStudentByRegistryNo(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.UpdateStudent(ctx, school.Student{ID: 99, RegistryNo: "X", Email: "x@test.in"})
	require.NoError(t, err)
	assert.False(t, ok)
	deleted, err := store.DeleteStudent(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, ok, err = store.GetFee(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.UpdateFee(ctx, school.Fee{ID: 99})
	require.NoError(t, err)
	assert.False(t, ok)
	deleted, err = store.DeleteFee(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, ok, err = store.GetExpense(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	deleted, err = store.DeleteExpense(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, ok, err = store.GetPerformance(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	deleted, err = store.DeletePerformance(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, ok, err = store.GetClass(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.GetClassByName(ctx, "99-Z")
	require.NoError(t, err)
	assert.False(t, ok)
	deleted, err = store.DeleteClass(ctx, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	// empty lists, not nil
	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Len(t, students, 0)
}

func testStudentRoundTrip(t *testing.T, store school.Store) {
	ctx := context.Background()
	want := school.Student{
		RegistryNo:    "REG100",
		FirstName:     "Priya",
		LastName:      "Sharma",
		Email:         "priya@test.in",
		Phone:         null.StringFrom("9876543210"),
		DateOfBirth:   null.TimeFrom(Date(2010, 3, 14)),
		Class:         "10-A",
		Section:       null.StringFrom("A"),
		AdmissionDate: time.Date(2025, 6, 1, 9, 30, 15, 123456000, time.UTC),
		GuardianName:  null.StringFrom("Anil Sharma"),
		Status:        school.StudentActive,
	}
	created, err := store.CreateStudent(ctx, want)
	require.NoError(t, err)
	want.ID = created.ID
	RequireSameJSON(t, want, created)

	got, ok, err := store.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, want, got)

	got, ok, err = store.GetStudentByRegistryNo(ctx, "REG100")
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, want, got)

	want.Class = "11-A"
	want.Phone = null.String{}
	updated, ok, err := store.UpdateStudent(ctx, want)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, want, updated)

	got, _, err = store.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	RequireSameJSON(t, want, got)
}

func testStudentUniqueness(t *testing.T, store school.Store) {
	ctx := context.Background()
	s1 := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	s2 := CreateStudent(t, store, "REG002", "Ravi", "Kumar", "ravi@test.in", "10-A")

	tests := []struct {
		name       string
		registryNo string
		email      string
		excludeID  int
		wantErr    error
	}{
		{"unique", "REG003", "new@test.in", 0, nil},
		{"registryNo taken", "REG001", "new@test.in", 0, school.ErrRegistryNoExists},
		{"email taken", "REG003", "ravi@test.in", 0, school.ErrEmailExists},
		{"registryNo reported first", "REG001", "ravi@test.in", 0, school.ErrRegistryNoExists},
		{"self excluded", "REG001", "asha@test.in", s1.ID, nil},
		{"other student", "REG001", "asha@test.in", s2.ID, school.ErrRegistryNoExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CheckStudentUniqueness(ctx, tt.registryNo, tt.email, tt.excludeID)
			assert.Equal(t, tt.wantErr, errors.Cause(err))
		})
	}

	// the store itself rejects duplicates
	_, err := store.CreateStudent(ctx, school.Student{
		RegistryNo: "REG001", FirstName: "Dup", LastName: "Licate", Email: "dup@test.in",
		Class: "10-A", AdmissionDate: Date(2025, 1, 1), Status: school.StudentActive,
	})
	assert.Equal(t, school.ErrRegistryNoExists, errors.Cause(err))

	s2.Email = s1.Email
	_, _, err = store.UpdateStudent(ctx, s2)
	assert.Equal(t, school.ErrEmailExists, errors.Cause(err))

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func testFeeQueries(t *testing.T, store school.Store) {
	ctx := context.Background()
	asOf := Date(2025, 7, 1)
	s1 := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	s2 := CreateStudent(t, store, "REG002", "Ravi", "Kumar", "ravi@test.in", "10-A")

	overdue := CreateFee(t, store, s1.ID, "1000", "0", school.FeePending, Date(2025, 6, 30))
	notYetDue := CreateFee(t, store, s1.ID, "1000", "0", school.FeePending, asOf)
	paid := CreateFee(t, store, s2.ID, "500", "500", school.FeePaid, Date(2025, 5, 1), Date(2025, 4, 20))
	partial := CreateFee(t, store, s2.ID, "800", "300.5", school.FeePartial, Date(2025, 5, 1))

	fees, err := store.ListStudentFees(ctx, s2.ID)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Fee{paid, partial}, fees)

	fees, err = store.ListOverdueFees(ctx, asOf)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Fee{overdue}, fees)

	fees, err = store.ListPendingFees(ctx)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Fee{overdue, notYetDue, partial}, fees)

	fees, err = store.ListStudentFees(ctx, 99)
	require.NoError(t, err)
	assert.Len(t, fees, 0)

	got, ok, err := store.GetFee(ctx, partial.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "300.50", got.PaidAmount.String())
	assert.Equal(t, "499.50", got.Outstanding().String())
}

func testFeeUpdate(t *testing.T, store school.Store) {
	ctx := context.Background()
	s := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	f := CreateFee(t, store, s.ID, "1000", "0", school.FeePending, Date(2025, 6, 30))

	f.PaidAmount = Amount(t, "1000")
	f.PaidDate = null.TimeFrom(Date(2025, 6, 15))
	f.Status = school.FeePaid
	f.PaymentMethod = null.StringFrom("UPI")
	updated, ok, err := store.UpdateFee(ctx, f)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, f, updated)

	got, _, err := store.GetFee(ctx, f.ID)
	require.NoError(t, err)
	RequireSameJSON(t, f, got)

	deleted, err := store.DeleteFee(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = store.DeleteFee(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testExpenseQueries(t *testing.T, store school.Store) {
	ctx := context.Background()
	e1 := CreateExpense(t, store, "Utilities", "Electricity bill", "2500", Date(2025, 6, 1))
	e2 := CreateExpense(t, store, "Supplies", "Chalk", "120.75", time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC))
	e3 := CreateExpense(t, store, "Utilities", "Water bill", "800", Date(2025, 6, 30))
	CreateExpense(t, store, "Supplies", "Paper", "300", Date(2025, 7, 1))

	expenses, err := store.ListExpensesByCategory(ctx, "Utilities")
	require.NoError(t, err)
	RequireSameJSON(t, []school.Expense{e1, e3}, expenses)

	expenses, err = store.ListExpensesByCategory(ctx, "utilities")
	require.NoError(t, err)
	assert.Len(t, expenses, 0)

	// both bounds are inclusive
	expenses, err = store.ListExpensesByDateRange(ctx, Date(2025, 6, 1), Date(2025, 6, 30))
	require.NoError(t, err)
	RequireSameJSON(t, []school.Expense{e1, e2, e3}, expenses)

	expenses, err = store.ListExpensesByDateRange(ctx, Date(2025, 6, 2), Date(2025, 6, 15))
	require.NoError(t, err)
	assert.Len(t, expenses, 0)

	expenses, err = store.ListExpensesByDateRange(ctx, Date(2025, 6, 15), time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	RequireSameJSON(t, []school.Expense{e2}, expenses)

	e2.Vendor = null.StringFrom("Stationers")
	updated, ok, err := store.UpdateExpense(ctx, e2)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, e2, updated)
}

func testPerformanceQueries(t *testing.T, store school.Store) {
	ctx := context.Background()
	s1 := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	s2 := CreateStudent(t, store, "REG002", "Ravi", "Kumar", "ravi@test.in", "10-A")
	p1 := CreatePerformance(t, store, s1.ID, "Math", 88)
	CreatePerformance(t, store, s2.ID, "Math", 54)
	p3 := CreatePerformance(t, store, s1.ID, "Science", 92)

	perfs, err := store.ListStudentPerformances(ctx, s1.ID)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Performance{p1, p3}, perfs)
	assert.Equal(t, "88.00", perfs[0].Percentage.String())

	p1.Grade = null.StringFrom("A")
	updated, ok, err := store.UpdatePerformance(ctx, p1)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, p1, updated)

	perfs, err = store.ListPerformances(ctx)
	require.NoError(t, err)
	assert.Len(t, perfs, 3)
}

func testClassUniqueness(t *testing.T, store school.Store) {
	ctx := context.Background()
	c1 := CreateClass(t, store, "9-A", 9, "A")
	c2 := CreateClass(t, store, "9-B", 9, "B")

	assert.NoError(t, store.CheckClassUniqueness(ctx, "10-A", 0))
	assert.NoError(t, store.CheckClassUniqueness(ctx, "9-A", c1.ID))
	assert.Equal(t, school.ErrClassNameExists, errors.Cause(store.CheckClassUniqueness(ctx, "9-A", 0)))
	assert.Equal(t, school.ErrClassNameExists, errors.Cause(store.CheckClassUniqueness(ctx, "9-A", c2.ID)))

	_, err := store.CreateClass(ctx, school.Class{Name: "9-A", Standard: 9, Section: "A", Capacity: 30})
	assert.Equal(t, school.ErrClassNameExists, errors.Cause(err))

	c2.Name = "9-A"
	_, _, err = store.UpdateClass(ctx, c2)
	assert.Equal(t, school.ErrClassNameExists, errors.Cause(err))

	got, ok, err := store.GetClassByName(ctx, "9-B")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", got.Section)

	c1.Room = null.StringFrom("101")
	c1.ClassTeacher = null.StringFrom("Mrs. Sharma")
	updated, ok, err := store.UpdateClass(ctx, c1)
	require.NoError(t, err)
	require.True(t, ok)
	RequireSameJSON(t, c1, updated)
}

func testNoCascade(t *testing.T, store school.Store) {
	ctx := context.Background()
	s := CreateStudent(t, store, "REG001", "Asha", "Rao", "asha@test.in", "10-A")
	f := CreateFee(t, store, s.ID, "1000", "0", school.FeePending, Date(2025, 6, 30))
	p := CreatePerformance(t, store, s.ID, "Math", 75)

	deleted, err := store.DeleteStudent(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	fees, err := store.ListFees(ctx)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Fee{f}, fees)
	perfs, err := store.ListPerformances(ctx)
	require.NoError(t, err)
	RequireSameJSON(t, []school.Performance{p}, perfs)
}

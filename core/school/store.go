package school

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// uniqueness errors
	ErrRegistryNoExists = errors.New("registry number already exists")
	ErrEmailExists      = errors.New("a student with this email already exists")
	ErrClassNameExists  = errors.New("a class with this name already exists")

	ErrStudentNotFound = errors.New("student not found")
	ErrMarksAboveMax   = errors.New("must not be greater than maxMarks")
)

// Store is the Record Store: persistence for the five school entities.
// Get/Update return ok=false and Delete returns false when the id is unknown: not found is not an error.
// Lists are ordered by ascending id.
// Implementations must produce identical results for identical operation sequences.
type Store interface {
	StudentStore
	FeeStore
	ExpenseStore
	PerformanceStore
	ClassStore
}

type StudentStore interface {
	ListStudents(ctx context.Context) ([]Student, error)
	GetStudent(ctx context.Context, id int) (Student, bool, error)
	GetStudentByRegistryNo(ctx context.Context, registryNo string) (Student, bool, error)
	// CheckStudentUniqueness returns ErrRegistryNoExists or ErrEmailExists if another student
	// (any but excludeID) already uses registryNo or email.
	CheckStudentUniqueness(ctx context.Context, registryNo, email string, excludeID int) error
	CreateStudent(ctx context.Context, s Student) (Student, error)
	UpdateStudent(ctx context.Context, s Student) (Student, bool, error)
	DeleteStudent(ctx context.Context, id int) (bool, error)
}

type FeeStore interface {
	ListFees(ctx context.Context) ([]Fee, error)
	GetFee(ctx context.Context, id int) (Fee, bool, error)
	ListStudentFees(ctx context.Context, studentID int) ([]Fee, error)
	// ListOverdueFees returns pending fees due strictly before asOf.
	ListOverdueFees(ctx context.Context, asOf time.Time) ([]Fee, error)
	// ListPendingFees returns pending and partially paid fees.
	ListPendingFees(ctx context.Context) ([]Fee, error)
	CreateFee(ctx context.Context, f Fee) (Fee, error)
	UpdateFee(ctx context.Context, f Fee) (Fee, bool, error)
	DeleteFee(ctx context.Context, id int) (bool, error)
}

type ExpenseStore interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	GetExpense(ctx context.Context, id int) (Expense, bool, error)
	ListExpensesByCategory(ctx context.Context, category string) ([]Expense, error)
	// ListExpensesByDateRange returns expenses dated within [from, to], both bounds inclusive.
	ListExpensesByDateRange(ctx context.Context, from, to time.Time) ([]Expense, error)
	CreateExpense(ctx context.Context, e Expense) (Expense, error)
	UpdateExpense(ctx context.Context, e Expense) (Expense, bool, error)
	DeleteExpense(ctx context.Context, id int) (bool, error)
}

type PerformanceStore interface {
	ListPerformances(ctx context.Context) ([]Performance, error)
	GetPerformance(ctx context.Context, id int) (Performance, bool, error)
	ListStudentPerformances(ctx context.Context, studentID int) ([]Performance, error)
	CreatePerformance(ctx context.Context, p Performance) (Performance, error)
	UpdatePerformance(ctx context.Context, p Performance) (Performance, bool, error)
	DeletePerformance(ctx context.Context, id int) (bool, error)
}

type ClassStore interface {
	ListClasses(ctx context.Context) ([]Class, error)
	GetClass(ctx context.Context, id int) (Class, bool, error)
	GetClassByName(ctx context.Context, name string) (Class, bool, error)
	// CheckClassUniqueness returns ErrClassNameExists if another class (any but excludeID) is named name.
	CheckClassUniqueness(ctx context.Context, name string, excludeID int) error
	CreateClass(ctx context.Context, c Class) (Class, error)
	UpdateClass(ctx context.Context, c Class) (Class, bool, error)
	DeleteClass(ctx context.Context, id int) (bool, error)
}

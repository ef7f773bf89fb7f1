package school

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Service is the write path over a Store: it turns validated inputs into records
// (defaults, date parsing, percentages) and enforces uniqueness and student references.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceWithClock is NewService with a fixed clock, for tests.
func NewServiceWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

func (svc *Service) Store() Store { return svc.store }

// uniquenessError maps Store uniqueness errors to field validation errors.
func uniquenessError(err error) error {
	switch errors.Cause(err) {
	case ErrRegistryNoExists:
		return core.NewFieldValidationError("registryNo", ErrRegistryNoExists)
	case ErrEmailExists:
		return core.NewFieldValidationError("email", ErrEmailExists)
	case ErrClassNameExists:
		return core.NewFieldValidationError("name", ErrClassNameExists)
	}
	return err
}

func (svc *Service) checkStudentExists(ctx context.Context, studentID int) error {
	_, ok, err := svc.store.GetStudent(ctx, studentID)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	if !ok {
		return core.NewFieldValidationError("studentId", ErrStudentNotFound)
	}
	return nil
}

// Students

func (svc *Service) ListStudents(ctx context.Context) ([]Student, error) {
	return svc.store.ListStudents(ctx)
}

func (svc *Service) GetStudent(ctx context.Context, id int) (Student, bool, error) {
	return svc.store.GetStudent(ctx, id)
}

func (svc *Service) GetStudentByRegistryNo(ctx context.Context, registryNo string) (Student, bool, error) {
	return svc.store.GetStudentByRegistryNo(ctx, core.CleanString(registryNo))
}

// CreateStudent rejects duplicate registry numbers and emails before touching the store.
func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if err := svc.store.CheckStudentUniqueness(ctx, ns.RegistryNo, ns.Email, 0); err != nil {
		return Student{}, uniquenessError(err)
	}
	s, err := svc.store.CreateStudent(ctx, ns.student(svc.now()))
	if err != nil {
		return Student{}, uniquenessError(err)
	}
	return s, nil
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (Student, bool, error) {
	s, ok, err := svc.store.GetStudent(ctx, id)
	if err != nil || !ok {
		return Student{}, ok, err
	}
	us.apply(&s)
	if err = svc.store.CheckStudentUniqueness(ctx, s.RegistryNo, s.Email, id); err != nil {
		return Student{}, false, uniquenessError(err)
	}
	s, ok, err = svc.store.UpdateStudent(ctx, s)
	if err != nil {
		return Student{}, false, uniquenessError(err)
	}
	return s, ok, nil
}

// DeleteStudent does not cascade: the student's fees and performances are kept.
func (svc *Service) DeleteStudent(ctx context.Context, id int) (bool, error) {
	return svc.store.DeleteStudent(ctx, id)
}

// Fees

func (svc *Service) ListFees(ctx context.Context) ([]Fee, error) {
	return svc.store.ListFees(ctx)
}

func (svc *Service) GetFee(ctx context.Context, id int) (Fee, bool, error) {
	return svc.store.GetFee(ctx, id)
}

func (svc *Service) StudentFees(ctx context.Context, studentID int) ([]Fee, error) {
	return svc.store.ListStudentFees(ctx, studentID)
}

// OverdueFees returns the fees still pending past their due date as of now.
func (svc *Service) OverdueFees(ctx context.Context) ([]Fee, error) {
	return svc.store.ListOverdueFees(ctx, svc.now())
}

func (svc *Service) PendingFees(ctx context.Context) ([]Fee, error) {
	return svc.store.ListPendingFees(ctx)
}

func (svc *Service) CreateFee(ctx context.Context, nf NewFee) (Fee, error) {
	if err := svc.checkStudentExists(ctx, nf.StudentID); err != nil {
		return Fee{}, err
	}
	return svc.store.CreateFee(ctx, nf.fee())
}

func (svc *Service) UpdateFee(ctx context.Context, id int, uf UpdateFee) (Fee, bool, error) {
	f, ok, err := svc.store.GetFee(ctx, id)
	if err != nil || !ok {
		return Fee{}, ok, err
	}
	if uf.StudentID != nil && *uf.StudentID != f.StudentID {
		if err = svc.checkStudentExists(ctx, *uf.StudentID); err != nil {
			return Fee{}, false, err
		}
	}
	uf.apply(&f)
	return svc.store.UpdateFee(ctx, f)
}

func (svc *Service) DeleteFee(ctx context.Context, id int) (bool, error) {
	return svc.store.DeleteFee(ctx, id)
}

// Expenses

func (svc *Service) ListExpenses(ctx context.Context) ([]Expense, error) {
	return svc.store.ListExpenses(ctx)
}

func (svc *Service) GetExpense(ctx context.Context, id int) (Expense, bool, error) {
	return svc.store.GetExpense(ctx, id)
}

func (svc *Service) ExpensesByCategory(ctx context.Context, category string) ([]Expense, error) {
	return svc.store.ListExpensesByCategory(ctx, core.CleanString(category))
}

// ExpensesByDateRange returns the expenses dated within [from, to], both bounds inclusive.
func (svc *Service) ExpensesByDateRange(ctx context.Context, from, to time.Time) ([]Expense, error) {
	return svc.store.ListExpensesByDateRange(ctx, core.NormalizeTime(from), core.NormalizeTime(to))
}

func (svc *Service) CreateExpense(ctx context.Context, ne NewExpense) (Expense, error) {
	return svc.store.CreateExpense(ctx, ne.expense())
}

func (svc *Service) UpdateExpense(ctx context.Context, id int, ue UpdateExpense) (Expense, bool, error) {
	e, ok, err := svc.store.GetExpense(ctx, id)
	if err != nil || !ok {
		return Expense{}, ok, err
	}
	ue.apply(&e)
	return svc.store.UpdateExpense(ctx, e)
}

func (svc *Service) DeleteExpense(ctx context.Context, id int) (bool, error) {
	return svc.store.DeleteExpense(ctx, id)
}

// Performances

func (svc *Service) ListPerformances(ctx context.Context) ([]Performance, error) {
	return svc.store.ListPerformances(ctx)
}

func (svc *Service) GetPerformance(ctx context.Context, id int) (Performance, bool, error) {
	return svc.store.GetPerformance(ctx, id)
}

func (svc *Service) StudentPerformances(ctx context.Context, studentID int) ([]Performance, error) {
	return svc.store.ListStudentPerformances(ctx, studentID)
}

// checkMarks keeps the percentage within 0..100.
func checkMarks(p Performance) error {
	if p.ObtainedMarks > p.MaxMarks {
		return core.NewFieldValidationError("obtainedMarks", ErrMarksAboveMax)
	}
	return nil
}

func (svc *Service) CreatePerformance(ctx context.Context, np NewPerformance) (Performance, error) {
	p := np.performance()
	if err := checkMarks(p); err != nil {
		return Performance{}, err
	}
	if err := svc.checkStudentExists(ctx, np.StudentID); err != nil {
		return Performance{}, err
	}
	return svc.store.CreatePerformance(ctx, p)
}

func (svc *Service) UpdatePerformance(ctx context.Context, id int, up UpdatePerformance) (Performance, bool, error) {
	p, ok, err := svc.store.GetPerformance(ctx, id)
	if err != nil || !ok {
		return Performance{}, ok, err
	}
	if up.StudentID != nil && *up.StudentID != p.StudentID {
		if err = svc.checkStudentExists(ctx, *up.StudentID); err != nil {
			return Performance{}, false, err
		}
	}
	up.apply(&p)
	if err = checkMarks(p); err != nil {
		return Performance{}, false, err
	}
	return svc.store.UpdatePerformance(ctx, p)
}

func (svc *Service) DeletePerformance(ctx context.Context, id int) (bool, error) {
	return svc.store.DeletePerformance(ctx, id)
}

// Classes

func (svc *Service) ListClasses(ctx context.Context) ([]Class, error) {
	return svc.store.ListClasses(ctx)
}

func (svc *Service) GetClass(ctx context.Context, id int) (Class, bool, error) {
	return svc.store.GetClass(ctx, id)
}

func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	if err := svc.store.CheckClassUniqueness(ctx, nc.Name, 0); err != nil {
		return Class{}, uniquenessError(err)
	}
	c, err := svc.store.CreateClass(ctx, nc.class())
	if err != nil {
		return Class{}, uniquenessError(err)
	}
	return c, nil
}

func (svc *Service) UpdateClass(ctx context.Context, id int, uc UpdateClass) (Class, bool, error) {
	c, ok, err := svc.store.GetClass(ctx, id)
	if err != nil || !ok {
		return Class{}, ok, err
	}
	uc.apply(&c)
	if err = svc.store.CheckClassUniqueness(ctx, c.Name, id); err != nil {
		return Class{}, false, uniquenessError(err)
	}
	c, ok, err = svc.store.UpdateClass(ctx, c)
	if err != nil {
		return Class{}, false, uniquenessError(err)
	}
	return c, ok, nil
}

func (svc *Service) DeleteClass(ctx context.Context, id int) (bool, error) {
	return svc.store.DeleteClass(ctx, id)
}

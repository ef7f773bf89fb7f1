package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/shule/core/school"
)

func (s *Store) ListExpenses(ctx context.Context) ([]school.Expense, error) {
	return s.db.expense.selectWhere(nil), nil
}

func (s *Store) GetExpense(ctx context.Context, id int) (school.Expense, bool, error) {
	e, ok := s.db.expense.get(id)
	return e, ok, nil
}

func (s *Store) ListExpensesByCategory(ctx context.Context, category string) ([]school.Expense, error) {
	return s.db.expense.selectWhere(func(e school.Expense) bool { return e.Category == category }), nil
}

func (s *Store) ListExpensesByDateRange(ctx context.Context, from, to time.Time) ([]school.Expense, error) {
	return s.db.expense.selectWhere(func(e school.Expense) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}), nil
}

func (s *Store) CreateExpense(ctx context.Context, e school.Expense) (school.Expense, error) {
	return s.db.expense.insert(nil, func(id int) school.Expense {
		e.ID = id
		return e
	})
}

func (s *Store) UpdateExpense(ctx context.Context, e school.Expense) (school.Expense, bool, error) {
	if ok, err := s.db.expense.update(nil, e.ID, e); !ok || err != nil {
		return school.Expense{}, false, err
	}
	return e, true, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id int) (bool, error) {
	return s.db.expense.delete(id), nil
}

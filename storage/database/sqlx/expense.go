package sqlxrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

const (
	insertExpense = `
		INSERT INTO expenses (category, description, amount, "date", payment_method, vendor, invoice_number,
			approved_by, remarks)
		VALUES (:category, :description, :amount, :date, :payment_method, :vendor, :invoice_number,
			:approved_by, :remarks)
		RETURNING *`

	updateExpense = `
		UPDATE expenses SET category = :category, description = :description, amount = :amount,
			"date" = :date, payment_method = :payment_method, vendor = :vendor,
			invoice_number = :invoice_number, approved_by = :approved_by, remarks = :remarks
		WHERE id = :id
		RETURNING *`
)

func normExpense(e *school.Expense) {
	e.Date = utc(e.Date)
}

func (s *Store) selectExpenses(ctx context.Context, query string, args ...interface{}) ([]school.Expense, error) {
	expenses := make([]school.Expense, 0)
	if err := s.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting expenses")
	}
	for i := range expenses {
		normExpense(&expenses[i])
	}
	return expenses, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]school.Expense, error) {
	return s.selectExpenses(ctx, `SELECT * FROM expenses ORDER BY id`)
}

func (s *Store) GetExpense(ctx context.Context, id int) (school.Expense, bool, error) {
	var e school.Expense
	ok, err := s.get(ctx, &e, `SELECT * FROM expenses WHERE id = $1`, id)
	if err != nil || !ok {
		return school.Expense{}, false, errors.Wrap(err, "selecting expense")
	}
	normExpense(&e)
	return e, true, nil
}

func (s *Store) ListExpensesByCategory(ctx context.Context, category string) ([]school.Expense, error) {
	return s.selectExpenses(ctx, `SELECT * FROM expenses WHERE category = $1 ORDER BY id`, category)
}

func (s *Store) ListExpensesByDateRange(ctx context.Context, from, to time.Time) ([]school.Expense, error) {
	return s.selectExpenses(ctx, `SELECT * FROM expenses WHERE "date" BETWEEN $1 AND $2 ORDER BY id`, from, to)
}

func (s *Store) CreateExpense(ctx context.Context, e school.Expense) (school.Expense, error) {
	var created school.Expense
	if _, err := s.namedGet(ctx, &created, insertExpense, e); err != nil {
		return school.Expense{}, errors.Wrap(err, "inserting expense")
	}
	normExpense(&created)
	return created, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e school.Expense) (school.Expense, bool, error) {
	var updated school.Expense
	ok, err := s.namedGet(ctx, &updated, updateExpense, e)
	if err != nil || !ok {
		return school.Expense{}, false, errors.Wrap(err, "updating expense")
	}
	normExpense(&updated)
	return updated, true, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id int) (bool, error) {
	deleted, err := s.delete(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return deleted, errors.Wrap(err, "deleting expense")
}

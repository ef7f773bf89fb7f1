package sqlxrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

const (
	insertFee = `
		INSERT INTO fees (student_id, academic_year, fee_type, amount, due_date, paid_date, paid_amount,
			status, payment_method, transaction_id, remarks)
		VALUES (:student_id, :academic_year, :fee_type, :amount, :due_date, :paid_date, :paid_amount,
			:status, :payment_method, :transaction_id, :remarks)
		RETURNING *`

	updateFee = `
		UPDATE fees SET student_id = :student_id, academic_year = :academic_year, fee_type = :fee_type,
			amount = :amount, due_date = :due_date, paid_date = :paid_date, paid_amount = :paid_amount,
			status = :status, payment_method = :payment_method, transaction_id = :transaction_id,
			remarks = :remarks
		WHERE id = :id
		RETURNING *`
)

func normFee(f *school.Fee) {
	f.DueDate = utc(f.DueDate)
	f.PaidDate = nullUTC(f.PaidDate)
}

func (s *Store) selectFees(ctx context.Context, query string, args ...interface{}) ([]school.Fee, error) {
	fees := make([]school.Fee, 0)
	if err := s.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting fees")
	}
	for i := range fees {
		normFee(&fees[i])
	}
	return fees, nil
}

func (s *Store) ListFees(ctx context.Context) ([]school.Fee, error) {
	return s.selectFees(ctx, `SELECT * FROM fees ORDER BY id`)
}

func (s *Store) GetFee(ctx context.Context, id int) (school.Fee, bool, error) {
	var f school.Fee
	ok, err := s.get(ctx, &f, `SELECT * FROM fees WHERE id = $1`, id)
	if err != nil || !ok {
		return school.Fee{}, false, errors.Wrap(err, "selecting fee")
	}
	normFee(&f)
	return f, true, nil
}

func (s *Store) ListStudentFees(ctx context.Context, studentID int) ([]school.Fee, error) {
	return s.selectFees(ctx, `SELECT * FROM fees WHERE student_id = $1 ORDER BY id`, studentID)
}

func (s *Store) ListOverdueFees(ctx context.Context, asOf time.Time) ([]school.Fee, error) {
	return s.selectFees(ctx, `SELECT * FROM fees WHERE status = $1 AND due_date < $2 ORDER BY id`, school.FeePending, asOf)
}

func (s *Store) ListPendingFees(ctx context.Context) ([]school.Fee, error) {
	return s.selectFees(ctx, `SELECT * FROM fees WHERE status IN ($1, $2) ORDER BY id`, school.FeePending, school.FeePartial)
}

func (s *Store) CreateFee(ctx context.Context, f school.Fee) (school.Fee, error) {
	var created school.Fee
	if _, err := s.namedGet(ctx, &created, insertFee, f); err != nil {
		return school.Fee{}, errors.Wrap(err, "inserting fee")
	}
	normFee(&created)
	return created, nil
}

func (s *Store) UpdateFee(ctx context.Context, f school.Fee) (school.Fee, bool, error) {
	var updated school.Fee
	ok, err := s.namedGet(ctx, &updated, updateFee, f)
	if err != nil || !ok {
		return school.Fee{}, false, errors.Wrap(err, "updating fee")
	}
	normFee(&updated)
	return updated, true, nil
}

func (s *Store) DeleteFee(ctx context.Context, id int) (bool, error) {
	deleted, err := s.delete(ctx, `DELETE FROM fees WHERE id = $1`, id)
	return deleted, errors.Wrap(err, "deleting fee")
}

package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/shule/core/school"
)

func (s *Store) ListFees(ctx context.Context) ([]school.Fee, error) {
	return s.db.fee.selectWhere(nil), nil
}

func (s *Store) GetFee(ctx context.Context, id int) (school.Fee, bool, error) {
	f, ok := s.db.fee.get(id)
	return f, ok, nil
}

func (s *Store) ListStudentFees(ctx context.Context, studentID int) ([]school.Fee, error) {
	return s.db.fee.selectWhere(func(f school.Fee) bool { return f.StudentID == studentID }), nil
}

func (s *Store) ListOverdueFees(ctx context.Context, asOf time.Time) ([]school.Fee, error) {
	return s.db.fee.selectWhere(func(f school.Fee) bool { return f.IsOverdue(asOf) }), nil
}

func (s *Store) ListPendingFees(ctx context.Context) ([]school.Fee, error) {
	return s.db.fee.selectWhere(func(f school.Fee) bool {
		return f.Status == school.FeePending || f.Status == school.FeePartial
	}), nil
}

func (s *Store) CreateFee(ctx context.Context, f school.Fee) (school.Fee, error) {
	return s.db.fee.insert(nil, func(id int) school.Fee {
		f.ID = id
		return f
	})
}

func (s *Store) UpdateFee(ctx context.Context, f school.Fee) (school.Fee, bool, error) {
	if ok, err := s.db.fee.update(nil, f.ID, f); !ok || err != nil {
		return school.Fee{}, false, err
	}
	return f, true, nil
}

func (s *Store) DeleteFee(ctx context.Context, id int) (bool, error) {
	return s.db.fee.delete(id), nil
}

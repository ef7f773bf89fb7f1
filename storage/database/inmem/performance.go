package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/school"
)

func (s *Store) ListPerformances(ctx context.Context) ([]school.Performance, error) {
	return s.db.performance.selectWhere(nil), nil
}

func (s *Store) GetPerformance(ctx context.Context, id int) (school.Performance, bool, error) {
	p, ok := s.db.performance.get(id)
	return p, ok, nil
}

func (s *Store) ListStudentPerformances(ctx context.Context, studentID int) ([]school.Performance, error) {
	return s.db.performance.selectWhere(func(p school.Performance) bool { return p.StudentID == studentID }), nil
}

func (s *Store) CreatePerformance(ctx context.Context, p school.Performance) (school.Performance, error) {
	return s.db.performance.insert(nil, func(id int) school.Performance {
		p.ID = id
		return p
	})
}

func (s *Store) UpdatePerformance(ctx context.Context, p school.Performance) (school.Performance, bool, error) {
	if ok, err := s.db.performance.update(nil, p.ID, p); !ok || err != nil {
		return school.Performance{}, false, err
	}
	return p, true, nil
}

func (s *Store) DeletePerformance(ctx context.Context, id int) (bool, error) {
	return s.db.performance.delete(id), nil
}

package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

const (
	insertPerformance = `
		INSERT INTO performances (student_id, subject, exam_type, academic_year, term, max_marks,
			obtained_marks, grade, percentage, exam_date, remarks)
		VALUES (:student_id, :subject, :exam_type, :academic_year, :term, :max_marks,
			:obtained_marks, :grade, :percentage, :exam_date, :remarks)
		RETURNING *`

	updatePerformance = `
		UPDATE performances SET student_id = :student_id, subject = :subject, exam_type = :exam_type,
			academic_year = :academic_year, term = :term, max_marks = :max_marks,
			obtained_marks = :obtained_marks, grade = :grade, percentage = :percentage,
			exam_date = :exam_date, remarks = :remarks
		WHERE id = :id
		RETURNING *`
)

func normPerformance(p *school.Performance) {
	p.ExamDate = nullUTC(p.ExamDate)
}

func (s *Store) selectPerformances(ctx context.Context, query string, args ...interface{}) ([]school.Performance, error) {
	perfs := make([]school.Performance, 0)
	if err := s.db.SelectContext(ctx, &perfs, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting performances")
	}
	for i := range perfs {
		normPerformance(&perfs[i])
	}
	return perfs, nil
}

func (s *Store) ListPerformances(ctx context.Context) ([]school.Performance, error) {
	return s.selectPerformances(ctx, `SELECT * FROM performances ORDER BY id`)
}

func (s *Store) GetPerformance(ctx context.Context, id int) (school.Performance, bool, error) {
	var p school.Performance
	ok, err := s.get(ctx, &p, `SELECT * FROM performances WHERE id = $1`, id)
	if err != nil || !ok {
		return school.Performance{}, false, errors.Wrap(err, "selecting performance")
	}
	normPerformance(&p)
	return p, true, nil
}

func (s *Store) ListStudentPerformances(ctx context.Context, studentID int) ([]school.Performance, error) {
	return s.selectPerformances(ctx, `SELECT * FROM performances WHERE student_id = $1 ORDER BY id`, studentID)
}

func (s *Store) CreatePerformance(ctx context.Context, p school.Performance) (school.Performance, error) {
	var created school.Performance
	if _, err := s.namedGet(ctx, &created, insertPerformance, p); err != nil {
		return school.Performance{}, errors.Wrap(err, "inserting performance")
	}
	normPerformance(&created)
	return created, nil
}

func (s *Store) UpdatePerformance(ctx context.Context, p school.Performance) (school.Performance, bool, error) {
	var updated school.Performance
	ok, err := s.namedGet(ctx, &updated, updatePerformance, p)
	if err != nil || !ok {
		return school.Performance{}, false, errors.Wrap(err, "updating performance")
	}
	normPerformance(&updated)
	return updated, true, nil
}

func (s *Store) DeletePerformance(ctx context.Context, id int) (bool, error) {
	deleted, err := s.delete(ctx, `DELETE FROM performances WHERE id = $1`, id)
	return deleted, errors.Wrap(err, "deleting performance")
}

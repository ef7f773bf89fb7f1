package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

const (
	insertStudent = `
		INSERT INTO students (registry_no, first_name, last_name, email, phone, date_of_birth, address,
			"class", section, admission_date, guardian_name, guardian_phone, status)
		VALUES (:registry_no, :first_name, :last_name, :email, :phone, :date_of_birth, :address,
			:class, :section, :admission_date, :guardian_name, :guardian_phone, :status)
		RETURNING *`

	updateStudent = `
		UPDATE students SET registry_no = :registry_no, first_name = :first_name, last_name = :last_name,
			email = :email, phone = :phone, date_of_birth = :date_of_birth, address = :address,
			"class" = :class, section = :section, admission_date = :admission_date,
			guardian_name = :guardian_name, guardian_phone = :guardian_phone, status = :status
		WHERE id = :id
		RETURNING *`
)

func normStudent(s *school.Student) {
	s.DateOfBirth = nullUTC(s.DateOfBirth)
	s.AdmissionDate = utc(s.AdmissionDate)
}

func (s *Store) ListStudents(ctx context.Context) ([]school.Student, error) {
	students := make([]school.Student, 0)
	if err := s.db.SelectContext(ctx, &students, `SELECT * FROM students ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	for i := range students {
		normStudent(&students[i])
	}
	return students, nil
}

func (s *Store) getStudent(ctx context.Context, query string, arg interface{}) (school.Student, bool, error) {
	var std school.Student
	ok, err := s.get(ctx, &std, query, arg)
	if err != nil || !ok {
		return school.Student{}, false, errors.Wrap(err, "selecting student")
	}
	normStudent(&std)
	return std, true, nil
}

func (s *Store) GetStudent(ctx context.Context, id int) (school.Student, bool, error) {
	return s.getStudent(ctx, `SELECT * FROM students WHERE id = $1`, id)
}

func (s *Store) GetStudentByRegistryNo(ctx context.Context, registryNo string) (school.Student, bool, error) {
	return s.getStudent(ctx, `SELECT * FROM students WHERE registry_no = $1`, registryNo)
}

func (s *Store) CheckStudentUniqueness(ctx context.Context, registryNo, email string, excludeID int) error {
	var taken []struct {
		RegistryNo string `db:"registry_no"`
		Email      string `db:"email"`
	}
	err := s.db.SelectContext(
		ctx, &taken,
		`SELECT registry_no, email FROM students WHERE (registry_no = $1 OR email = $2) AND id <> $3`,
		registryNo, email, excludeID,
	)
	if err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	for _, t := range taken {
		if t.RegistryNo == registryNo {
			return school.ErrRegistryNoExists
		}
	}
	if len(taken) > 0 {
		return school.ErrEmailExists
	}
	return nil
}

func (s *Store) CreateStudent(ctx context.Context, std school.Student) (school.Student, error) {
	if err := s.CheckStudentUniqueness(ctx, std.RegistryNo, std.Email, 0); err != nil {
		return school.Student{}, err
	}
	var created school.Student
	if _, err := s.namedGet(ctx, &created, insertStudent, std); err != nil {
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	normStudent(&created)
	return created, nil
}

func (s *Store) UpdateStudent(ctx context.Context, std school.Student) (school.Student, bool, error) {
	var updated school.Student
	ok, err := s.namedGet(ctx, &updated, updateStudent, std)
	if err != nil || !ok {
		return school.Student{}, false, errors.Wrap(err, "updating student")
	}
	normStudent(&updated)
	return updated, true, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int) (bool, error) {
	deleted, err := s.delete(ctx, `DELETE FROM students WHERE id = $1`, id)
	return deleted, errors.Wrap(err, "deleting student")
}

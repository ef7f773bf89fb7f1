package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/school"
)

func (s *Store) ListStudents(ctx context.Context) ([]school.Student, error) {
	return s.db.student.selectWhere(nil), nil
}

func (s *Store) GetStudent(ctx context.Context, id int) (school.Student, bool, error) {
	std, ok := s.db.student.get(id)
	return std, ok, nil
}

func (s *Store) GetStudentByRegistryNo(ctx context.Context, registryNo string) (school.Student, bool, error) {
	std, ok := s.db.student.first(func(std school.Student) bool { return std.RegistryNo == registryNo })
	return std, ok, nil
}

func (s *Store) CheckStudentUniqueness(ctx context.Context, registryNo, email string, excludeID int) error {
	others := s.db.student.selectWhere(func(std school.Student) bool { return std.ID != excludeID })
	return studentConflict(registryNo, email)(others)
}

// studentConflict checks the registry number before the email.
func studentConflict(registryNo, email string) conflictFunc[school.Student] {
	return func(others []school.Student) error {
		for _, std := range others {
			if std.RegistryNo == registryNo {
				return school.ErrRegistryNoExists
			}
		}
		for _, std := range others {
			if std.Email == email {
				return school.ErrEmailExists
			}
		}
		return nil
	}
}

func (s *Store) CreateStudent(ctx context.Context, std school.Student) (school.Student, error) {
	return s.db.student.insert(studentConflict(std.RegistryNo, std.Email), func(id int) school.Student {
		std.ID = id
		return std
	})
}

func (s *Store) UpdateStudent(ctx context.Context, std school.Student) (school.Student, bool, error) {
	if ok, err := s.db.student.update(studentConflict(std.RegistryNo, std.Email), std.ID, std); !ok || err != nil {
		return school.Student{}, false, err
	}
	return std, true, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int) (bool, error) {
	return s.db.student.delete(id), nil
}

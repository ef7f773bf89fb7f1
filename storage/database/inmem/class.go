package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/school"
)

func (s *Store) ListClasses(ctx context.Context) ([]school.Class, error) {
	return s.db.class.selectWhere(nil), nil
}

func (s *Store) GetClass(ctx context.Context, id int) (school.Class, bool, error) {
	c, ok := s.db.class.get(id)
	return c, ok, nil
}

func (s *Store) GetClassByName(ctx context.Context, name string) (school.Class, bool, error) {
	c, ok := s.db.class.first(func(c school.Class) bool { return c.Name == name })
	return c, ok, nil
}

func (s *Store) CheckClassUniqueness(ctx context.Context, name string, excludeID int) error {
	others := s.db.class.selectWhere(func(c school.Class) bool { return c.ID != excludeID })
	return classConflict(name)(others)
}

func classConflict(name string) conflictFunc[school.Class] {
	return func(others []school.Class) error {
		for _, c := range others {
			if c.Name == name {
				return school.ErrClassNameExists
			}
		}
		return nil
	}
}

func (s *Store) CreateClass(ctx context.Context, c school.Class) (school.Class, error) {
	return s.db.class.insert(classConflict(c.Name), func(id int) school.Class {
		c.ID = id
		return c
	})
}

func (s *Store) UpdateClass(ctx context.Context, c school.Class) (school.Class, bool, error) {
	if ok, err := s.db.class.update(classConflict(c.Name), c.ID, c); !ok || err != nil {
		return school.Class{}, false, err
	}
	return c, true, nil
}

func (s *Store) DeleteClass(ctx context.Context, id int) (bool, error) {
	return s.db.class.delete(id), nil
}

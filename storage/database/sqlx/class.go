package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

const (
	insertClass = `
		INSERT INTO classes (name, standard, section, class_teacher, room, capacity)
		VALUES (:name, :standard, :section, :class_teacher, :room, :capacity)
		RETURNING *`

	updateClass = `
		UPDATE classes SET name = :name, standard = :standard, section = :section,
			class_teacher = :class_teacher, room = :room, capacity = :capacity
		WHERE id = :id
		RETURNING *`
)

func (s *Store) ListClasses(ctx context.Context) ([]school.Class, error) {
	classes := make([]school.Class, 0)
	if err := s.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting classes")
	}
	return classes, nil
}

func (s *Store) getClass(ctx context.Context, query string, arg interface{}) (school.Class, bool, error) {
	var c school.Class
	ok, err := s.get(ctx, &c, query, arg)
	if err != nil || !ok {
		return school.Class{}, false, errors.Wrap(err, "selecting class")
	}
	return c, true, nil
}

func (s *Store) GetClass(ctx context.Context, id int) (school.Class, bool, error) {
	return s.getClass(ctx, `SELECT * FROM classes WHERE id = $1`, id)
}

func (s *Store) GetClassByName(ctx context.Context, name string) (school.Class, bool, error) {
	return s.getClass(ctx, `SELECT * FROM classes WHERE name = $1`, name)
}

func (s *Store) CheckClassUniqueness(ctx context.Context, name string, excludeID int) error {
	var taken bool
	err := s.db.GetContext(ctx, &taken, `SELECT EXISTS (SELECT 1 FROM classes WHERE name = $1 AND id <> $2)`, name, excludeID)
	if err != nil {
		return errors.Wrap(err, "checking class uniqueness")
	}
	if taken {
		return school.ErrClassNameExists
	}
	return nil
}

func (s *Store) CreateClass(ctx context.Context, c school.Class) (school.Class, error) {
	if err := s.CheckClassUniqueness(ctx, c.Name, 0); err != nil {
		return school.Class{}, err
	}
	var created school.Class
	if _, err := s.namedGet(ctx, &created, insertClass, c); err != nil {
		return school.Class{}, errors.Wrap(err, "inserting class")
	}
	return created, nil
}

func (s *Store) UpdateClass(ctx context.Context, c school.Class) (school.Class, bool, error) {
	var updated school.Class
	ok, err := s.namedGet(ctx, &updated, updateClass, c)
	if err != nil || !ok {
		return school.Class{}, false, errors.Wrap(err, "updating class")
	}
	return updated, true, nil
}

func (s *Store) DeleteClass(ctx context.Context, id int) (bool, error) {
	deleted, err := s.delete(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return deleted, errors.Wrap(err, "deleting class")
}

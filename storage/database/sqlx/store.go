package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/school"
)

const uniqueViolation = "23505"

// constraint name => uniqueness error
var uniqueConstraints = map[string]error{
	"students_registry_no_key": school.ErrRegistryNoExists,
	"students_email_key":       school.ErrEmailExists,
	"classes_name_key":         school.ErrClassNameExists,
}

// Store is the PostgreSQL school.Store.
type Store struct {
	db *sqlx.DB
}

var _ school.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// mapError turns unique violations into their school errors.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if uErr, ok := uniqueConstraints[pqErr.Constraint]; ok {
			return uErr
		}
	}
	return err
}

// namedGet runs a named query expected to return at most one row and scans it into dest.
func (s *Store) namedGet(ctx context.Context, dest interface{}, query string, arg interface{}) (bool, error) {
	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, arg)
	if err != nil {
		return false, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return false, mapError(rows.Err())
	}
	if err = rows.StructScan(dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := s.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) delete(ctx context.Context, query string, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Scanned timestamps come back in the session zone: keep everything in UTC.

func utc(t time.Time) time.Time { return t.UTC() }

func nullUTC(t null.Time) null.Time {
	if t.Valid {
		t.Time = t.Time.UTC()
	}
	return t
}

package inmemdb

import (
	"sort"
	"sync"

	"github.com/trezcool/shule/core/school"
)

type (
	// DB holds one table per entity; ids are assigned from a per-table counter starting at 1
	// and are never reused.
	DB struct {
		student     *table[school.Student]
		fee         *table[school.Fee]
		expense     *table[school.Expense]
		performance *table[school.Performance]
		class       *table[school.Class]
	}

	table[T any] struct {
		sync.RWMutex
		rows  map[int]T
		pkSeq int
	}
)

func Open() *DB {
	return &DB{
		student:     newTable[school.Student](),
		fee:         newTable[school.Fee](),
		expense:     newTable[school.Expense](),
		performance: newTable[school.Performance](),
		class:       newTable[school.Class](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

// selectWhere returns the rows matching keep (all rows if keep is nil), by ascending id.
func (t *table[T]) selectWhere(keep func(T) bool) []T {
	t.RLock()
	defer t.RUnlock()

	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		if row := t.rows[id]; keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) first(keep func(T) bool) (T, bool) {
	rows := t.selectWhere(keep)
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// conflictFunc reports a uniqueness violation against the other rows of a table.
type conflictFunc[T any] func(others []T) error

// others returns every row but excludeID's, by ascending id. The caller must hold the lock.
func (t *table[T]) others(excludeID int) []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		if id != excludeID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

// insert stores the row returned by withID for the next primary key.
// A nil conflict skips uniqueness checks.
func (t *table[T]) insert(conflict conflictFunc[T], withID func(id int) T) (T, error) {
	t.Lock()
	defer t.Unlock()

	if conflict != nil {
		if err := conflict(t.others(0)); err != nil {
			var zero T
			return zero, err
		}
	}
	t.pkSeq++
	row := withID(t.pkSeq)
	t.rows[t.pkSeq] = row
	return row, nil
}

func (t *table[T]) update(conflict conflictFunc[T], id int, row T) (bool, error) {
	t.Lock()
	defer t.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false, nil
	}
	if conflict != nil {
		if err := conflict(t.others(id)); err != nil {
			return false, err
		}
	}
	t.rows[id] = row
	return true, nil
}

func (t *table[T]) delete(id int) bool {
	t.Lock()
	defer t.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// Store is the in-memory school.Store.
type Store struct {
	db *DB
}

var _ school.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

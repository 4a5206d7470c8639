package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

type rowsAffected int64

func (rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

func TestNotFoundMapping(t *testing.T) {
	malformed := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "foo"`}
	other := &pq.Error{Code: "23503", Message: "foreign key violation"}

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"malformed id", malformed, ErrNotFound},
		{"wrapped malformed id", fmt.Errorf("query: %w", malformed), ErrNotFound},
		{"other database error", other, other},
	}
	for _, tc := range cases {
		if got := notFound(tc.err); !errors.Is(got, tc.want) {
			t.Errorf("%s: notFound = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAffectedOrNotFound(t *testing.T) {
	malformed := &pq.Error{Code: "22P02"}

	if err := affectedOrNotFound(nil, malformed); !errors.Is(err, ErrNotFound) {
		t.Errorf("malformed id: %v, want ErrNotFound", err)
	}
	if err := affectedOrNotFound(rowsAffected(0), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("zero rows: %v, want ErrNotFound", err)
	}
	if err := affectedOrNotFound(rowsAffected(1), nil); err != nil {
		t.Errorf("one row: %v", err)
	}
}

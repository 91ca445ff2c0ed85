package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Dates are stored as TEXT in domain.DateLayout; NULL means "not scheduled".

func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableDateToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}

// nullableStringToValue maps nil and "" to NULL so optional references such
// as sprint_id and assignee_id stay unset.
func nullableStringToValue(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullableFromNullString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// nowUTC stamps created_at columns.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// rowScanner lets one scan function serve QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

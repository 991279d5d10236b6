package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"movie-recommendation-service/internal/apperr"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func newID() string {
	return uuid.NewString()
}

// translate maps driver errors to domain errors.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(notFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return apperr.Conflict(conflictMessage(pqErr))
		case invalidTextRepresentation:
			// a malformed uuid can never match a row
			return apperr.NotFound(notFound)
		}
	}
	return err
}

func conflictMessage(e *pq.Error) string {
	switch {
	case strings.Contains(e.Constraint, "username"):
		return "username is already taken"
	case strings.Contains(e.Constraint, "email"):
		return "email is already registered"
	case strings.Contains(e.Constraint, "forums_name"):
		return "a forum with this name already exists"
	default:
		return "resource already exists"
	}
}

// expectAffected returns a not-found error when an UPDATE or DELETE touched no row.
func expectAffected(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(notFound)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullableString(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

// updateBuilder accumulates SET clauses for a partial update.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build returns "UPDATE table SET ... WHERE id = $n" with the id appended to args.
func (b *updateBuilder) build(table, id string, extra ...string) (string, []interface{}) {
	sets := append(append([]string{}, b.sets...), extra...)
	args := append(append([]interface{}{}, b.args...), id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args)), args
}

// lookupNames resolves ids in the given table to their name column.
func lookupNames(ctx context.Context, db *sql.DB, table, column string, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	query := fmt.Sprintf(`SELECT id::text, %s FROM %s WHERE id::text = ANY($1)`, column, table)
	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup %s names: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
)

// LabelRepository stores labels in the labels table.
type LabelRepository struct {
	db *database.DB
	q  labelQueries
}

type labelQueries struct {
	insert     string
	idByName   string
	selectAll  string
	deleteByID string
}

// NewLabelRepository creates a LabelRepository bound to db.
func NewLabelRepository(db *database.DB) *LabelRepository {
	d := db.Dialect()
	insert := `INSERT INTO labels (name) VALUES (?)`
	if d.SupportsReturning() {
		insert += ` RETURNING id`
	}

	return &LabelRepository{
		db: db,
		q: labelQueries{
			insert:     d.Rebind(insert),
			idByName:   d.Rebind(`SELECT id FROM labels WHERE name = ?`),
			selectAll:  `SELECT id, name FROM labels ORDER BY id`,
			deleteByID: d.Rebind(`DELETE FROM labels WHERE id = ?`),
		},
	}
}

// Create inserts a label after checking that the name is free. A unique
// violation from a concurrent insert is reported the same way as the
// pre-check: a *domain.DuplicateError carrying the existing label's ID.
func (r *LabelRepository) Create(ctx context.Context, in label.Create) (*label.Label, error) {
	var created *label.Label

	err := r.db.Do(ctx, "label.create", func(ctx context.Context, conn *sql.DB) error {
		if err := r.checkFree(ctx, conn, in.Name); err != nil {
			return err
		}

		id, err := insertReturningID(ctx, conn, r.db.Dialect(), r.q.insert, in.Name)
		if err == nil {
			created = &label.Label{ID: id, Name: in.Name}
			return nil
		}
		if !isUniqueViolation(err) {
			return domain.Unexpected(err)
		}
		if err := r.checkFree(ctx, conn, in.Name); err != nil {
			return err
		}
		return domain.Unexpected(fmt.Errorf("unique violation without existing label: %w", err))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// checkFree returns a *domain.DuplicateError when a label named name exists.
func (r *LabelRepository) checkFree(ctx context.Context, conn *sql.DB, name string) error {
	var existing int64
	err := conn.QueryRowContext(ctx, r.q.idByName, name).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return domain.Unexpected(err)
	default:
		return &domain.DuplicateError{Resource: label.Resource, ID: existing}
	}
}

// All returns every label ordered by ID.
func (r *LabelRepository) All(ctx context.Context) ([]label.Label, error) {
	out := []label.Label{}

	err := r.db.Do(ctx, "label.all", func(ctx context.Context, conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, r.q.selectAll)
		if err != nil {
			return domain.Unexpected(err)
		}
		defer rows.Close()

		for rows.Next() {
			var l label.Label
			if err := rows.Scan(&l.ID, &l.Name); err != nil {
				return domain.Unexpected(err)
			}
			out = append(out, l)
		}
		return domain.Unexpected(rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a label. The todo_labels foreign key cascades, detaching the
// label from every todo in the same statement.
func (r *LabelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, "label.delete", func(ctx context.Context, conn *sql.DB) error {
		return deleteOne(ctx, conn, r.q.deleteByID, id, label.Resource)
	})
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertReturningID runs an INSERT and reports the generated ID, using
// RETURNING where the dialect has it and LastInsertId otherwise.
func insertReturningID(ctx context.Context, ex execer, d database.Dialect, query string, args ...any) (int64, error) {
	if d.SupportsReturning() {
		var id int64
		err := ex.QueryRowContext(ctx, query, args...).Scan(&id)
		return id, err
	}

	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// deleteOne deletes a single row by ID and maps "no rows affected" to a
// *domain.NotFoundError.
func deleteOne(ctx context.Context, ex execer, query string, id int64, resource string) error {
	res, err := ex.ExecContext(ctx, query, id)
	if err != nil {
		return domain.Unexpected(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Unexpected(err)
	}
	if n == 0 {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

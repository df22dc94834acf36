package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
)

const selectTodoWithLabels = `SELECT t.id, t.text, t.completed, l.id, l.name
FROM todos t
LEFT JOIN todo_labels tl ON tl.todo_id = t.id
LEFT JOIN labels l ON l.id = tl.label_id`

// TodoRepository stores todos in the todos table and their label
// assignments in todo_labels.
type TodoRepository struct {
	db *database.DB
	q  todoQueries
}

type todoQueries struct {
	insert      string
	selectByID  string
	selectAll   string
	lockByID    string
	update      string
	clearLabels string
	insertLabel string
	deleteByID  string
	labelsIn    string // format string; %s receives the placeholder list
}

// NewTodoRepository creates a TodoRepository bound to db.
func NewTodoRepository(db *database.DB) *TodoRepository {
	d := db.Dialect()

	insert := `INSERT INTO todos (text, completed) VALUES (?, ?)`
	if d.SupportsReturning() {
		insert += ` RETURNING id`
	}

	// SQLite serializes writers on its single connection and has no row locks.
	lockRow, shareRows := "", ""
	if d != database.SQLite {
		lockRow, shareRows = " FOR UPDATE", " FOR SHARE"
	}

	return &TodoRepository{
		db: db,
		q: todoQueries{
			insert:      d.Rebind(insert),
			selectByID:  d.Rebind(selectTodoWithLabels + ` WHERE t.id = ? ORDER BY tl.position`),
			selectAll:   selectTodoWithLabels + ` ORDER BY t.id DESC, tl.position`,
			lockByID:    d.Rebind(`SELECT id FROM todos WHERE id = ?` + lockRow),
			update:      d.Rebind(`UPDATE todos SET text = COALESCE(?, text), completed = COALESCE(?, completed) WHERE id = ?`),
			clearLabels: d.Rebind(`DELETE FROM todo_labels WHERE todo_id = ?`),
			insertLabel: d.Rebind(`INSERT INTO todo_labels (todo_id, label_id, position) VALUES (?, ?, ?)`),
			deleteByID:  d.Rebind(`DELETE FROM todos WHERE id = ?`),
			labelsIn:    `SELECT id FROM labels WHERE id IN (%s)` + shareRows,
		},
	}
}

// Create inserts a todo that is not completed and has no labels.
func (r *TodoRepository) Create(ctx context.Context, in todo.Create) (*todo.Todo, error) {
	var created *todo.Todo

	err := r.db.Do(ctx, "todo.create", func(ctx context.Context, conn *sql.DB) error {
		id, err := insertReturningID(ctx, conn, r.db.Dialect(), r.q.insert, in.Text, false)
		if err != nil {
			return domain.Unexpected(err)
		}
		created = &todo.Todo{ID: id, Text: in.Text}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Find returns one todo with its labels in assignment order.
func (r *TodoRepository) Find(ctx context.Context, id int64) (*todo.Todo, error) {
	var found *todo.Todo

	err := r.db.Do(ctx, "todo.find", func(ctx context.Context, conn *sql.DB) error {
		var err error
		found, err = r.find(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// All returns every todo, newest first.
func (r *TodoRepository) All(ctx context.Context) ([]todo.Todo, error) {
	var all []todo.Todo

	err := r.db.Do(ctx, "todo.all", func(ctx context.Context, conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, r.q.selectAll)
		if err != nil {
			return domain.Unexpected(err)
		}
		all, err = scanTodos(rows)
		return domain.Unexpected(err)
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// Update applies a partial update in one transaction. The todo row is locked
// first, then the referenced labels are checked; any failure rolls back so
// nothing is written.
func (r *TodoRepository) Update(ctx context.Context, id int64, in todo.Update) (*todo.Todo, error) {
	var updated *todo.Todo

	err := r.db.Do(ctx, "todo.update", func(ctx context.Context, conn *sql.DB) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return domain.Unexpected(err)
		}
		defer func() { _ = tx.Rollback() }()

		var locked int64
		if err := tx.QueryRowContext(ctx, r.q.lockByID, id).Scan(&locked); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &domain.NotFoundError{Resource: todo.Resource, ID: id}
			}
			return domain.Unexpected(err)
		}

		if in.Text != nil || in.Completed != nil {
			if _, err := tx.ExecContext(ctx, r.q.update, nullable(in.Text), nullable(in.Completed), id); err != nil {
				return domain.Unexpected(err)
			}
		}

		if in.HasLabels() {
			if err := r.replaceLabels(ctx, tx, id, in.LabelIDs()); err != nil {
				return err
			}
		}

		updated, err = r.find(ctx, tx, id)
		if err != nil {
			return err
		}
		return domain.Unexpected(tx.Commit())
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a todo. Its label assignments cascade.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Do(ctx, "todo.delete", func(ctx context.Context, conn *sql.DB) error {
		return deleteOne(ctx, conn, r.q.deleteByID, id, todo.Resource)
	})
}

func (r *TodoRepository) find(ctx context.Context, ex execer, id int64) (*todo.Todo, error) {
	rows, err := ex.QueryContext(ctx, r.q.selectByID, id)
	if err != nil {
		return nil, domain.Unexpected(err)
	}

	todos, err := scanTodos(rows)
	if err != nil {
		return nil, domain.Unexpected(err)
	}
	if len(todos) == 0 {
		return nil, &domain.NotFoundError{Resource: todo.Resource, ID: id}
	}
	return &todos[0], nil
}

// replaceLabels swaps the todo's label set for ids, in order. Every id must
// exist; the first unknown one is reported.
func (r *TodoRepository) replaceLabels(ctx context.Context, tx *sql.Tx, todoID int64, ids []int64) error {
	if err := r.checkLabels(ctx, tx, ids); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, r.q.clearLabels, todoID); err != nil {
		return domain.Unexpected(err)
	}
	for pos, labelID := range ids {
		if _, err := tx.ExecContext(ctx, r.q.insertLabel, todoID, labelID, pos); err != nil {
			return domain.Unexpected(err)
		}
	}
	return nil
}

// checkLabels verifies that every id names a label, holding a share lock on
// the rows where the dialect supports it so they cannot be deleted before
// commit.
func (r *TodoRepository) checkLabels(ctx context.Context, tx *sql.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := r.db.Dialect().Rebind(fmt.Sprintf(r.q.labelsIn, database.Placeholders(len(ids))))
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Unexpected(err)
	}
	defer rows.Close()

	known := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return domain.Unexpected(err)
		}
		known[id] = true
	}
	if err := rows.Err(); err != nil {
		return domain.Unexpected(err)
	}

	for _, id := range ids {
		if !known[id] {
			return &domain.InvalidReferenceError{Resource: label.Resource, ID: id}
		}
	}
	return nil
}

// joinRow is one row of the todo/label LEFT JOIN. A todo without labels
// yields a single row with a NULL label.
type joinRow struct {
	todoID    int64
	text      string
	completed bool
	labelID   sql.NullInt64
	labelName sql.NullString
}

func scanTodos(rows *sql.Rows) ([]todo.Todo, error) {
	defer rows.Close()

	var joined []joinRow
	for rows.Next() {
		var jr joinRow
		if err := rows.Scan(&jr.todoID, &jr.text, &jr.completed, &jr.labelID, &jr.labelName); err != nil {
			return nil, err
		}
		joined = append(joined, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return foldRows(joined), nil
}

// foldRows groups rows by todo id into one Todo each. Todos keep the order
// of their first row; labels keep row order within a todo.
func foldRows(joined []joinRow) []todo.Todo {
	out := []todo.Todo{}
	index := make(map[int64]int, len(joined))
	for _, jr := range joined {
		i, ok := index[jr.todoID]
		if !ok {
			i = len(out)
			index[jr.todoID] = i
			out = append(out, todo.Todo{ID: jr.todoID, Text: jr.text, Completed: jr.completed})
		}
		if jr.labelID.Valid {
			out[i].Labels = append(out[i].Labels, label.Label{ID: jr.labelID.Int64, Name: jr.labelName.String})
		}
	}
	return out
}

// nullable turns a nil pointer into SQL NULL so COALESCE keeps the stored
// value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Package sqlstore implements the repository ports on top of a relational
// database reached through database/sql. PostgreSQL, SQLite and MySQL are
// supported; dialect differences are confined to the schema and to how new
// IDs are read back after an INSERT.
//
// Every call runs inside database.DB.Do, so it is traced, metered, rate
// limited and guarded by the circuit breaker.
//
//	db, err := database.Open(ctx, &cfg.Storage, metrics, logger)
//	if err := sqlstore.Migrate(ctx, db); err != nil { ... }
//	store := sqlstore.NewStore(db)
//	created, err := store.Todos.Create(ctx, todo.Create{Text: "buy milk"})
package sqlstore

import "github.com/jsamuelsen11/todo-service/internal/platform/database"

// Store bundles the repositories backed by one database handle.
type Store struct {
	Todos  *TodoRepository
	Labels *LabelRepository
}

// NewStore creates repositories that share db.
func NewStore(db *database.DB) *Store {
	return &Store{
		Todos:  NewTodoRepository(db),
		Labels: NewLabelRepository(db),
	}
}

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jsamuelsen11/todo-service/internal/platform/database"
)

// Labels on a todo are stored in todo_labels together with their position so
// reads return them in the order they were assigned. Both foreign keys
// cascade: deleting a todo or a label removes its join rows.
var schemas = map[database.Dialect][]string{
	database.Postgres: {
		`CREATE TABLE IF NOT EXISTS todos (
			id        BIGSERIAL PRIMARY KEY,
			text      VARCHAR(100) NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS labels (
			id   BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS todo_labels (
			todo_id  BIGINT NOT NULL REFERENCES todos (id) ON DELETE CASCADE,
			label_id BIGINT NOT NULL REFERENCES labels (id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			PRIMARY KEY (todo_id, label_id)
		)`,
		`CREATE INDEX IF NOT EXISTS todo_labels_label_id_idx ON todo_labels (label_id)`,
	},
	database.SQLite: {
		`CREATE TABLE IF NOT EXISTS todos (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			text      TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS labels (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS todo_labels (
			todo_id  INTEGER NOT NULL REFERENCES todos (id) ON DELETE CASCADE,
			label_id INTEGER NOT NULL REFERENCES labels (id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			PRIMARY KEY (todo_id, label_id)
		)`,
		`CREATE INDEX IF NOT EXISTS todo_labels_label_id_idx ON todo_labels (label_id)`,
	},
	database.MySQL: {
		`CREATE TABLE IF NOT EXISTS todos (
			id        BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			text      VARCHAR(100) NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS labels (
			id   BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			UNIQUE KEY labels_name_key (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
		`CREATE TABLE IF NOT EXISTS todo_labels (
			todo_id  BIGINT NOT NULL,
			label_id BIGINT NOT NULL,
			position INT NOT NULL,
			PRIMARY KEY (todo_id, label_id),
			KEY todo_labels_label_id_idx (label_id),
			CONSTRAINT todo_labels_todo_fk FOREIGN KEY (todo_id) REFERENCES todos (id) ON DELETE CASCADE,
			CONSTRAINT todo_labels_label_fk FOREIGN KEY (label_id) REFERENCES labels (id) ON DELETE CASCADE
		) ENGINE=InnoDB`,
	},
}

// Migrate creates the tables if they do not exist. It is safe to run on every
// start.
func Migrate(ctx context.Context, db *database.DB) error {
	stmts, ok := schemas[db.Dialect()]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", db.Dialect())
	}

	return db.Do(ctx, "migrate", func(ctx context.Context, conn *sql.DB) error {
		for i, stmt := range stmts {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d: %w", i+1, err)
			}
		}
		return nil
	})
}

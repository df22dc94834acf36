package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
)

func labelCreate(name string) label.Create {
	return label.Create{Name: name}
}

func truncate(t *testing.T, db *database.DB) {
	t.Helper()

	err := db.Do(context.Background(), "truncate", func(ctx context.Context, conn *sql.DB) error {
		_, err := conn.ExecContext(ctx, `TRUNCATE todo_labels, todos, labels RESTART IDENTITY CASCADE`)
		return err
	})
	if err != nil {
		t.Fatalf("truncate error = %v", err)
	}
}

package database

import "testing"

func TestDialect_Rebind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "postgres numbers placeholders",
			dialect: Postgres,
			query:   "UPDATE todos SET text = ?, completed = ? WHERE id = ?",
			want:    "UPDATE todos SET text = $1, completed = $2 WHERE id = $3",
		},
		{
			name:    "postgres skips quoted literal",
			dialect: Postgres,
			query:   "SELECT id FROM labels WHERE name = '?' AND id = ?",
			want:    "SELECT id FROM labels WHERE name = '?' AND id = $1",
		},
		{
			name:    "sqlite unchanged",
			dialect: SQLite,
			query:   "DELETE FROM todos WHERE id = ?",
			want:    "DELETE FROM todos WHERE id = ?",
		},
		{
			name:    "mysql unchanged",
			dialect: MySQL,
			query:   "DELETE FROM todos WHERE id = ?",
			want:    "DELETE FROM todos WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.dialect.Rebind(tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: ""},
		{n: 1, want: "?"},
		{n: 3, want: "?, ?, ?"},
	}

	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"postgres", "sqlite", "mysql"} {
		d, err := ParseDialect(driver)
		if err != nil {
			t.Errorf("ParseDialect(%q) error = %v", driver, err)
		}
		if string(d) != driver {
			t.Errorf("ParseDialect(%q) = %q", driver, d)
		}
	}

	if _, err := ParseDialect("memory"); err == nil {
		t.Error("ParseDialect(memory) error = nil, want error")
	}
}

func TestDialect_DriverName(t *testing.T) {
	t.Parallel()

	if got := Postgres.DriverName(); got != "pgx" {
		t.Errorf("Postgres.DriverName() = %q, want pgx", got)
	}
	if got := SQLite.DriverName(); got != "sqlite" {
		t.Errorf("SQLite.DriverName() = %q, want sqlite", got)
	}
	if got := MySQL.DriverName(); got != "mysql" {
		t.Errorf("MySQL.DriverName() = %q, want mysql", got)
	}
	if MySQL.SupportsReturning() {
		t.Error("MySQL.SupportsReturning() = true, want false")
	}
}

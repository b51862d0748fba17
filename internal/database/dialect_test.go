package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT id FROM users",
			expected: "SELECT id FROM users",
		},
		{
			name:     "single placeholder",
			query:    "SELECT id FROM users WHERE email = ?",
			expected: "SELECT id FROM users WHERE email = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO classes (name, kindergarten_id) VALUES (?, ?)",
			expected: "INSERT INTO classes (name, kindergarten_id) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		dialect Dialect
		driver  string
		subdir  string
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite"},
		{NewPostgresDialect(), "postgres", "postgres"},
		{NewMySQLDialect(), "mysql", "mysql"},
	}

	for _, tt := range tests {
		if got := tt.dialect.DriverName(); got != tt.driver {
			t.Errorf("DriverName() = %q, want %q", got, tt.driver)
		}
		if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
			t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.subdir)
		}
	}
}

func TestPostgresRequiresReturning(t *testing.T) {
	if NewPostgresDialect().SupportsLastInsertId() {
		t.Error("postgres dialect must not claim LastInsertId support")
	}
	if !NewSQLiteDialect().SupportsLastInsertId() {
		t.Error("sqlite dialect must claim LastInsertId support")
	}
}

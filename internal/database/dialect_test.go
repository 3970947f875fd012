package database

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM users WHERE id = ? AND username = ?"
		if result := dialect.RewriteQuery(query); result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", result)
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		err := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
		if !dialect.IsUniqueViolation(err) {
			t.Error("IsUniqueViolation() should detect a unique constraint error")
		}
		if dialect.IsUniqueViolation(errors.New("some other error")) {
			t.Error("IsUniqueViolation() should ignore unrelated errors")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM users WHERE id = ? AND username = ?"
		expected := "SELECT * FROM users WHERE id = $1 AND username = $2"
		if result := dialect.RewriteQuery(query); result != expected {
			t.Errorf("RewriteQuery() = %v, want %v", result, expected)
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if !dialect.IsUniqueViolation(err) {
			t.Error("IsUniqueViolation() should detect code 23505")
		}
		if dialect.IsUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Error("IsUniqueViolation() should ignore other constraint codes")
		}
		if dialect.IsUniqueViolation(errors.New("some other error")) {
			t.Error("IsUniqueViolation() should ignore unrelated errors")
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM users WHERE id = ? AND username = ?"
		if result := dialect.RewriteQuery(query); result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", result)
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		if !dialect.IsUniqueViolation(err) {
			t.Error("IsUniqueViolation() should detect error 1062")
		}
		if dialect.IsUniqueViolation(&mysql.MySQLError{Number: 1452}) {
			t.Error("IsUniqueViolation() should ignore other error numbers")
		}
		if dialect.IsUniqueViolation(errors.New("some other error")) {
			t.Error("IsUniqueViolation() should ignore unrelated errors")
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "many placeholders",
			query:    "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			expected: "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := rewritePlaceholdersToNumbered(tt.query); result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", result, tt.expected)
			}
		})
	}
}

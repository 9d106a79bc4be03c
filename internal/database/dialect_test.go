package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("RandomFunc", func(t *testing.T) {
		if got := dialect.RandomFunc(); got != "RANDOM()" {
			t.Errorf("RandomFunc() = %v, want RANDOM()", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM clues WHERE rowid = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() should not alter SQLite queries, got %v", got)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("RandomFunc", func(t *testing.T) {
		if got := dialect.RandomFunc(); got != "RANDOM()" {
			t.Errorf("RandomFunc() = %v, want RANDOM()", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "INSERT INTO saved_clues (user_id, clue_rowid) VALUES (?, ?)"
		want := "INSERT INTO saved_clues (user_id, clue_rowid) VALUES ($1, $2)"
		if got := dialect.RewriteQuery(query); got != want {
			t.Errorf("RewriteQuery() = %v, want %v", got, want)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("RandomFunc", func(t *testing.T) {
		if got := dialect.RandomFunc(); got != "RAND()" {
			t.Errorf("RandomFunc() = %v, want RAND()", got)
		}
	})
}

package app

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// CreateSqliteDb opens the session store database and verifies the
// connection.
func CreateSqliteDb(source string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// InitSqliteDb applies pending goose migrations.
func InitSqliteDb(db *sql.DB, dialect, migrationsPath string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsPath); err != nil {
		return err
	}

	return nil
}

package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

const dialect = "postgres"

func setup() error {
	goose.SetBaseFS(files)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up применяет все новые миграции
func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Down откатывает последнюю миграцию
func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Down(db, ".")
}

// Status выводит состояние миграций в лог goose
func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Status(db, ".")
}

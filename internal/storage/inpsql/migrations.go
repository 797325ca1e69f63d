package inpsql

import (
	"database/sql"
	"embed"

	// pgx registered as a database/sql driver for goose
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// runMigrations brings the schema up to date.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	log.Println("Migrations starting")
	return goose.Up(db, "migrations")
}

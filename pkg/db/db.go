package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"
	"literature-server/internal/config"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

// ErrNoDSN is returned when no database is configured
var ErrNoDSN = errors.New("pgDsn is not configured")

var (
	instance *sql.DB
	once     sync.Once
)

// Enabled returns true if a database is configured
func Enabled() bool {
	return config.Instance().PGDSN != ""
}

// Instance returns the shared database handle
// Panics if the database is not configured or cannot be reached
func Instance() *sql.DB {
	once.Do(func() {
		db, err := Open(config.Instance().PGDSN)
		if err != nil {
			panic(err)
		}

		instance = db
	})

	return instance
}

// Open connects to PostgreSQL and checks the connection
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the migrations found in migrationsPath
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}

package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"literature-server/internal/config"
	"literature-server/pkg/db"
)

func main() {
	dbh := waitForDB()
	if err := db.Migrate(dbh, config.Instance().MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

// waitForDB retries until the database accepts connections
func waitForDB() *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(config.Instance().PGDSN)
			if err == db.ErrNoDSN {
				logrus.Fatal("set pgDsn or LITERATURE_PG_DSN")
			}

			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("database not ready")
			time.Sleep(time.Millisecond * 500)
		}
	}
}

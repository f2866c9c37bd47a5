package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"literature-server/internal/config"
	"literature-server/internal/mux"
	"literature-server/pkg/db"
	"literature-server/pkg/literature"
	"literature-server/pkg/record"
	"literature-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	store, games := setupStore(cfg)

	dealer := room.NewDealer(room.Options{
		Game: literature.Options{
			RestartRunningGame: cfg.Game.RestartRunningGame,
			EnforceTurn:        cfg.Game.EnforceTurn,
		},
		MessageBacklog: cfg.Game.MessageBacklog,
		Store:          store,
		Logger:         logrus.WithField("component", "dealer"),
	})
	dealer.StartShift()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, dealer, games))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// setupStore records finished games in PostgreSQL when a DSN is configured
func setupStore(cfg config.Config) (record.Store, mux.GameLister) {
	if !db.Enabled() {
		logrus.Info("no database configured, games will not be recorded")
		return record.Discard{}, nil
	}

	// fail fast
	dbh := db.Instance()
	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	store := record.NewPostgresStore(dbh)
	return store, store
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/logging"
)

var down = flag.Bool("down", false, "roll every migration back instead of applying them")

func main() {
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("unable to load .env")
	}
	logCfg, err := config.NewLogging()
	if err != nil {
		logrus.WithError(err).Fatal("unable to read logging config")
	}
	log, err := logging.New(logCfg)
	if err != nil {
		logrus.WithError(err).Fatal("unable to set up logging")
	}

	url, err := config.DbURL()
	if err != nil {
		log.WithError(err).Fatal("failed to read db config")
	}

	var migrator *migrate.Migrate
	if *down {
		migrator, err = database.NewMigrator(url)
		if err == nil {
			if err = migrator.Down(); errors.Is(err, migrate.ErrNoChange) {
				err = nil
			}
		}
	} else {
		migrator, err = database.Migrate(url)
	}
	if err != nil {
		log.WithError(err).Fatal("failed to migrate db")
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("no migrations applied")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}

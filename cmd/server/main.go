package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
)

func main() {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwt, err := config.NewJWT()
	if err != nil {
		log.WithError(err).Fatal("failed to read jwt config")
	}
	ttl, err := config.SessionTTL()
	if err != nil {
		log.WithError(err).Fatal("failed to read session config")
	}
	ws, err := config.NewWebSocket()
	if err != nil {
		log.WithError(err).Fatal("failed to read ws config")
	}

	store, closeStore, err := app.OpenRecords(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open records")
	}
	defer closeStore()

	log.WithField("development", config.Development()).Info("starting up")
	if err := app.New(log, jwt, ws, ttl, store).Start(ctx); err != nil {
		log.WithError(err).Error("exit reason")
	}
}

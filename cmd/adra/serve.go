package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adra/internal/db"
	"adra/internal/mailer"
	"adra/internal/server"
	"adra/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	beneficiaryRepo := store.NewBeneficiaryRepository(pool)
	donationRepo := store.NewDonationRepository(pool)
	scheduleRepo := store.NewScheduleRepository(pool)
	necessidadeRepo := store.NewNecessidadeRepository(pool)
	userRepo := store.NewUserRepository(pool)

	notifier := mailer.New(config, logger)

	srv, err := server.New(
		config,
		logger,
		notifier,
		beneficiaryRepo,
		donationRepo,
		scheduleRepo,
		necessidadeRepo,
		userRepo,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

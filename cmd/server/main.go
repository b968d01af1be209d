// Command server runs the ledger core: configuration, database,
// repositories, services and the periodic settlement scheduler.
// Transport (HTTP controllers) is out of scope; controllers call the
// services exposed by the app in-process.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ozanselte/bankcore/infra"
	"github.com/ozanselte/bankcore/pkg/app"
	"github.com/ozanselte/bankcore/pkg/config"
)

func main() {
	logger := infra.NewLogger(os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	a.Start()
	defer a.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	return nil
}

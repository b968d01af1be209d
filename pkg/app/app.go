// Package app assembles the ledger core into one runnable unit.
// Controllers (transport is out of scope here) consume the services
// exposed on App.
package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/ozanselte/bankcore/infra"
	infraeventbus "github.com/ozanselte/bankcore/infra/eventbus"
	infrarepo "github.com/ozanselte/bankcore/infra/repository"
	"github.com/ozanselte/bankcore/internal/jobs"
	"github.com/ozanselte/bankcore/pkg/config"
	"github.com/ozanselte/bankcore/pkg/eventbus"
	"github.com/ozanselte/bankcore/pkg/service"
)

// App holds the wired ledger core.
type App struct {
	Config *config.App
	DB     *gorm.DB
	Bus    eventbus.Bus

	Settlement *service.SettlementService
	Ledger     *service.LedgerService
	Interest   *service.InterestService
	Credit     *service.CreditService
	Settings   *service.SettingService

	scheduler *jobs.Scheduler
	kafkaBus  *infraeventbus.KafkaBus
	logger    *slog.Logger
}

// New builds the application: database, event bus, unit of work,
// services and the periodic settlement scheduler.
func New(cfg *config.App, logger *slog.Logger) (*App, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}
	if err := infra.AutoMigrate(db); err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		DB:     db,
		logger: logger,
	}

	switch cfg.Events.Backend {
	case "kafka":
		kafkaBus, err := infraeventbus.NewWithKafka(cfg.Events.KafkaBrokers, cfg.Events.TopicPrefix, logger)
		if err != nil {
			return nil, err
		}
		a.kafkaBus = kafkaBus
		a.Bus = kafkaBus
	default:
		a.Bus = infraeventbus.NewWithMemory(logger)
	}

	uow := infrarepo.NewUoW(db)
	a.Settlement = service.NewSettlementService(uow, a.Bus, logger)
	a.Ledger = service.NewLedgerService(uow, logger)
	a.Interest = service.NewInterestService(uow, a.Bus, logger)
	a.Credit = service.NewCreditService(uow, a.Bus, logger)
	a.Settings = service.NewSettingService(uow, logger)

	a.scheduler = jobs.New(a.Interest, a.Credit, logger)
	if err := a.scheduler.Register(cfg.Jobs); err != nil {
		return nil, err
	}
	return a, nil
}

// Start starts the periodic settlement scheduler.
func (a *App) Start() {
	a.scheduler.Start()
	a.logger.Info("bankcore ledger engine running", "env", a.Config.Env)
}

// Stop stops the scheduler and releases external resources.
func (a *App) Stop() {
	a.scheduler.Stop()
	if a.kafkaBus != nil {
		if err := a.kafkaBus.Close(); err != nil {
			a.logger.Error("failed to close kafka bus", "error", err)
		}
	}
}

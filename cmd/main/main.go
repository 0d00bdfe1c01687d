package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-recorder/src/config"
	"price-recorder/src/interfaces"
	"price-recorder/src/logger"
	"price-recorder/src/models"
	"price-recorder/src/network"
	"price-recorder/src/notify"
	"price-recorder/src/quotes"
	"price-recorder/src/recorder"
	"price-recorder/src/schedule"
	"price-recorder/src/server"
	"price-recorder/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single update and exit")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// 2. Setup Storage
	var store interfaces.ITableStore

	switch cfg.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresTableStore(cfg.MConfig, appLogger)
	default:
		// Default to SQLite
		store, err = storage.NewSQLiteTableStore(cfg.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate store: %v", err)
	}
	defer store.Close()

	// 3. Setup Components
	var notifier interfaces.INotifier = notify.NewEmailNotifier(cfg.MConfig, appLogger)
	rec := recorder.NewRecorder(cfg, store, notifier, appLogger)

	// 4. One-shot mode
	if *once {
		report := rec.UpdateGlobalStocks(nil)
		if report.Fatal != "" {
			appLogger.Error("Run failed: %s", report.Fatal)
			os.Exit(1)
		}
		appLogger.Info("Run complete: %d updated, %d duplicates, %d skipped, %d errors",
			report.Stats.Updated, report.Stats.Duplicates, report.Stats.Skipped, report.Stats.Errors)
		return
	}

	// 5. Quote source (preview only)
	var quoteSource interfaces.IQuoteSource
	if cfg.Quotes.Enabled {
		netMgr := network.NewAsyncNetworkManager(cfg.MConfig, appLogger)
		quoteSource = quotes.NewYahooQuoteSource(netMgr, appLogger)
	}

	// 6. Server
	srv := server.NewAPIServer(cfg, store, quoteSource, appLogger)
	srv.RunFunc = func() *models.MRunReport {
		return rec.UpdateGlobalStocks(nil)
	}

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 7. Scheduler with the six fixed daily triggers
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		appLogger.Critical("Invalid timezone %s: %v", cfg.Schedule.Timezone, err)
	}

	sched := schedule.NewCronScheduler(loc, appLogger)
	err = schedule.Install(sched, cfg.Schedule.Times, func() {
		report := rec.UpdateGlobalStocks(nil)
		srv.PublishReport(report)
	})
	if err != nil {
		appLogger.Critical("Failed to install schedule: %v", err)
	}

	sched.Start()
	defer sched.Stop()
	appLogger.Info("Installed %d daily triggers (%s)", sched.Count(), cfg.Schedule.Timezone)

	// 8. Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
}

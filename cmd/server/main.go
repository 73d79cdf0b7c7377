/*
main.go - Application entry point

PURPOSE:
  Starts the work-hours recovery server: loads configuration, opens the
  SQLite store, loads (and seeds) holiday calendars, and serves the API
  with graceful shutdown.

COMMAND-LINE FLAGS:
  -config  Optional YAML config file
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config; ":memory:" works)

ENVIRONMENT:
  PORT, DB_PATH override file values; LOG_LEVEL sets logrus verbosity.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain for up to 30s,
  close the database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quipu/recovery-engine/api"
	"github.com/quipu/recovery-engine/config"
	"github.com/quipu/recovery-engine/factory"
	"github.com/quipu/recovery-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	if cfg.Calendar.File != "" {
		data, err := os.ReadFile(cfg.Calendar.File)
		if err != nil {
			log.WithError(err).Fatal("failed to read calendar file")
		}
		table, err := factory.ParseCalendar(string(data))
		if err != nil {
			log.WithError(err).Fatal("failed to parse calendar file")
		}
		if err := store.SaveCalendar(context.Background(), table.Year(), string(data)); err != nil {
			log.WithError(err).Fatal("failed to store calendar file")
		}
		log.WithField("year", table.Year()).Info("calendar file loaded")
	}

	handler := api.NewHandler(store, log, api.Defaults{
		JornadaHours:     cfg.Defaults.JornadaHours,
		Method:           cfg.Defaults.Method,
		DailyRateMinutes: cfg.Defaults.DailyRateMinutes,
	})
	if err := handler.LoadCalendars(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to load holiday calendars")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server stopped")
}

package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"primecost/internal/catalog"
	"primecost/internal/config"
	"primecost/internal/db"
	applog "primecost/internal/log"
	"primecost/internal/server"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := applog.SetLevel(cfg.Log.Level); err != nil {
		log.Fatalf("invalid log level: %v", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}

	service := catalog.New(database, catalog.Options{
		LenientRows: cfg.Catalog.Lenient(),
	})

	srv := server.New(server.Config{
		Addr:     cfg.Server.Addr,
		Database: database,
		Catalog:  service,
	})

	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server encountered an error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	log.Println("shutting down http server")
	if err := srv.Stop(); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

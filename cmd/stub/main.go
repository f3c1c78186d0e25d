package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/bootstrap"
	"github.com/Domenick1991/skywings/internal/stub"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := stub.NewStore(cfg.Stub.JWTSecret)
	if err := store.SeedAdmin(cfg.Stub.AdminEmail, cfg.Stub.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := store.SeedFlights(); err != nil {
		log.Fatalf("seed flights: %v", err)
	}

	log.Printf("stub booking API listening on %s", cfg.Stub.Address)
	if err := bootstrap.Run(ctx, cfg, store); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

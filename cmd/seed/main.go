package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jwebster45206/legacy-engine/internal/config"
	"github.com/jwebster45206/legacy-engine/internal/logger"
	"github.com/jwebster45206/legacy-engine/internal/storage"
	"github.com/jwebster45206/legacy-engine/pkg/seed"
)

func main() {
	file := flag.String("file", "", "world YAML to load (defaults to the built-in starting world)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log := logger.Setup(cfg)

	w, err := loadWorld(*file)
	if err != nil {
		log.Error("Failed to read world", "error", err, "file", *file)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := store.WaitForConnection(ctx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	report, err := seed.Load(ctx, store, w, log)
	if err != nil {
		log.Error("Failed to seed world", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded world: %d created, %d already present\n", report.Created, report.Skipped)
}

func loadWorld(path string) (*seed.World, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return seed.Parse(data)
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/foodshedmap/foodshedmap/internal/api"
	"github.com/foodshedmap/foodshedmap/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := api.NewServer(cfg)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/myc22ka/mathapp-client/internal/webapp"
)

func main() {
	// A missing .env is fine; config falls back to real env and defaults.
	_ = godotenv.Load()

	cfg := webapp.LoadConfig()

	application, err := webapp.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

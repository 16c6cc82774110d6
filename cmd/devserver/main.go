package main

import (
	"log"

	"sms-campaign-client/internal/config"
	"sms-campaign-client/internal/devserver"
)

func main() {
	cfg := config.LoadConfig()

	db, err := devserver.OpenDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	server := devserver.New(cfg, db)
	r := server.Router()

	log.Printf("Dev server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

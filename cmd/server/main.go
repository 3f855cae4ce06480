package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/classtrack/classtrack-back/internal/api"
	"github.com/classtrack/classtrack-back/internal/config"
	"github.com/classtrack/classtrack-back/internal/cron"
	"github.com/classtrack/classtrack-back/internal/db"
	"github.com/classtrack/classtrack-back/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	s := store.New(db.NewBackend())

	r := api.SetupRouter(cfg, s)

	// Start the overdue sweep
	sweeper := cron.StartSweep(s, time.Duration(cfg.SweepIntervalSeconds)*time.Second)
	defer sweeper.Stop()

	log.Println("Server running on :8000")
	r.Run(":8000")
}

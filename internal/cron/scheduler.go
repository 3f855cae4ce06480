package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/classtrack/classtrack-back/internal/store"
)

// StartSweep schedules the periodic overdue sweep. The returned cron
// owns the job; call Stop on it when tearing the store down.
func StartSweep(s *store.Store, interval time.Duration) *cron.Cron {
	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		advanced, err := s.Sweep(context.Background(), time.Now())
		if err != nil {
			log.Println("❌ Sweep persistence error:", err)
		}
		if advanced > 0 {
			log.Printf("✅ Sweep advanced %d assignments to Overdue\n", advanced)
		}
	})

	c.Start()
	return c
}

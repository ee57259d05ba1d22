package main

import (
	"context"
	"log"
	"time"

	"vales/internal/config"
	"vales/internal/database"
	"vales/internal/modules/voucher"
	"vales/internal/pkg/logger"
	"vales/internal/repository"
)

type counterPurger interface {
	DeleteBefore(ctx context.Context, day string) (int64, error)
}

// cutoff is the first business day kept when retaining days of counters.
func cutoff(now time.Time, tz *time.Location, days int) string {
	return now.In(tz).AddDate(0, 0, -days).Format(voucher.DayLayout)
}

func purge(ctx context.Context, counters counterPurger, now time.Time, tz *time.Location, days int) (string, int64, error) {
	day := cutoff(now, tz, days)
	n, err := counters.DeleteBefore(ctx, day)
	return day, n, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.CounterRetentionDays <= 0 {
		log.Fatal("COUNTER_RETENTION_DAYS must be positive")
	}

	logg := logger.New(cfg.IsDevelopment())
	db, err := database.Connect(cfg.DatabaseURL, logg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	day, n, err := purge(context.Background(), repository.NewCounterRepository(db), time.Now(), cfg.BusinessTZ, cfg.CounterRetentionDays)
	if err != nil {
		log.Fatalf("cleanup daily_counters failed: %v", err)
	}

	logg.Infow("counter cleanup completed", "before", day, "daily_counters", n)
}

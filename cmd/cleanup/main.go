// Command cleanup purges owner notifications older than the configured
// retention period. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
//
// Flags:
//
//	--days  retention in days, overrides NOTIFICATION_RETENTION_DAYS
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/flashdeck-backend/internal/app"
	"github.com/heartmarshall/flashdeck-backend/internal/config"
)

func main() {
	daysFlag := flag.Int("days", 0, "retention in days (default: from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	days := cfg.Notification.RetentionDays
	if *daysFlag > 0 {
		days = *daysFlag
	}
	if days <= 0 {
		logger.Error("retention must be positive", slog.Int("days", days))
		os.Exit(1)
	}

	repo := notification.New(pool)

	threshold := time.Now().AddDate(0, 0, -days)

	deleted, err := repo.PurgeOlderThan(ctx, threshold)
	if err != nil {
		logger.Error("notification purge failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("notification purge completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}

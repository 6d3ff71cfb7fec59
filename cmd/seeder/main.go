// Command seeder creates an owner deck from a CSV file and optionally
// publishes it to the community catalog. It is intended for local setups and
// demos, not as part of the main server.
//
// Flags:
//
//	--deck           path to the deck CSV file
//	--owner          owner user id
//	--name           deck name
//	--publish        publish the deck after creating it
//	--dry-run        parse the file without writing to DB
//	--seeder-config  path to seeder YAML config file
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
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/deck"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/feedback"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/published"
	"github.com/heartmarshall/flashdeck-backend/internal/app"
	"github.com/heartmarshall/flashdeck-backend/internal/app/seeder"
	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication"
)

func main() {
	deckFlag := flag.String("deck", "", "path to the deck CSV file")
	ownerFlag := flag.String("owner", "", "owner user id")
	nameFlag := flag.String("name", "", "deck name")
	publishFlag := flag.Bool("publish", false, "publish the deck after creating it")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *deckFlag != "" {
		seederCfg.DeckPath = *deckFlag
	}
	if *ownerFlag != "" {
		seederCfg.OwnerID = *ownerFlag
	}
	if *nameFlag != "" {
		seederCfg.Name = *nameFlag
	}
	if *publishFlag {
		seederCfg.Publish = true
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	decks := deck.New(pool)
	pub := publication.NewService(logger,
		decks, published.New(pool), feedback.New(pool), notification.New(pool), audit.New(pool),
		postgres.NewTxManager(pool), appCfg.Publication,
	)

	res, err := seeder.NewPipeline(logger, decks, pub, *seederCfg).Run(ctx)
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	attrs := []any{slog.Int("cards", res.Cards), slog.Duration("duration", res.Duration)}
	if res.Published != nil {
		attrs = append(attrs, slog.String("published_id", res.Published.ID.String()))
	}
	logger.Info("seeding completed", attrs...)
}

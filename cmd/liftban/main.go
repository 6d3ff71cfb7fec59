// Command liftban clears the publish ban of a deck that moderation removed.
// It is the operator escape hatch for when no moderator account is at hand;
// the moderator API performs the same change with an audit record.
//
// Usage:
//
//	liftban --deck=<deck uuid>
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	deck := flag.String("deck", "", "id of the deck whose publish ban is lifted")
	flag.Parse()

	deckID, err := uuid.Parse(*deck)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: liftban --deck=<deck uuid>")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx, `
		UPDATE decks
		SET publication_state = 'ACTIVE', publication_reason = '', publication_by = NULL,
		    publication_at = NULL, revision = revision + 1, updated_at = now(),
		    published_ref = CASE
		        WHEN EXISTS (SELECT 1 FROM published_decks p
		                     WHERE p.id = decks.published_ref AND p.lifecycle_state = 'SOFT_DELETED')
		        THEN NULL ELSE published_ref END
		WHERE id = $1 AND publication_state = 'PUBLISH_BANNED'`,
		deckID,
	)
	if err != nil {
		log.Fatalf("lift ban: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("No deck %s found, or it is not banned.\n", deckID)
		os.Exit(1)
	}

	fmt.Printf("Publish ban lifted for deck %s.\n", deckID)
}

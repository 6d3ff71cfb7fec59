package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/app/seeder/csvdeck"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// DeckCreator stores new owner decks.
type DeckCreator interface {
	Create(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)
}

// Publisher publishes an owner deck on behalf of the user in ctx.
type Publisher interface {
	Publish(ctx context.Context, input publication.PublishInput) (*domain.PublishedDeck, error)
}

// Result holds the outcome of one seeding run.
type Result struct {
	Cards     int
	DeckID    uuid.UUID
	Published *domain.PublishedDeck
	Duration  time.Duration
}

// Pipeline seeds one owner deck from a CSV file and optionally publishes it.
type Pipeline struct {
	log       *slog.Logger
	decks     DeckCreator
	publisher Publisher
	cfg       Config
}

// NewPipeline creates a new Pipeline. publisher may be nil when cfg.Publish is false.
func NewPipeline(log *slog.Logger, decks DeckCreator, publisher Publisher, cfg Config) *Pipeline {
	return &Pipeline{
		log:       log,
		decks:     decks,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Run parses the deck file, stores the deck and publishes it when configured.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	meta, ownerID, err := p.deckMeta()
	if err != nil {
		return Result{}, err
	}

	cards, err := csvdeck.Parse(p.cfg.DeckPath)
	if err != nil {
		return Result{}, err
	}
	p.log.Info("deck parsed", slog.String("path", p.cfg.DeckPath), slog.Int("cards", len(cards)))

	result := Result{Cards: len(cards)}
	if p.cfg.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	deck, err := p.decks.Create(ctx, &domain.OwnerDeck{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		DeckMeta:    meta,
		Cards:       cards,
		Publication: domain.Active(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("create deck: %w", err)
	}
	result.DeckID = deck.ID
	p.log.Info("deck created", slog.String("deck_id", deck.ID.String()))

	if p.cfg.Publish {
		if p.publisher == nil {
			return result, fmt.Errorf("publish requested but no publisher configured")
		}
		published, err := p.publisher.Publish(ctxutil.WithUserID(ctx, ownerID), publication.PublishInput{
			DeckID:   deck.ID,
			Category: meta.Category,
			Subtopic: meta.Subtopic,
		})
		if err != nil {
			return result, fmt.Errorf("publish deck: %w", err)
		}
		result.Published = published
		p.log.Info("deck published",
			slog.String("published_id", published.ID.String()),
			slog.Int("version", published.Version),
		)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (p *Pipeline) deckMeta() (domain.DeckMeta, uuid.UUID, error) {
	if p.cfg.DeckPath == "" {
		return domain.DeckMeta{}, uuid.Nil, fmt.Errorf("deck path not configured")
	}
	ownerID, err := uuid.Parse(p.cfg.OwnerID)
	if err != nil {
		return domain.DeckMeta{}, uuid.Nil, fmt.Errorf("owner id: %w", err)
	}

	difficulty := domain.Difficulty(strings.ToUpper(p.cfg.Difficulty))
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	if !difficulty.IsValid() {
		return domain.DeckMeta{}, uuid.Nil, fmt.Errorf("unknown difficulty %q", p.cfg.Difficulty)
	}

	name := strings.TrimSpace(p.cfg.Name)
	if name == "" {
		return domain.DeckMeta{}, uuid.Nil, fmt.Errorf("deck name not configured")
	}

	return domain.DeckMeta{
		Name:       name,
		Emoji:      p.cfg.Emoji,
		Color:      p.cfg.Color,
		Category:   p.cfg.Category,
		Subtopic:   p.cfg.Subtopic,
		Difficulty: difficulty,
	}, ownerID, nil
}

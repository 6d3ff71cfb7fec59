//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/deck"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/feedback"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/published"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/ticket"
	authpkg "github.com/heartmarshall/flashdeck-backend/internal/auth"
	"github.com/heartmarshall/flashdeck-backend/internal/client"
	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/moderation"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication"
	"github.com/heartmarshall/flashdeck-backend/internal/service/replica"
	"github.com/heartmarshall/flashdeck-backend/internal/transport/middleware"
	"github.com/heartmarshall/flashdeck-backend/internal/transport/rest"
)

const testJWTSecret = "e2e-test-secret-that-is-long-enough-for-hs256"

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL   string
	Pool  *pgxpool.Pool
	decks *deck.Repo
	jwt   *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	decks := deck.New(pool)
	pubs := published.New(pool)
	notifications := notification.New(pool)
	auditRepo := audit.New(pool)

	pub := publication.NewService(logger,
		decks, pubs, feedback.New(pool), notifications, auditRepo, txm,
		config.PublicationConfig{MinCards: 10, ListingPageSize: 50, MaxReasonLength: 1000},
	)
	replicas := replica.NewService(logger, decks, pubs, auditRepo, txm)
	tickets := moderation.NewService(logger, ticket.New(pool), pub, txm,
		config.ModerationConfig{QueuePageSize: 50, MaxReasonLength: 1000},
	)

	jwtManager := authpkg.NewJWTManager(testJWTSecret, "flashdeck-e2e", time.Hour)
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(rest.NewRouter(rest.RouterDeps{
		Logger:     logger,
		CORS:       config.CORSConfig{AllowedOrigins: "*"},
		Tokens:     jwtManager,
		Limiter:    limiter,
		Health:     rest.NewHealthHandler(pool, config.DriverPostgres, "e2e"),
		Decks:      rest.NewDeckHandler(pub, replicas, notifications, logger),
		Moderation: rest.NewModerationHandler(pub, tickets, logger),
	}))
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Pool: pool, decks: decks, jwt: jwtManager}
}

// clientFor returns an API client authenticated as a fresh user with role.
func (ts *testServer) clientFor(t *testing.T, role domain.UserRole) (*client.Client, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return client.New(ts.URL, tok, slog.Default()), userID
}

// seedDeck inserts an owner deck with n basic cards directly into the DB.
// Plain deck editing is not part of the API.
func (ts *testServer) seedDeck(t *testing.T, owner uuid.UUID, n int) *domain.OwnerDeck {
	t.Helper()
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{ID: uuid.New(), Position: i, Type: domain.CardTypeBasic, Front: "front", Back: "back"}
	}
	d, err := ts.decks.Create(context.Background(), &domain.OwnerDeck{
		ID:       uuid.New(),
		OwnerID:  owner,
		DeckMeta: domain.DeckMeta{Name: "Irregular verbs", Category: "languages", Difficulty: domain.DifficultyBeginner},
		Cards:    cards,
	})
	require.NoError(t, err)
	return d
}

// addCard appends one card to a seeded deck.
func (ts *testServer) addCard(t *testing.T, deckID uuid.UUID, front string) {
	t.Helper()
	ctx := context.Background()
	d, err := ts.decks.GetByID(ctx, deckID)
	require.NoError(t, err)
	cards := append(d.Cards, domain.Card{
		ID: uuid.New(), Position: len(d.Cards), Type: domain.CardTypeBasic, Front: front, Back: "back",
	})
	require.NoError(t, ts.decks.ReplaceCards(ctx, deckID, cards))
}

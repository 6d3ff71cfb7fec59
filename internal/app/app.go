package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/flashdeck-backend/internal/adapter/memory"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/deck"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/feedback"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/published"
	"github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres/ticket"
	"github.com/heartmarshall/flashdeck-backend/internal/auth"
	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/moderation"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication"
	"github.com/heartmarshall/flashdeck-backend/internal/service/replica"
	"github.com/heartmarshall/flashdeck-backend/internal/transport/middleware"
	"github.com/heartmarshall/flashdeck-backend/internal/transport/rest"
)

type notificationLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// services is the assembled business layer over one storage backend.
type services struct {
	publication   *publication.Service
	replicas      *replica.Service
	moderation    *moderation.Service
	notifications notificationLister
	store         pinger
	close         func()
}

// Run is the application entry point. It loads configuration, wires the
// storage backend and services, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database_driver", cfg.Database.Driver),
	)

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.close()

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	// Tokens are issued by the identity service; the TTL only matters for
	// GenerateAccessToken, which the server never calls.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:     logger,
		CORS:       cfg.CORS,
		Tokens:     jwtManager,
		Limiter:    limiter,
		Health:     rest.NewHealthHandler(svc.store, cfg.Database.Driver, BuildVersion()),
		Decks:      rest.NewDeckHandler(svc.publication, svc.replicas, svc.notifications, logger),
		Moderation: rest.NewModerationHandler(svc.publication, svc.moderation, logger),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

func buildServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services, error) {
	if cfg.Database.IsMemory() {
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.New()
		pub := publication.NewService(logger,
			store.Decks(), store.Published(), store.Feedback(), store.Notifications(), store.Audit(), store,
			cfg.Publication,
		)
		return &services{
			publication:   pub,
			replicas:      replica.NewService(logger, store.Decks(), store.Published(), store.Audit(), store),
			moderation:    moderation.NewService(logger, store.Tickets(), pub, store, cfg.Moderation),
			notifications: store.Notifications(),
			store:         store,
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	tx := postgres.NewTxManager(pool)

	decks := deck.New(pool)
	pubs := published.New(pool)
	notifications := notification.New(pool)
	auditRepo := audit.New(pool)

	pub := publication.NewService(logger,
		decks, pubs, feedback.New(pool), notifications, auditRepo, tx, cfg.Publication,
	)
	return &services{
		publication:   pub,
		replicas:      replica.NewService(logger, decks, pubs, auditRepo, tx),
		moderation:    moderation.NewService(logger, ticket.New(pool), pub, tx, cfg.Moderation),
		notifications: notifications,
		store:         pool,
		close:         pool.Close,
	}, nil
}

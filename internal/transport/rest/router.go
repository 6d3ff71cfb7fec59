package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/transport/middleware"
)

const (
	reportsPerMinute = 10
	importsPerMinute = 30
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, domain.UserRole, error)
}

// RouterDeps holds everything the HTTP surface is assembled from.
type RouterDeps struct {
	Logger     *slog.Logger
	CORS       config.CORSConfig
	Tokens     tokenValidator
	// Limiter is optional; without it the per-caller limits are off.
	Limiter    *middleware.RateLimiter
	Health     *HealthHandler
	Decks      *DeckHandler
	Moderation *ModerationHandler
}

// NewRouter mounts all routes behind the shared middleware chain. Moderation
// routes additionally require a moderator role.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	limit := func(perMinute int) middleware.Middleware {
		if d.Limiter == nil {
			return nil
		}
		return d.Limiter.Limit(perMinute)
	}

	mux.HandleFunc("GET /decks/{id}", d.Decks.GetDeck)
	mux.HandleFunc("POST /decks/{id}/publish", d.Decks.Publish)
	mux.HandleFunc("GET /decks/{id}/update", d.Decks.CheckUpdate)
	mux.HandleFunc("POST /decks/{id}/apply-update", d.Decks.ApplyUpdate)
	mux.HandleFunc("PUT /decks/{id}/cards/{cardId}/flags/{flag}", d.Decks.SetCardFlag)

	mux.HandleFunc("GET /community", d.Decks.ListCommunity)
	mux.HandleFunc("GET /community/{id}", d.Decks.GetCommunity)
	mux.HandleFunc("DELETE /community/{id}", d.Decks.Unpublish)
	mux.Handle("POST /community/{id}/import", middleware.Wrap(d.Decks.Import, limit(importsPerMinute)))

	mux.HandleFunc("GET /notifications", d.Decks.Notifications)
	mux.Handle("POST /tickets", middleware.Wrap(d.Moderation.Report, limit(reportsPerMinute)))

	mod := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Wrap(h, middleware.RequireModerator))
	}
	mod("POST /moderation/community/{id}/delete", d.Moderation.SoftDeleteDeck)
	mod("POST /moderation/community/{id}/cards/{cardId}/delete", d.Moderation.SoftDeleteCard)
	mod("POST /moderation/community/{id}/restore", d.Moderation.Restore)
	mod("POST /moderation/community/{id}/feature", d.Moderation.Feature)
	mod("POST /moderation/comments/{id}/delete", d.Moderation.RemoveComment)
	mod("POST /moderation/decks/{id}/lift-ban", d.Moderation.LiftBan)
	mod("GET /moderation/tickets", d.Moderation.Queue)
	mod("GET /moderation/tickets/{id}", d.Moderation.GetTicket)
	mod("POST /moderation/tickets/{id}/assign", d.Moderation.Assign)
	mod("POST /moderation/tickets/{id}/status", d.Moderation.SetStatus)
	mod("POST /moderation/tickets/{id}/escalate", d.Moderation.Escalate)
	mod("POST /moderation/tickets/{id}/notes", d.Moderation.AddNote)

	chain := middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Tokens),
		middleware.Logger(d.Logger),
	)
	return chain(mux)
}

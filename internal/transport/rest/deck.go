package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication"
	"github.com/heartmarshall/flashdeck-backend/internal/service/replica"
)

type publicationService interface {
	Publish(ctx context.Context, input publication.PublishInput) (*domain.PublishedDeck, error)
	Unpublish(ctx context.Context, publishedID uuid.UUID) error
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	ListPublic(ctx context.Context, input publication.ListInput) ([]domain.PublishedDeck, int, error)
}

type replicaService interface {
	Import(ctx context.Context, publishedID uuid.UUID) (*domain.OwnerDeck, error)
	GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.OwnerDeck, error)
	CheckUpdate(ctx context.Context, replicaID uuid.UUID) (replica.UpdateStatus, error)
	ApplyUpdate(ctx context.Context, replicaID, publishedID uuid.UUID) (*domain.OwnerDeck, error)
	SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error)
}

type notificationLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

// DeckHandler serves the owner and community endpoints.
type DeckHandler struct {
	publication   publicationService
	replicas      replicaService
	notifications notificationLister
	log           *slog.Logger
}

// NewDeckHandler creates a DeckHandler.
func NewDeckHandler(pub publicationService, replicas replicaService, notifications notificationLister, logger *slog.Logger) *DeckHandler {
	return &DeckHandler{
		publication:   pub,
		replicas:      replicas,
		notifications: notifications,
		log:           logger.With("handler", "deck"),
	}
}

type publishRequest struct {
	Category string `json:"category"`
	Subtopic string `json:"subtopic"`
}

type applyUpdateRequest struct {
	PublishedID uuid.UUID `json:"publishedId"`
}

type flagRequest struct {
	Value bool `json:"value"`
}

// Publish handles POST /decks/{id}/publish.
func (h *DeckHandler) Publish(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req publishRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.publication.Publish(r.Context(), publication.PublishInput{
		DeckID:   deckID,
		Category: req.Category,
		Subtopic: req.Subtopic,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPublishedResponse(p))
}

// GetDeck handles GET /decks/{id}.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	d, err := h.replicas.GetDeck(r.Context(), deckID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(d))
}

// CheckUpdate handles GET /decks/{id}/update.
func (h *DeckHandler) CheckUpdate(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	status, err := h.replicas.CheckUpdate(r.Context(), deckID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUpdateStatus(status))
}

// ApplyUpdate handles POST /decks/{id}/apply-update.
func (h *DeckHandler) ApplyUpdate(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req applyUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.PublishedID == uuid.Nil {
		writeError(w, r, h.log, domain.NewValidationError("publishedId", "required"))
		return
	}

	d, err := h.replicas.ApplyUpdate(r.Context(), deckID, req.PublishedID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(d))
}

// SetCardFlag handles PUT /decks/{id}/cards/{cardId}/flags/{flag}.
func (h *DeckHandler) SetCardFlag(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req flagRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	card, err := h.replicas.SetCardFlag(r.Context(), deckID, cardID, domain.CardFlag(r.PathValue("flag")), req.Value)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCards([]domain.Card{card}, true)[0])
}

// ListCommunity handles GET /community?category=&featured=&author=&limit=&offset=.
func (h *DeckHandler) ListCommunity(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	author, err := queryID(r, "author")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	decks, total, err := h.publication.ListPublic(r.Context(), publication.ListInput{
		Category:     r.URL.Query().Get("category"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		AuthorID:     author,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := listResponse[publishedResponse]{Items: make([]publishedResponse, len(decks)), Total: total}
	for i := range decks {
		resp.Items[i] = toPublishedResponse(&decks[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCommunity handles GET /community/{id}.
func (h *DeckHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.publication.GetPublished(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublishedResponse(p))
}

// Unpublish handles DELETE /community/{id}.
func (h *DeckHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.publication.Unpublish(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /community/{id}/import.
func (h *DeckHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	d, err := h.replicas.Import(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeckResponse(d))
}

// Notifications handles GET /notifications?limit=.
func (h *DeckHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	items, err := h.notifications.ListByUser(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := listResponse[notificationResponse]{Items: make([]notificationResponse, len(items)), Total: len(items)}
	for i, n := range items {
		resp.Items[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, resp)
}

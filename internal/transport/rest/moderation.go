package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/moderation"
)

type contentModerator interface {
	GetPublished(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	ModerationSoftDelete(ctx context.Context, publishedID uuid.UUID, reason string) error
	ModerationSoftDeleteCard(ctx context.Context, publishedID, cardID uuid.UUID, reason string) error
	ModerationRemoveComment(ctx context.Context, commentID uuid.UUID, reason string) error
	ModerationRestore(ctx context.Context, publishedID uuid.UUID) (*domain.PublishedDeck, error)
	FeatureToggle(ctx context.Context, publishedID uuid.UUID) (bool, error)
	LiftPublishBan(ctx context.Context, deckID uuid.UUID) (*domain.OwnerDeck, error)
}

type ticketService interface {
	Create(ctx context.Context, input moderation.CreateInput) (*domain.Ticket, error)
	Get(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error)
	History(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error)
	ListQueue(ctx context.Context, input moderation.QueueInput) ([]domain.Ticket, int, error)
	Assign(ctx context.Context, ticketID, moderatorID uuid.UUID) (*domain.Ticket, error)
	SetStatus(ctx context.Context, input moderation.SetStatusInput) (*domain.Ticket, error)
	Escalate(ctx context.Context, ticketID uuid.UUID, reason string) (*domain.Ticket, error)
	AddNote(ctx context.Context, ticketID uuid.UUID, note string) (*domain.Ticket, error)
}

// ModerationHandler serves reports, the moderator queue and direct
// moderation of community content.
type ModerationHandler struct {
	content contentModerator
	tickets ticketService
	log     *slog.Logger
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(content contentModerator, tickets ticketService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{
		content: content,
		tickets: tickets,
		log:     logger.With("handler", "moderation"),
	}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type featureRequest struct {
	// Featured is the desired value. Nil flips the current value.
	Featured *bool `json:"featured"`
}

type reportRequest struct {
	TargetType   string     `json:"targetType"`
	TargetID     uuid.UUID  `json:"targetId"`
	TargetDeckID *uuid.UUID `json:"targetDeckId"`
	Reason       string     `json:"reason"`
}

type assignRequest struct {
	// ModeratorID defaults to the caller.
	ModeratorID *uuid.UUID `json:"moderatorId"`
}

type statusRequest struct {
	Status        string `json:"status"`
	Note          string `json:"note"`
	RemoveContent bool   `json:"removeContent"`
}

type noteRequest struct {
	Note string `json:"note"`
}

// SoftDeleteDeck handles POST /moderation/community/{id}/delete.
func (h *ModerationHandler) SoftDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req reasonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.content.ModerationSoftDelete(r.Context(), id, req.Reason); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SoftDeleteCard handles POST /moderation/community/{id}/cards/{cardId}/delete.
func (h *ModerationHandler) SoftDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	cardID, err := pathID(r, "cardId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req reasonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.content.ModerationSoftDeleteCard(r.Context(), id, cardID, req.Reason); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveComment handles POST /moderation/comments/{id}/delete.
func (h *ModerationHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req reasonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.content.ModerationRemoveComment(r.Context(), id, req.Reason); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /moderation/community/{id}/restore.
func (h *ModerationHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.content.ModerationRestore(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublishedResponse(p))
}

// Feature handles POST /moderation/community/{id}/feature. With a desired
// value in the body the call is idempotent.
func (h *ModerationHandler) Feature(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req featureRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if req.Featured != nil {
		p, err := h.content.GetPublished(r.Context(), id)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		if p.Featured == *req.Featured {
			writeJSON(w, http.StatusOK, map[string]bool{"featured": p.Featured})
			return
		}
	}

	featured, err := h.content.FeatureToggle(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"featured": featured})
}

// LiftBan handles POST /moderation/decks/{id}/lift-ban.
func (h *ModerationHandler) LiftBan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	d, err := h.content.LiftPublishBan(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(d))
}

// Report handles POST /tickets. Any authenticated user may report content.
func (h *ModerationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.Create(r.Context(), moderation.CreateInput{
		TargetType:   domain.TargetType(req.TargetType),
		TargetID:     req.TargetID,
		TargetDeckID: req.TargetDeckID,
		Reason:       req.Reason,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTicketResponse(t, nil))
}

// Queue handles GET /moderation/tickets?status=&assignedTo=&unassigned=&escalated=&limit=&offset=.
func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := moderation.QueueInput{
		Unassigned:    q.Get("unassigned") == "true",
		EscalatedOnly: q.Get("escalated") == "true",
	}
	if s := q.Get("status"); s != "" {
		status := domain.TicketStatus(s)
		if !status.IsValid() {
			writeError(w, r, h.log, domain.NewValidationError("status", "invalid status"))
			return
		}
		input.Status = &status
	}

	var err error
	if input.AssignedTo, err = queryID(r, "assignedTo"); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	tickets, total, err := h.tickets.ListQueue(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := listResponse[ticketResponse]{Items: make([]ticketResponse, len(tickets)), Total: total}
	for i := range tickets {
		resp.Items[i] = toTicketResponse(&tickets[i], nil)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTicket handles GET /moderation/tickets/{id}. The response carries the
// full action history.
func (h *ModerationHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	history, err := h.tickets.History(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, history))
}

// Assign handles POST /moderation/tickets/{id}/assign.
func (h *ModerationHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req assignRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var moderatorID uuid.UUID
	if req.ModeratorID != nil {
		moderatorID = *req.ModeratorID
	} else if moderatorID, err = callerID(r); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.Assign(r.Context(), id, moderatorID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, nil))
}

// SetStatus handles POST /moderation/tickets/{id}/status.
func (h *ModerationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.SetStatus(r.Context(), moderation.SetStatusInput{
		TicketID:      id,
		Status:        domain.TicketStatus(req.Status),
		Note:          req.Note,
		RemoveContent: req.RemoveContent,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, nil))
}

// Escalate handles POST /moderation/tickets/{id}/escalate.
func (h *ModerationHandler) Escalate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req reasonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.Escalate(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, nil))
}

// AddNote handles POST /moderation/tickets/{id}/notes.
func (h *ModerationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.tickets.AddNote(r.Context(), id, req.Note)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(t, nil))
}

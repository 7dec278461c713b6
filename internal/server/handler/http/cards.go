// Package http provides the HTTP handlers of the card service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/GophCards/internal/middleware"
	"github.com/atinyakov/GophCards/internal/models"
	"github.com/atinyakov/GophCards/internal/render"
	"github.com/atinyakov/GophCards/internal/service"
)

// CardService defines the card lifecycle operations required by the CardHandler.
type CardService interface {
	Create(ctx context.Context, owner, creatorName string, in models.CardInput) (*models.Card, error)
	Get(ctx context.Context, id string) (*models.Card, error)
	SoftDelete(ctx context.Context, id, requester string) error
	Restore(ctx context.Context, id, requester string) error
	Purge(ctx context.Context, id, requester string) error
	ListActive(ctx context.Context) (service.Listing, error)
	ListRecentlyDeleted(ctx context.Context) (service.Listing, error)
}

// ProfileService resolves the display name of the requester.
type ProfileService interface {
	DisplayName(ctx context.Context, userID, email string) string
}

// CardHandler serves the /api/cards endpoints.
type CardHandler struct {
	Cards    CardService
	Profiles ProfileService
}

// CardItem is a card together with its layout descriptor.
type CardItem struct {
	Card      models.Card   `json:"card"`
	Layout    render.Layout `json:"layout"`
	CanModify bool          `json:"can_modify"`
}

// ListResponse is the body of the list endpoints.
type ListResponse struct {
	Cards []CardItem `json:"cards"`
	AsOf  string     `json:"as_of"`
}

func item(card models.Card, requester string) CardItem {
	return CardItem{
		Card:      card,
		Layout:    render.Render(card),
		CanModify: requester != "" && card.Owner == requester,
	}
}

// MaxBodyBytes caps card request bodies. The largest valid card is far
// below it.
const MaxBodyBytes = 16 << 10

// decodeInput reads a card input, writing the error response on failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.CardInput, bool) {
	var in models.CardInput
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&in)
	if err == nil {
		return in, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return in, false
	}
	http.Error(w, "invalid body", http.StatusBadRequest)
	return in, false
}

// Create handles POST /api/cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := middleware.IdentityFromContext(ctx)

	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	name := h.Profiles.DisplayName(ctx, id.UserID, id.Email)
	card, err := h.Cards.Create(ctx, id.UserID, name, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item(*card, id.UserID))
}

// Preview handles POST /api/cards/preview. Nothing is stored.
func (h *CardHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := middleware.IdentityFromContext(ctx)

	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	name := h.Profiles.DisplayName(ctx, id.UserID, id.Email)
	writeJSON(w, http.StatusOK, render.Render(service.Draft(name, in)))
}

// Get handles GET /api/cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.Cards.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item(*card, middleware.GetUserIDFromContext(r.Context())))
}

// ListActive handles GET /api/cards.
func (h *CardHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Cards.ListActive)
}

// ListDeleted handles GET /api/cards/deleted.
func (h *CardHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Cards.ListRecentlyDeleted)
}

func (h *CardHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context) (service.Listing, error),
) {
	listing, err := fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	requester := middleware.GetUserIDFromContext(r.Context())
	resp := ListResponse{
		Cards: make([]CardItem, 0, len(listing.Cards)),
		AsOf:  listing.AsOf.UTC().Format(timeFormat),
	}
	for _, c := range listing.Cards {
		resp.Cards = append(resp.Cards, item(c, requester))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SoftDelete handles DELETE /api/cards/{id}.
func (h *CardHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Cards.SoftDelete)
}

// Restore handles POST /api/cards/{id}/restore.
func (h *CardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Cards.Restore)
}

// Purge handles DELETE /api/cards/{id}/purge.
func (h *CardHandler) Purge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Cards.Purge)
}

func (h *CardHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, requester string) error,
) {
	ctx := r.Context()
	if err := op(ctx, chi.URLParam(r, "id"), middleware.GetUserIDFromContext(ctx)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

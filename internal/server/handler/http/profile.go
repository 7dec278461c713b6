package http

import (
	"net/http"
	"time"

	"github.com/atinyakov/GophCards/internal/middleware"
	"github.com/atinyakov/GophCards/internal/render"
)

const timeFormat = time.RFC3339

// ProfileHandler serves the requester's identity and the editor catalog.
type ProfileHandler struct {
	Profiles ProfileService
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Me handles GET /api/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := middleware.IdentityFromContext(ctx)

	name := h.Profiles.DisplayName(ctx, id.UserID, id.Email)
	writeJSON(w, http.StatusOK, MeResponse{UserID: id.UserID, Email: id.Email, DisplayName: name})
}

// Catalog handles GET /api/catalog.
func Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, render.Catalog())
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

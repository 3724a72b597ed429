package handler

import (
	"errors"
	"net/http"

	"church-hub-go/internal/domain/church"
)

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type meResponse struct {
	UserID      string              `json:"user_id"`
	Email       string              `json:"email"`
	DisplayName string              `json:"display_name"`
	Membership  *membershipResponse `json:"membership"`
}

// Me returns the authenticated identity and, when the user belongs to a
// church, their membership.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	response := meResponse{
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
	}

	membership, err := h.churches.MyMembership(r.Context(), identity.UserID)
	switch {
	case err == nil:
		converted := toMembershipResponse(membership)
		response.Membership = &converted
	case errors.Is(err, church.ErrMembershipNotFound):
		// not in any church, membership stays null
	default:
		h.respondError(w, "fetch own membership", err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"church-hub-go/internal/domain/invite"
)

type generateInviteRequest struct {
	ChurchID      string  `json:"church_id"`
	CampusID      *string `json:"campus_id"`
	MaxUses       *int    `json:"max_uses"`
	ExpiresInDays *int    `json:"expires_in_days"`
}

type inviteResponse struct {
	ID        string     `json:"id"`
	ChurchID  string     `json:"church_id"`
	CampusID  *string    `json:"campus_id"`
	Code      string     `json:"code"`
	JoinURL   string     `json:"join_url"`
	MaxUses   *int       `json:"max_uses"`
	UsedCount int        `json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

func toInviteResponse(link invite.InviteLink) inviteResponse {
	return inviteResponse{
		ID:        link.Invite.ID,
		ChurchID:  link.Invite.ChurchID,
		CampusID:  link.Invite.CampusID,
		Code:      link.Invite.Code,
		JoinURL:   link.JoinURL,
		MaxUses:   link.Invite.MaxUses,
		UsedCount: link.Invite.UsedCount,
		ExpiresAt: link.Invite.ExpiresAt,
		Active:    link.Invite.Active,
		CreatedAt: link.Invite.CreatedAt,
	}
}

func (h *Handlers) GenerateInvite(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)

	var req generateInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if _, err := uuid.Parse(req.ChurchID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "church_id is required")
		return
	}

	link, err := h.invites.Generate(r.Context(), identity.UserID, invite.GenerateInput{
		ChurchID:      req.ChurchID,
		CampusID:      req.CampusID,
		MaxUses:       req.MaxUses,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		h.respondError(w, "generate invite", err)
		return
	}
	writeJSON(w, http.StatusCreated, toInviteResponse(*link))
}

func (h *Handlers) ListInvites(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID := r.URL.Query().Get("church_id")
	if _, err := uuid.Parse(churchID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", "church_id is required")
		return
	}

	links, err := h.invites.List(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "list invites", err)
		return
	}

	responses := make([]inviteResponse, 0, len(links))
	for _, link := range links {
		responses = append(responses, toInviteResponse(link))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invites": responses})
}

func (h *Handlers) DeactivateInvite(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	inviteID, err := uuidParam(r, "inviteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.invites.Deactivate(r.Context(), identity.UserID, inviteID); err != nil {
		h.respondError(w, "deactivate invite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type redeemInviteRequest struct {
	Code string `json:"code"`
}

func (h *Handlers) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req redeemInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	member, err := h.invites.Redeem(r.Context(), identity, req.Code)
	if err != nil {
		h.respondError(w, "redeem invite", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMembershipResponse(member))
}

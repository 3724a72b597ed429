package handler

import (
	"net/http"
	"time"

	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
)

type membershipResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ChurchID    string    `json:"church_id"`
	CampusID    *string   `json:"campus_id"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	JoinedAt    time.Time `json:"joined_at"`
}

func toMembershipResponse(m *church.Membership) membershipResponse {
	return membershipResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		ChurchID:    m.ChurchID,
		CampusID:    m.CampusID,
		Role:        string(m.Role),
		DisplayName: m.DisplayName,
		Email:       m.Email,
		JoinedAt:    m.JoinedAt,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	members, err := h.churches.ListMembers(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "list members", err)
		return
	}

	responses := make([]membershipResponse, 0, len(members))
	for i := range members {
		responses = append(responses, toMembershipResponse(&members[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": responses})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handlers) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	membershipID, err := uuidParam(r, "memberID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if err := h.churches.ChangeRole(r.Context(), identity.UserID, membershipID, authz.Role(req.Role)); err != nil {
		h.respondError(w, "change member role", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"role": req.Role})
}

type assignCampusRequest struct {
	CampusID *string `json:"campus_id"`
}

func (h *Handlers) AssignMemberCampus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	membershipID, err := uuidParam(r, "memberID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req assignCampusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if err := h.churches.AssignCampus(r.Context(), identity.UserID, membershipID, req.CampusID); err != nil {
		h.respondError(w, "assign member campus", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	membershipID, err := uuidParam(r, "memberID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.churches.RemoveMember(r.Context(), identity.UserID, membershipID); err != nil {
		h.respondError(w, "remove member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

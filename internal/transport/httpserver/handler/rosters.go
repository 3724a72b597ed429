package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"church-hub-go/internal/domain/roster"
)

type rosterEntryRequest struct {
	UserID *string `json:"user_id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Notes  string  `json:"notes"`
}

func (req rosterEntryRequest) toInput() roster.EntryInput {
	return roster.EntryInput{
		UserID: req.UserID,
		Name:   sanitize(req.Name),
		Role:   sanitize(req.Role),
		Notes:  sanitize(req.Notes),
	}
}

type rosterEntryResponse struct {
	ID        string    `json:"id"`
	ChurchID  string    `json:"church_id"`
	Kind      string    `json:"kind"`
	UserID    *string   `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toRosterEntryResponse(entry roster.Entry) rosterEntryResponse {
	return rosterEntryResponse{
		ID:        entry.ID,
		ChurchID:  entry.ChurchID,
		Kind:      string(entry.Kind),
		UserID:    entry.UserID,
		Name:      entry.Name,
		Role:      entry.Role,
		Notes:     entry.Notes,
		Active:    entry.Active,
		CreatedAt: entry.CreatedAt,
	}
}

func (h *Handlers) ListRoster(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}
	kind := roster.Kind(chi.URLParam(r, "kind"))

	entries, err := h.rosters.List(r.Context(), identity.UserID, churchID, kind)
	if err != nil {
		h.respondError(w, "list roster", err)
		return
	}

	responses := make([]rosterEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toRosterEntryResponse(entry))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": responses})
}

func (h *Handlers) CreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}
	kind := roster.Kind(chi.URLParam(r, "kind"))

	var req rosterEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "name is required")
		return
	}

	entry, err := h.rosters.Create(r.Context(), identity.UserID, churchID, kind, req.toInput())
	if err != nil {
		h.respondError(w, "create roster entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRosterEntryResponse(*entry))
}

func (h *Handlers) UpdateRosterEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req rosterEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "name is required")
		return
	}

	entry, err := h.rosters.Update(r.Context(), identity.UserID, entryID, req.toInput())
	if err != nil {
		h.respondError(w, "update roster entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toRosterEntryResponse(*entry))
}

func (h *Handlers) ToggleRosterEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	entry, err := h.rosters.Toggle(r.Context(), identity.UserID, entryID)
	if err != nil {
		h.respondError(w, "toggle roster entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toRosterEntryResponse(*entry))
}

func (h *Handlers) DeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.rosters.Delete(r.Context(), identity.UserID, entryID); err != nil {
		h.respondError(w, "delete roster entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

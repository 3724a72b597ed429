package handler

import "net/http"

func (h *Handlers) ListCampuses(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	campuses, err := h.churches.ListCampuses(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "list campuses", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"campuses": toCampusResponses(campuses)})
}

func (h *Handlers) CreateCampus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req campusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "name is required")
		return
	}

	campus, err := h.churches.CreateCampus(r.Context(), identity.UserID, churchID, req.toInput())
	if err != nil {
		h.respondError(w, "create campus", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampusResponse(*campus))
}

func (h *Handlers) UpdateCampus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	campusID, err := uuidParam(r, "campusID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req campusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "name is required")
		return
	}

	campus, err := h.churches.UpdateCampus(r.Context(), identity.UserID, campusID, req.toInput())
	if err != nil {
		h.respondError(w, "update campus", err)
		return
	}
	writeJSON(w, http.StatusOK, toCampusResponse(*campus))
}

func (h *Handlers) DeleteCampus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	campusID, err := uuidParam(r, "campusID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.churches.DeleteCampus(r.Context(), identity.UserID, campusID); err != nil {
		h.respondError(w, "delete campus", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

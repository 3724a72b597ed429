package handler

import (
	"net/http"

	"church-hub-go/internal/domain/joinrequest"
)

type questionRequest struct {
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

type questionResponse struct {
	ID       string `json:"id"`
	ChurchID string `json:"church_id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

func toQuestionResponse(question joinrequest.Question) questionResponse {
	return questionResponse{
		ID:       question.ID,
		ChurchID: question.ChurchID,
		Text:     question.Text,
		Required: question.Required,
		Position: question.Position,
		Active:   question.Active,
	}
}

func toQuestionResponses(questions []joinrequest.Question) []questionResponse {
	responses := make([]questionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, toQuestionResponse(question))
	}
	return responses
}

func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	questions, err := h.joinRequests.ListQuestions(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "list questions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": toQuestionResponses(questions)})
}

// PublicQuestions serves the active questionnaire to applicants who are not
// members yet.
func (h *Handlers) PublicQuestions(w http.ResponseWriter, r *http.Request) {
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	questions, err := h.joinRequests.PublicQuestions(r.Context(), churchID)
	if err != nil {
		h.respondError(w, "list public questions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": toQuestionResponses(questions)})
}

func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "text is required")
		return
	}

	question, err := h.joinRequests.CreateQuestion(r.Context(), identity.UserID, churchID, sanitize(req.Text), req.Required)
	if err != nil {
		h.respondError(w, "create question", err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuestionResponse(*question))
}

func (h *Handlers) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "text is required")
		return
	}

	question, err := h.joinRequests.UpdateQuestion(r.Context(), identity.UserID, questionID, sanitize(req.Text), req.Required)
	if err != nil {
		h.respondError(w, "update question", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(*question))
}

func (h *Handlers) ToggleQuestion(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	question, err := h.joinRequests.ToggleQuestion(r.Context(), identity.UserID, questionID)
	if err != nil {
		h.respondError(w, "toggle question", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestionResponse(*question))
}

func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.joinRequests.DeleteQuestion(r.Context(), identity.UserID, questionID); err != nil {
		h.respondError(w, "delete question", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

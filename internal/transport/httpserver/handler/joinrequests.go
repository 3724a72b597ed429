package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"church-hub-go/internal/domain/joinrequest"
)

type createJoinRequestRequest struct {
	ChurchID string            `json:"church_id"`
	CampusID *string           `json:"campus_id"`
	Note     string            `json:"note"`
	Answers  map[string]string `json:"answers"`
}

type joinRequestResponse struct {
	ID          string     `json:"id"`
	ChurchID    string     `json:"church_id"`
	CampusID    *string    `json:"campus_id"`
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Note        string     `json:"note"`
	Status      string     `json:"status"`
	ReviewedBy  *string    `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewNote  *string    `json:"review_note"`
	CreatedAt   time.Time  `json:"created_at"`
}

type answerResponse struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	Required     bool   `json:"required"`
	Answer       string `json:"answer"`
}

type joinRequestDetailResponse struct {
	joinRequestResponse
	Answers []answerResponse `json:"answers"`
}

func toJoinRequestResponse(request joinrequest.JoinRequest) joinRequestResponse {
	return joinRequestResponse{
		ID:          request.ID,
		ChurchID:    request.ChurchID,
		CampusID:    request.CampusID,
		UserID:      request.UserID,
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Note:        request.Note,
		Status:      request.Status,
		ReviewedBy:  request.ReviewedBy,
		ReviewedAt:  request.ReviewedAt,
		ReviewNote:  request.ReviewNote,
		CreatedAt:   request.CreatedAt,
	}
}

func (h *Handlers) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	var req createJoinRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if _, err := uuid.Parse(req.ChurchID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "church_id is required")
		return
	}

	answers := make(map[string]string, len(req.Answers))
	for questionID, answer := range req.Answers {
		answers[questionID] = sanitize(answer)
	}

	request, err := h.joinRequests.Create(r.Context(), identity, joinrequest.CreateInput{
		ChurchID: req.ChurchID,
		CampusID: req.CampusID,
		Note:     sanitize(req.Note),
		Answers:  answers,
	})
	if err != nil {
		h.respondError(w, "create join request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toJoinRequestResponse(*request))
}

func (h *Handlers) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID := r.URL.Query().Get("church_id")
	if _, err := uuid.Parse(churchID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", "church_id is required")
		return
	}

	requests, err := h.joinRequests.List(r.Context(), identity.UserID, churchID, r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, "list join requests", err)
		return
	}

	responses := make([]joinRequestDetailResponse, 0, len(requests))
	for _, item := range requests {
		detail := joinRequestDetailResponse{
			joinRequestResponse: toJoinRequestResponse(item.Request),
			Answers:             make([]answerResponse, 0, len(item.Answers)),
		}
		for _, answer := range item.Answers {
			detail.Answers = append(detail.Answers, answerResponse{
				QuestionID:   answer.QuestionID,
				QuestionText: answer.QuestionText,
				Required:     answer.Required,
				Answer:       answer.Answer,
			})
		}
		responses = append(responses, detail)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": responses})
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *Handlers) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
	}

	member, err := h.joinRequests.Approve(r.Context(), identity.UserID, requestID, sanitize(req.Note))
	if err != nil {
		h.respondError(w, "approve join request", err)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipResponse(member))
}

type denyRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) DenyJoinRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req denyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if err := h.joinRequests.Deny(r.Context(), identity.UserID, requestID, sanitize(req.Reason)); err != nil {
		h.respondError(w, "deny join request", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": joinrequest.StatusDenied})
}

func (h *Handlers) CancelJoinRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.joinRequests.Cancel(r.Context(), identity.UserID, requestID); err != nil {
		h.respondError(w, "cancel join request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

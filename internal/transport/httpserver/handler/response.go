package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"church-hub-go/internal/domain/authz"
	"church-hub-go/internal/domain/church"
	"church-hub-go/internal/domain/invite"
	"church-hub-go/internal/domain/joinrequest"
	"church-hub-go/internal/domain/roster"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// errStatus maps a domain sentinel to its HTTP status and stable error code.
type errStatus struct {
	err    error
	status int
	code   string
}

var errStatuses = []errStatus{
	{authz.ErrNotAMember, http.StatusForbidden, "not_a_member"},
	{authz.ErrForbidden, http.StatusForbidden, "forbidden"},

	{church.ErrChurchNotFound, http.StatusNotFound, "church_not_found"},
	{church.ErrCampusNotFound, http.StatusNotFound, "campus_not_found"},
	{church.ErrMembershipNotFound, http.StatusNotFound, "member_not_found"},
	{church.ErrAlreadyInChurch, http.StatusConflict, "already_in_church"},
	{church.ErrLastOwner, http.StatusConflict, "last_owner"},
	{church.ErrCannotRemoveOwner, http.StatusConflict, "cannot_remove_owner"},
	{church.ErrOwnerCannotLeave, http.StatusConflict, "owner_cannot_leave"},
	{church.ErrCannotRemoveSelf, http.StatusBadRequest, "cannot_remove_self"},
	{church.ErrCampusMismatch, http.StatusBadRequest, "campus_mismatch"},
	{church.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{church.ErrInvalidInput, http.StatusBadRequest, "validation_error"},

	{invite.ErrInviteNotFound, http.StatusNotFound, "invite_not_found"},
	{invite.ErrInviteInvalid, http.StatusBadRequest, "invite_invalid"},
	{invite.ErrInviteExhausted, http.StatusConflict, "invite_exhausted"},
	{invite.ErrInvalidInput, http.StatusBadRequest, "validation_error"},

	{joinrequest.ErrRequestNotFound, http.StatusNotFound, "request_not_found"},
	{joinrequest.ErrQuestionNotFound, http.StatusNotFound, "question_not_found"},
	{joinrequest.ErrAlreadyMember, http.StatusConflict, "already_member"},
	{joinrequest.ErrAlreadyPending, http.StatusConflict, "request_pending"},
	{joinrequest.ErrRequestClosed, http.StatusConflict, "request_closed"},
	{joinrequest.ErrDenialCooldown, http.StatusForbidden, "denial_cooldown"},
	{joinrequest.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{joinrequest.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
	{joinrequest.ErrAnswerRequired, http.StatusBadRequest, "answer_required"},
	{joinrequest.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{joinrequest.ErrInvalidInput, http.StatusBadRequest, "validation_error"},

	{roster.ErrEntryNotFound, http.StatusNotFound, "entry_not_found"},
	{roster.ErrDuplicateEntry, http.StatusConflict, "duplicate_entry"},
	{roster.ErrInvalidKind, http.StatusBadRequest, "invalid_kind"},
	{roster.ErrInvalidInput, http.StatusBadRequest, "validation_error"},
}

// respondError translates domain errors into HTTP responses. Known
// sentinels become business errors with stable codes; anything else is
// logged as internal and hidden behind a generic 500.
func (h *Handlers) respondError(w http.ResponseWriter, op string, err error) {
	for _, mapping := range errStatuses {
		if errors.Is(err, mapping.err) {
			h.log.BusinessError(op, err)
			writeError(w, mapping.status, mapping.code, errMessage(err))
			return
		}
	}
	h.log.InternalError(op, err)
	writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}

func errMessage(err error) string {
	var forbidden *authz.ForbiddenError
	if errors.As(err, &forbidden) {
		return fmt.Sprintf("requires role %s or above", forbidden.Required)
	}
	return err.Error()
}

package handler

import (
	"net/http"
	"time"

	"church-hub-go/internal/domain/church"
)

type campusRequest struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Address   string   `json:"address"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (req campusRequest) toInput() church.CampusInput {
	return church.CampusInput{
		Name:      sanitize(req.Name),
		Location:  sanitize(req.Location),
		Address:   sanitize(req.Address),
		ZipCode:   sanitize(req.ZipCode),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

type createChurchRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Campus      campusRequest `json:"campus"`
}

type churchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
}

type campusResponse struct {
	ID        string   `json:"id"`
	ChurchID  string   `json:"church_id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Address   string   `json:"address"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type churchDetailResponse struct {
	Church   churchResponse   `json:"church"`
	Campuses []campusResponse `json:"campuses"`
}

func toChurchResponse(c church.Church) churchResponse {
	return churchResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		Public:      c.Public,
		CreatedAt:   c.CreatedAt,
	}
}

func toCampusResponse(c church.Campus) campusResponse {
	return campusResponse{
		ID:        c.ID,
		ChurchID:  c.ChurchID,
		Name:      c.Name,
		Location:  c.Location,
		Address:   c.Address,
		ZipCode:   c.ZipCode,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

func toCampusResponses(campuses []church.Campus) []campusResponse {
	responses := make([]campusResponse, 0, len(campuses))
	for _, campus := range campuses {
		responses = append(responses, toCampusResponse(campus))
	}
	return responses
}

func (h *Handlers) CreateChurch(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req createChurchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	created, campus, err := h.churches.CreateChurch(r.Context(), identity, church.CreateChurchInput{
		Name:        sanitize(req.Name),
		Description: sanitize(req.Description),
		Campus:      req.Campus.toInput(),
	})
	if err != nil {
		h.respondError(w, "create church", err)
		return
	}

	writeJSON(w, http.StatusCreated, churchDetailResponse{
		Church:   toChurchResponse(*created),
		Campuses: []campusResponse{toCampusResponse(*campus)},
	})
}

func (h *Handlers) GetChurch(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	detail, err := h.churches.GetChurch(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "get church", err)
		return
	}

	writeJSON(w, http.StatusOK, churchDetailResponse{
		Church:   toChurchResponse(detail.Church),
		Campuses: toCampusResponses(detail.Campuses),
	})
}

type updateChurchRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handlers) UpdateChurch(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req updateChurchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if sanitize(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "name is required")
		return
	}

	if err := h.churches.UpdateChurch(r.Context(), identity.UserID, churchID, sanitize(req.Name), sanitize(req.Description)); err != nil {
		h.respondError(w, "update church", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type visibilityRequest struct {
	Public bool `json:"public"`
}

func (h *Handlers) SetVisibility(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if err := h.churches.SetVisibility(r.Context(), identity.UserID, churchID, req.Public); err != nil {
		h.respondError(w, "set church visibility", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"public": req.Public})
}

func (h *Handlers) DeleteChurch(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	if err := h.churches.DeleteChurch(r.Context(), identity.UserID, churchID); err != nil {
		h.respondError(w, "delete church", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type leaveRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) LeaveChurch(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)

	var req leaveRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
	}

	if err := h.churches.LeaveChurch(r.Context(), identity.UserID, sanitize(req.Reason)); err != nil {
		h.respondError(w, "leave church", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferOwnershipRequest struct {
	MembershipID string `json:"membership_id"`
}

func (h *Handlers) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	var req transferOwnershipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.MembershipID == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "membership_id is required")
		return
	}

	if err := h.churches.TransferOwnership(r.Context(), identity.UserID, churchID, req.MembershipID); err != nil {
		h.respondError(w, "transfer ownership", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

type analyticsResponse struct {
	TotalMembers     int64                 `json:"total_members"`
	MembersByRole    map[string]int64      `json:"members_by_role"`
	MembersByCampus  []campusCountResponse `json:"members_by_campus"`
	JoinedLast30Days int64                 `json:"joined_last_30_days"`
	JoinRequests     joinRequestTotals     `json:"join_requests"`
}

type campusCountResponse struct {
	CampusID   *string `json:"campus_id"`
	CampusName string  `json:"campus_name"`
	Count      int64   `json:"count"`
}

type joinRequestTotals struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Denied   int64 `json:"denied"`
}

func (h *Handlers) ChurchAnalytics(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromRequest(r)
	churchID, err := uuidParam(r, "churchID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	analytics, err := h.churches.Analytics(r.Context(), identity.UserID, churchID)
	if err != nil {
		h.respondError(w, "church analytics", err)
		return
	}

	byCampus := make([]campusCountResponse, 0, len(analytics.MembersByCampus))
	for _, count := range analytics.MembersByCampus {
		byCampus = append(byCampus, campusCountResponse{
			CampusID:   count.CampusID,
			CampusName: count.CampusName,
			Count:      count.Count,
		})
	}

	writeJSON(w, http.StatusOK, analyticsResponse{
		TotalMembers:     analytics.TotalMembers,
		MembersByRole:    analytics.MembersByRole,
		MembersByCampus:  byCampus,
		JoinedLast30Days: analytics.JoinedLast30Days,
		JoinRequests: joinRequestTotals{
			Pending:  analytics.PendingRequests,
			Approved: analytics.ApprovedRequests,
			Denied:   analytics.DeniedRequests,
		},
	})
}

type searchResultResponse struct {
	Church        churchResponse   `json:"church"`
	Campuses      []campusResponse `json:"campuses"`
	DistanceMiles *float64         `json:"distance_miles"`
}

func (h *Handlers) SearchChurches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := floatQuery(r, "latitude")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}
	lng, err := floatQuery(r, "longitude")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_param", err.Error())
		return
	}

	results, err := h.churches.Search(r.Context(), church.SearchQuery{
		Query:     sanitize(query.Get("q")),
		ZipCode:   sanitize(query.Get("zip_code")),
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		h.respondError(w, "search churches", err)
		return
	}

	responses := make([]searchResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, searchResultResponse{
			Church:        toChurchResponse(result.Church),
			Campuses:      toCampusResponses(result.Campuses),
			DistanceMiles: result.DistanceMiles,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": responses})
}

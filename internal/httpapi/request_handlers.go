package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/service"
)

type createRequestBody struct {
	GarageID    int64              `json:"garageUserId"`
	ServiceType string             `json:"serviceType"`
	VehicleType models.VehicleType `json:"vehicleType"`
	Contact     string             `json:"contact"`
	Message     string             `json:"message"`
}

type updateRequestBody struct {
	RequestID int64                `json:"notificationId"`
	Status    models.RequestStatus `json:"status"`
}

func (s *server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.accountID(w, r)
	if !ok {
		return
	}

	var body createRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.log, err)
		return
	}

	req, err := s.requests.Create(r.Context(), service.NewRequest{
		GarageID:    body.GarageID,
		UserID:      userID,
		ServiceType: body.ServiceType,
		VehicleType: body.VehicleType,
		Contact:     body.Contact,
		Message:     body.Message,
	})
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func (s *server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.accountID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	if raw := query.Get("garageUserId"); raw != "" && raw != strconv.FormatInt(ownerID, 10) {
		writeError(w, r, s.log, service.ErrForbidden)
		return
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		var err error
		if page, err = strconv.Atoi(raw); err != nil {
			writeError(w, r, s.log, fmt.Errorf("%w: page must be a number", errBadRequest))
			return
		}
	}

	result, err := s.requests.ListForGarage(r.Context(), ownerID, models.RequestStatus(query.Get("status")), page)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.accountID(w, r)
	if !ok {
		return
	}

	var body updateRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, s.log, err)
		return
	}

	req, err := s.requests.UpdateStatus(r.Context(), body.RequestID, ownerID, body.Status)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// accountID reads the authenticated account from the context, answering 401 when absent.
func (s *server) accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, errUnauthorized.Error())
		return 0, false
	}

	id, err := claims.AccountID()
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid token")
		return 0, false
	}

	return id, true
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/services"
)

type HoldHandler struct {
	svc *services.HoldService
}

func NewHoldHandler(svc *services.HoldService) *HoldHandler {
	return &HoldHandler{svc: svc}
}

type createHoldRequest struct {
	FlightID        string   `json:"flight_id"`
	FareClass       string   `json:"fare_class"`
	SessionID       string   `json:"session_id"`
	UserID          string   `json:"user_id,omitempty"`
	Seats           []string `json:"seats"`
	DurationMinutes int      `json:"duration_minutes"`
}

type holdResponse struct {
	HoldID    string   `json:"hold_id"`
	FlightID  string   `json:"flight_id"`
	FareClass string   `json:"fare_class"`
	Seats     []string `json:"seats"`
	Status    string   `json:"status"`
	ExpiresAt string   `json:"expires_at"`
}

func toHoldResponse(h *domain.InventoryHold) holdResponse {
	return holdResponse{
		HoldID:    h.ID.String(),
		FlightID:  h.FlightID.String(),
		FareClass: h.FareClass,
		Seats:     h.Seats,
		Status:    string(h.Status),
		ExpiresAt: h.ExpiresAt.Format(time.RFC3339),
	}
}

func (h *HoldHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	var req createHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flight id"})
		return
	}
	if req.FareClass == "" || len(req.Seats) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fare class and seats are required"})
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 15
	}

	var userID *uuid.UUID
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
			return
		}
		userID = &id
	}

	hold, err := h.svc.CreateHold(r.Context(), services.CreateHoldRequest{
		FlightID:        flightID,
		FareClass:       req.FareClass,
		SessionID:       req.SessionID,
		UserID:          userID,
		Seats:           req.Seats,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHoldResponse(hold))
}

func (h *HoldHandler) GetHold(w http.ResponseWriter, r *http.Request) {
	holdID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid hold id"})
		return
	}

	hold, err := h.svc.GetHold(r.Context(), holdID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHoldResponse(hold))
}

func (h *HoldHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	holdID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid hold id"})
		return
	}

	if err := h.svc.ReleaseHold(r.Context(), holdID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

func (h *HoldHandler) ConfirmHold(w http.ResponseWriter, r *http.Request) {
	holdID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid hold id"})
		return
	}

	if err := h.svc.ConfirmHold(r.Context(), holdID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

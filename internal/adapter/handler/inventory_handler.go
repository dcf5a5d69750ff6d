package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/services"
)

type InventoryHandler struct {
	ledger *services.InventoryLedger
}

func NewInventoryHandler(ledger *services.InventoryLedger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

type createInventoryRequest struct {
	FlightID   string  `json:"flight_id"`
	FareClass  string  `json:"fare_class"`
	CabinClass string  `json:"cabin_class"`
	TotalSeats int     `json:"total_seats"`
	Price      float64 `json:"price"`
}

type inventoryResponse struct {
	FlightID       string  `json:"flight_id"`
	FareClass      string  `json:"fare_class"`
	CabinClass     string  `json:"cabin_class"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
}

func toInventoryResponse(inv *domain.SeatInventory) inventoryResponse {
	return inventoryResponse{
		FlightID:       inv.FlightID.String(),
		FareClass:      inv.FareClass,
		CabinClass:     inv.CabinClass,
		TotalSeats:     inv.TotalSeats,
		AvailableSeats: inv.AvailableSeats,
		Price:          inv.Price,
	}
}

func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flight id"})
		return
	}
	if req.FareClass == "" || req.TotalSeats <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fare_class and a positive total_seats are required"})
		return
	}

	inv := &domain.SeatInventory{
		FlightID:   flightID,
		FareClass:  req.FareClass,
		CabinClass: req.CabinClass,
		TotalSeats: req.TotalSeats,
		Price:      req.Price,
	}
	if err := h.ledger.CreateInventory(r.Context(), inv); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInventoryResponse(inv))
}

func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	flightID, err := uuid.Parse(r.PathValue("flightId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flight id"})
		return
	}
	fareClass := r.PathValue("fareClass")

	inv, err := h.ledger.Read(r.Context(), flightID, fareClass)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInventoryResponse(inv))
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/services"
)

type PaymentHandler struct {
	svc *services.BookingService
}

func NewPaymentHandler(svc *services.BookingService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type paymentResponse struct {
	PaymentID    string  `json:"payment_transaction_id"`
	BookingID    string  `json:"booking_id"`
	Gateway      string  `json:"gateway"`
	GatewayTxnID string  `json:"gateway_txn_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Method       string  `json:"payment_method"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		PaymentID:    p.ID.String(),
		BookingID:    p.BookingID.String(),
		Gateway:      p.Gateway,
		GatewayTxnID: p.GatewayTxnID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Method:       p.Method,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req services.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	payment, err := h.svc.ProcessPayment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment id"})
		return
	}

	payment, err := h.svc.GetPayment(r.Context(), paymentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

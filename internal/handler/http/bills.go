package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/powergrid-apps/billkeeper/internal/logger"
)

type generateBillRequest struct {
	UnitsConsumed float64   `json:"units_consumed"`
	DueDate       time.Time `json:"due_date"`
}

type payBillRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// generateBill handles POST /api/users/{id}/bills.
func (h *Handler) generateBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req generateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	bill, err := h.services.BillingService.Generate(ctx, chi.URLParam(r, "id"), req.UnitsConsumed, req.DueDate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("bill_id", bill.BillID).Str("consumer_id", bill.ConsumerID).Msg("bill generated")
	writeJSONResponse(w, r, bill, http.StatusCreated)
}

// listBills handles GET /api/users/{id}/bills.
func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bills, err := h.services.BillingService.ListByConsumer(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, r, bills, http.StatusOK)
}

// getBill handles GET /api/bills/{billID}.
func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	billID, err := parseBillID(r)
	if err != nil {
		http.Error(w, "invalid bill id", http.StatusBadRequest)
		return
	}

	bill, err := h.services.BillingService.Get(ctx, billID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, r, bill, http.StatusOK)
}

// payBill handles POST /api/bills/{billID}/pay. Paying an already settled
// bill yields 409; the PENDING to PAID transition happens at most once.
func (h *Handler) payBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	billID, err := parseBillID(r)
	if err != nil {
		http.Error(w, "invalid bill id", http.StatusBadRequest)
		return
	}

	var req payBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	bill, err := h.services.BillingService.Pay(ctx, billID, req.PaymentMethod)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("bill_id", bill.BillID).Msg("bill paid")
	writeJSONResponse(w, r, bill, http.StatusOK)
}

func parseBillID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "billID"), 10, 64)
}

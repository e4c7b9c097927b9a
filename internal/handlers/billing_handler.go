package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/billing"
	"restaurant-pos/internal/middleware"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/promo"
	"restaurant-pos/internal/store"
)

// BillingHandler settles ready orders
type BillingHandler struct {
	store  *store.Store
	calc   *billing.Calculator
	promos *promo.Resolver
	logger *slog.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(s *store.Store, calc *billing.Calculator, promos *promo.Resolver, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		store:  s,
		calc:   calc,
		promos: promos,
		logger: logger,
	}
}

type paymentRequest struct {
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	PromoCode       string          `json:"promoCode,omitempty"`
	Tender          billing.Tender  `json:"tender"`
	ExpectedVersion int64           `json:"expectedVersion"`
}

type paymentResponse struct {
	Bill  billing.Bill  `json:"bill"`
	Order orderResponse `json:"order"`
}

// Pay handles POST /api/orders/{orderID}/payment. The bill is computed
// against the order's recomputed subtotal, the tender is settled, and on
// success the order is completed with the caller's actor and version; no
// state changes if any step fails.
func (h *BillingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unknown terminal", h.logger)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.store.Get(orderID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		return
	}

	discountPercent := req.DiscountPercent
	if req.PromoCode != "" {
		if !discountPercent.IsZero() {
			WriteError(w, http.StatusBadRequest, "Use a promo code or a manual discount, not both", h.logger)
			return
		}
		discountPercent, err = h.promos.Resolve(req.PromoCode)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Promo code is not valid", h.logger)
			return
		}
	}

	bill, err := h.calc.Compute(order.Subtotal(), discountPercent, req.Tender)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidDiscount):
			WriteError(w, http.StatusBadRequest, "Discount percent must be between 0 and 100", h.logger)
		case errors.Is(err, billing.ErrInvalidTender):
			WriteError(w, http.StatusBadRequest, "Invalid tender", h.logger)
		case errors.Is(err, billing.ErrInsufficientPayment):
			WriteError(w, http.StatusBadRequest, "Amount received is less than the total", h.logger)
		case errors.Is(err, billing.ErrPaymentMismatch):
			WriteError(w, http.StatusBadRequest, "Split amounts do not sum to the total", h.logger)
		default:
			h.logger.Error("failed to compute bill", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	completed, err := h.store.ApplyTransition(orderID, models.StatusCompleted, actor, req.ExpectedVersion)
	if err != nil {
		writeTransitionError(w, err, h.logger)
		return
	}

	h.logger.Info("payment confirmed",
		"order_number", completed.Number,
		"total", bill.Total,
		"tender", bill.Tender,
	)
	WriteJSON(w, http.StatusOK, paymentResponse{
		Bill: bill,
		Order: orderResponse{
			Order:    completed,
			Subtotal: completed.Subtotal(),
		},
	}, h.logger)
}

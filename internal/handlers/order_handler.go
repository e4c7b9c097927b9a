package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/middleware"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/overdue"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/status"
	"restaurant-pos/internal/store"
)

// OrderHandler handles order entry and lifecycle requests
type OrderHandler struct {
	store   *store.Store
	catalog repository.Catalog
	monitor *overdue.Monitor
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(s *store.Store, catalog repository.Catalog, monitor *overdue.Monitor, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		store:   s,
		catalog: catalog,
		monitor: monitor,
		logger:  logger,
	}
}

type orderLineRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Variant    string `json:"variant,omitempty"`
}

type createOrderRequest struct {
	Type    string             `json:"type"`
	TableID string             `json:"tableId,omitempty"`
	Items   []orderLineRequest `json:"items"`
}

// orderResponse is an order snapshot plus the values terminals derive on
// every read: the recomputed subtotal and the overdue flag.
type orderResponse struct {
	models.Order
	Subtotal decimal.Decimal `json:"subtotal"`
	Overdue  bool            `json:"overdue"`
}

func (h *OrderHandler) toResponse(order models.Order) orderResponse {
	return orderResponse{
		Order:    order,
		Subtotal: order.Subtotal(),
		Overdue:  h.monitor.Check(order),
	}
}

// Create handles POST /api/orders. It drafts a cart from the request
// lines, then commits it; nothing is visible to other terminals until the
// commit succeeds.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	draft := cart.New()
	for _, line := range req.Items {
		item, err := h.catalog.GetMenuItem(r.Context(), line.MenuItemID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Unknown menu item: "+line.MenuItemID, h.logger)
			return
		}
		if !item.Available {
			WriteError(w, http.StatusBadRequest, "Menu item not available: "+item.Name, h.logger)
			return
		}

		if err := draft.AddLine(*item, line.Quantity, line.Variant); err != nil {
			switch {
			case errors.Is(err, cart.ErrInvalidQuantity):
				WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
			case errors.Is(err, cart.ErrUnknownVariant):
				WriteError(w, http.StatusBadRequest, "Unknown variant for "+item.Name, h.logger)
			default:
				WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			}
			return
		}
	}

	order, err := draft.Commit(h.store, models.OrderType(req.Type), req.TableID)
	if err != nil {
		h.logger.Error("failed to commit order", "error", err)
		switch {
		case errors.Is(err, store.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Order must contain at least one item", h.logger)
		case errors.Is(err, store.ErrInvalidOrderType):
			WriteError(w, http.StatusBadRequest, "Order type must be dine-in or takeaway", h.logger)
		case errors.Is(err, store.ErrTableRequired):
			WriteError(w, http.StatusBadRequest, "Dine-in orders require a table", h.logger)
		case errors.Is(err, store.ErrTableNotAllowed):
			WriteError(w, http.StatusBadRequest, "Takeaway orders must not reference a table", h.logger)
		case errors.Is(err, store.ErrTableNotFound):
			WriteError(w, http.StatusBadRequest, "Unknown table", h.logger)
		case errors.Is(err, store.ErrTableUnavailable):
			WriteError(w, http.StatusConflict, "Table is no longer available", h.logger)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	h.logger.Info("order committed",
		"order_number", order.Number,
		"type", order.Type,
		"lines", len(order.Lines),
	)
	WriteJSON(w, http.StatusCreated, h.toResponse(order), h.logger)
}

// ListTables handles GET /api/tables
func (h *OrderHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.ListTables(), h.logger)
}

// List handles GET /api/orders?status=&type=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{
		Status: models.OrderStatus(r.URL.Query().Get("status")),
		Type:   models.OrderType(r.URL.Query().Get("type")),
	}

	orders := h.store.List(filter)

	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, h.toResponse(order))
	}

	WriteJSON(w, http.StatusOK, out, h.logger)
}

// Get handles GET /api/orders/{orderID}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.store.Get(orderID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, h.toResponse(order), h.logger)
}

type transitionRequest struct {
	Status          string `json:"status"`
	ExpectedVersion int64  `json:"expectedVersion"`
}

// UpdateStatus handles POST /api/orders/{orderID}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unknown terminal", h.logger)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.store.ApplyTransition(orderID, models.OrderStatus(req.Status), actor, req.ExpectedVersion)
	if err != nil {
		writeTransitionError(w, err, h.logger)
		return
	}

	h.logger.Info("order status updated",
		"order_number", order.Number,
		"status", order.Status,
		"actor_role", actor.Role,
	)
	WriteJSON(w, http.StatusOK, h.toResponse(order), h.logger)
}

// writeTransitionError maps engine failures to HTTP statuses. Conflict
// errors tell the terminal to re-fetch before retrying.
func writeTransitionError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "Order not found", logger)
	case errors.Is(err, store.ErrStaleOrder):
		WriteError(w, http.StatusConflict, "Order changed since last read, re-fetch and retry", logger)
	case errors.Is(err, status.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, "Invalid status transition", logger)
	case errors.Is(err, status.ErrUnauthorized):
		WriteError(w, http.StatusForbidden, "Terminal not allowed to perform this transition", logger)
	default:
		logger.Error("transition failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

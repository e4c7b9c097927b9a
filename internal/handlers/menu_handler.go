package handlers

import (
	"log/slog"
	"net/http"

	"restaurant-pos/internal/repository"
)

// MenuHandler serves the catalog to order-entry terminals
type MenuHandler struct {
	catalog repository.Catalog
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(catalog repository.Catalog, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// ListItems handles GET /api/menu/items?category=&q=
// Only available items are offered.
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	items, err := h.catalog.ListMenuItems(r.Context(), categoryID, query)
	if err != nil {
		h.logger.Error("failed to list menu items", "error", err, "category", categoryID)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/review-api/internal/api/shared"
	"github.com/phrazzld/review-api/internal/domain"
	"github.com/phrazzld/review-api/internal/platform/logger"
	"github.com/phrazzld/review-api/internal/store"
)

// ItemHandler serves the catalog.
type ItemHandler struct {
	items  store.ItemStore
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items store.ItemStore, logger *slog.Logger) *ItemHandler {
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items cannot be nil for ItemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		items:  items,
		logger: logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := requireIdentity(w, r, log); !ok {
		return
	}

	var req CreateItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := domain.NewItem(req.Name, req.Description, req.Category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.items.Create(r.Context(), item); err != nil {
		HandleAPIError(w, r, err, "Failed to create item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// ListItems handles GET /items.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list items")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// GetItem handles GET /items/{id}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	item, err := h.items.GetByID(r.Context(), itemID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}
